package dsl

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	entityRe = regexp.MustCompile(`^entity\s+(\w+):`)
	fieldRe  = regexp.MustCompile(`^\s*([\w_]+):\s*([^\s#]+)(.*)$`)
	refRe    = regexp.MustCompile(`^ref\[([A-Za-z0-9_.]+)\]$`)
	arrayRe  = regexp.MustCompile(`^array\[(.+)\]$`)
	moduleRe = regexp.MustCompile(`^\s*module\s+([A-Za-z0-9_.-]+)\s*$`)
)

var scalarTypes = map[string]struct{}{
	"string": {}, "int": {}, "long": {}, "float": {}, "double": {}, "bool": {}, "date": {},
}

// parse: options tokenizer — делит `lazy storage="Author Name"` на токены, не рвёт по пробелам внутри кавычек
func splitOptionTokens(s string) []string {
	var out []string
	var buf []rune
	inSingle, inDouble := false, false

	flush := func() {
		if len(buf) > 0 {
			out = append(out, string(buf))
			buf = buf[:0]
		}
	}

	for _, r := range s {
		switch r {
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
			buf = append(buf, r)
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
			buf = append(buf, r)
		default:
			// разделитель — пробел И ТОЛЬКО если мы не в кавычках
			if (r == ' ' || r == '\t') && !inSingle && !inDouble {
				flush()
				continue
			}
			buf = append(buf, r)
		}
	}
	flush()
	return out
}

// LoadEntities читает один .dsl файл и возвращает список Entity
func LoadEntities(path string) ([]*Entity, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// Parse разбирает DSL из произвольного источника.
func Parse(r io.Reader) ([]*Entity, error) {
	var entities []*Entity
	var current *Entity
	currentModule := ""
	lineNo := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// module ...
		if m := moduleRe.FindStringSubmatch(line); m != nil {
			currentModule = m[1]
			continue
		}

		// entity <Name>:
		if m := entityRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				entities = append(entities, current)
			}
			current = &Entity{Name: m[1], Module: currentModule}
			continue
		}
		if current == nil {
			// игнорируем всё вне сущности
			continue
		}

		m := fieldRe.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("line %d: cannot parse %q", lineNo, line)
		}
		f, err := parseField(m[1], m[2], m[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: %s.%s: %w", lineNo, current.Name, m[1], err)
		}
		if _, dup := current.Field(f.Name); dup {
			return nil, fmt.Errorf("line %d: duplicate field %q in entity %s", lineNo, f.Name, current.Name)
		}
		current.Fields = append(current.Fields, f)
	}

	if current != nil {
		entities = append(entities, current)
	}
	return entities, scanner.Err()
}

func parseField(name, rawType, tail string) (Field, error) {
	// склейка оборванных типов со скобками: array[ref[Issue] ]
	if strings.HasPrefix(rawType, "array[") && strings.Count(rawType, "[") > strings.Count(rawType, "]") {
		if idx := strings.LastIndex(tail, "]"); idx >= 0 {
			rawType = rawType + strings.ReplaceAll(tail[:idx+1], " ", "")
			tail = tail[idx+1:]
		}
	}

	// --- нормализация опций ПОСЛЕ типа ---
	optsRaw := strings.TrimSpace(tail)
	if i := strings.IndexByte(optsRaw, '#'); i >= 0 {
		optsRaw = strings.TrimSpace(optsRaw[:i])
	}
	if strings.HasPrefix(strings.ToLower(optsRaw), "options:") {
		optsRaw = strings.TrimSpace(optsRaw[len("options:"):])
	}

	f := Field{
		Name:    name,
		Type:    strings.ToLower(rawType),
		Options: map[string]string{},
	}

	// распознаём тип
	if mm := refRe.FindStringSubmatch(rawType); mm != nil {
		f.Type = "ref"
		f.RefTarget = strings.TrimSpace(mm[1])
	} else if mm := arrayRe.FindStringSubmatch(rawType); mm != nil {
		f.Type = "array"
		elem := strings.TrimSpace(mm[1])
		f.ElemType = strings.ToLower(elem)
		if rm := refRe.FindStringSubmatch(elem); rm != nil {
			f.ElemType = "ref"
			f.RefTarget = strings.TrimSpace(rm[1])
		} else if _, ok := scalarTypes[f.ElemType]; !ok {
			return Field{}, fmt.Errorf("unsupported array element type %q", elem)
		}
	} else if _, ok := scalarTypes[f.Type]; !ok {
		return Field{}, fmt.Errorf("unknown type %q", rawType)
	}

	for _, tok := range splitOptionTokens(optsRaw) {
		tok = strings.TrimSpace(strings.TrimSuffix(tok, ","))
		if tok == "" {
			continue
		}
		// флаг без значения → "true"
		if !strings.Contains(tok, "=") {
			f.Options[strings.ToLower(tok)] = "true"
			continue
		}
		kv := strings.SplitN(tok, "=", 2)
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.TrimSpace(kv[1])
		// снять кавычки, если есть
		if len(v) >= 2 {
			if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
				v = v[1 : len(v)-1]
			}
		}
		if k != "" {
			f.Options[k] = v
		}
	}
	return f, nil
}

// LoadAllEntities обходит root и собирает все сущности из *.dsl по FQN.
func LoadAllEntities(root string) (map[string]*Entity, error) {
	result := make(map[string]*Entity)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".dsl") {
			return nil
		}

		ents, err := LoadEntities(path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if err := merge(result, ents); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Index раскладывает список сущностей по FQN, проверяя дубликаты.
func Index(ents []*Entity) (map[string]*Entity, error) {
	result := make(map[string]*Entity, len(ents))
	if err := merge(result, ents); err != nil {
		return nil, err
	}
	return result, nil
}

func merge(dst map[string]*Entity, ents []*Entity) error {
	for _, e := range ents {
		if e == nil || e.Name == "" {
			return fmt.Errorf("empty entity name")
		}
		if e.Module == "" {
			return fmt.Errorf("entity %q has no module — add `module <name>` at the top", e.Name)
		}
		fqn := e.FQN()
		if _, exists := dst[fqn]; exists {
			return fmt.Errorf("duplicate entity %q in module %q", e.Name, e.Module)
		}
		dst[fqn] = e
	}
	return nil
}

// Find ищет сущность по имени без модуля; ok=false, если имя неуникально.
func Find(ents map[string]*Entity, name string) (*Entity, bool) {
	if e, ok := ents[name]; ok {
		return e, true
	}
	var found *Entity
	for _, e := range ents {
		if strings.EqualFold(e.Name, name) {
			if found != nil {
				return nil, false
			}
			found = e
		}
	}
	return found, found != nil
}
