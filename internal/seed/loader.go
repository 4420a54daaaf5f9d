package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"recmap/internal/store"
)

// LoadDir читает все *.yaml / *.yml из dir в порядке имён файлов.
func LoadDir(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []File
	for _, e := range entries {
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		f, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// LoadFile читает один файл фикстур. Имя набора — из name или из имени файла.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	if f.Name == "" {
		base := filepath.Base(path)
		f.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	for i, r := range f.Records {
		if strings.TrimSpace(r.Key) == "" {
			return File{}, fmt.Errorf("%s: record %d has no key", path, i)
		}
	}
	return f, nil
}

// Apply пишет записи в st и возвращает число записанных полей.
// Поля одной записи пишутся по возрастанию имён; при ошибке запись остаётся частичной.
func Apply(ctx context.Context, st store.Store, files []File) (int, error) {
	n := 0
	for _, f := range files {
		for _, r := range f.Records {
			names := make([]string, 0, len(r.Fields))
			for k := range r.Fields {
				names = append(names, k)
			}
			sort.Strings(names)
			for _, k := range names {
				if err := st.SetField(ctx, r.Key, k, r.Fields[k]); err != nil {
					return n, fmt.Errorf("seed %s: %s.%s: %w", f.Name, r.Key, k, err)
				}
				n++
			}
		}
	}
	return n, nil
}
