// api/names.go
package api

import (
	"strings"

	"recmap/internal/entity"
)

// descriptorFor ищет сущность по имени без учёта регистра.
// Допускается FQN из DSL ("app.Repo"): модуль должен совпасть со схемой.
func (b *Backend) descriptorFor(name string) (*entity.Descriptor, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}
	reg := b.Engine.Registry()
	if d, ok := reg.ByName(name); ok {
		return d, true
	}

	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i >= len(name)-1 {
		return nil, false
	}
	d, ok := reg.ByName(name[i+1:])
	if !ok {
		return nil, false
	}
	if s := d.Schema(); s == nil || !strings.EqualFold(s.Module, name[:i]) {
		return nil, false
	}
	return d, true
}

// moduleOf — модуль DSL-схемы сущности, пусто без схемы.
func moduleOf(d *entity.Descriptor) string {
	if s := d.Schema(); s != nil {
		return s.Module
	}
	return ""
}
