package entity

import (
	"fmt"
	"strings"
)

// TagName — ключ struct-тега: `recmap:"authorName,storage=Author Name"`.
const TagName = "recmap"

type tagSpec struct {
	name     string
	id       bool
	lazy     bool
	storage  string
	explicit bool // тег присутствует
}

func parseTag(raw string, present bool) (tagSpec, error) {
	if !present || raw == "-" {
		return tagSpec{}, nil
	}
	spec := tagSpec{explicit: true}
	parts := strings.Split(raw, ",")
	spec.name = strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		switch {
		case p == "":
		case p == "id":
			spec.id = true
		case p == "lazy":
			spec.lazy = true
		case strings.HasPrefix(p, "storage="):
			spec.storage = strings.TrimPrefix(p, "storage=")
			if spec.storage == "" {
				return tagSpec{}, fmt.Errorf("%w: empty storage name in %q", ErrBadTag, raw)
			}
		default:
			return tagSpec{}, fmt.Errorf("%w: unknown option %q in %q", ErrBadTag, p, raw)
		}
	}
	return spec, nil
}
