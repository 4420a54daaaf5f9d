package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recmap/internal/entity"
)

// ===== META HANDLERS =====

type metaEntityListItem struct {
	Module string `json:"module,omitempty"`
	Entity string `json:"entity"`
	Fields int    `json:"fields"`
}

func MetaListHandler(b *Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds := b.Engine.Registry().Descriptors()
		out := make([]metaEntityListItem, 0, len(ds))
		for _, d := range ds {
			out = append(out, metaEntityListItem{Module: moduleOf(d), Entity: d.Name, Fields: len(d.Fields)})
		}
		c.JSON(http.StatusOK, out)
	}
}

type metaField struct {
	Name    string `json:"name"`
	Storage string `json:"storage"`
	Kind    string `json:"kind"`
	Scalar  string `json:"scalar,omitempty"`
	Ref     string `json:"ref,omitempty"`
	Lazy    bool   `json:"lazy,omitempty"`
	ID      bool   `json:"id,omitempty"`
}

type metaEntity struct {
	Module string      `json:"module,omitempty"`
	Entity string      `json:"entity"`
	GoType string      `json:"goType"`
	Fields []metaField `json:"fields"`
}

func MetaEntityHandler(b *Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ok := b.descriptorFor(c.Param("entity"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
			return
		}
		idName := d.ID().Name
		fields := make([]metaField, 0, len(d.Fields))
		for i := range d.Fields {
			f := &d.Fields[i]
			mf := metaField{
				Name:    f.Name,
				Storage: f.Storage,
				Kind:    f.Kind.String(),
				Lazy:    f.Lazy,
				ID:      f.Name == idName,
			}
			if f.Kind.IsReference() {
				mf.Ref = f.Elem.Name()
				if target, ok := b.Engine.Registry().Lookup(f.Elem); ok {
					mf.Ref = target.Name
				}
			} else {
				mf.Scalar = f.Scalar.String()
			}
			fields = append(fields, mf)
		}
		c.JSON(http.StatusOK, metaEntity{
			Module: moduleOf(d),
			Entity: d.Name,
			GoType: d.Type.String(),
			Fields: fields,
		})
	}
}

// lintOut — пустой список вместо null.
func lintOut(issues []entity.Issue) []entity.Issue {
	if issues == nil {
		return []entity.Issue{}
	}
	return issues
}
