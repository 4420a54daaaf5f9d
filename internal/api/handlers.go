package api

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"recmap/internal/entity"
)

// GET /api/:entity/:id
func GetOneHandler(b *Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ok := b.descriptorFor(c.Param("entity"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
			return
		}
		obj, found, ok := b.load(c, d)
		if !ok {
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusOK, obj)
	}
}

// GET /api/:entity/:id/:field — дочитывает одно поле, в том числе lazy.
func GetFieldHandler(b *Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ok := b.descriptorFor(c.Param("entity"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
			return
		}
		name := c.Param("field")
		f, ok := d.Field(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Field not found"})
			return
		}
		obj, found, ok := b.load(c, d)
		if !ok {
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		if err := b.Engine.Fetch(c.Request.Context(), obj, name); err != nil {
			b.fail(c, err)
			return
		}
		v := reflect.ValueOf(obj).Elem().Field(f.Index).Interface()
		c.JSON(http.StatusOK, gin.H{name: v})
	}
}

// POST /api/:entity — строковый id, если не задан, получает ULID.
func CreateHandler(b *Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ok := b.descriptorFor(c.Param("entity"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
			return
		}
		p := d.New()
		if err := c.ShouldBindJSON(p.Interface()); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		if _, err := d.IdentityValue(p.Elem()); err != nil && d.ID().Scalar == entity.ScalarString {
			if err := d.SetIdentity(p.Elem(), b.newID()); err != nil {
				b.fail(c, err)
				return
			}
		}
		if err := b.Engine.Persist(c.Request.Context(), p.Interface()); err != nil {
			b.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, p.Interface())
	}
}

// PUT /api/:entity/:id — id из пути главнее id в теле.
func UpdateHandler(b *Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ok := b.descriptorFor(c.Param("entity"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
			return
		}
		p := d.New()
		if err := c.ShouldBindJSON(p.Interface()); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		if err := d.SetIdentity(p.Elem(), c.Param("id")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id", "details": err.Error()})
			return
		}
		if err := b.Engine.Persist(c.Request.Context(), p.Interface()); err != nil {
			b.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, p.Interface())
	}
}

// load читает объект по :id. ok=false — ответ уже отправлен.
func (b *Backend) load(c *gin.Context, d *entity.Descriptor) (obj any, found, ok bool) {
	tmpl, err := d.Template(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id", "details": err.Error()})
		return nil, false, false
	}
	obj, found, err = b.Engine.Load(c.Request.Context(), tmpl.Interface())
	if err != nil {
		b.fail(c, err)
		return nil, false, false
	}
	return obj, found, true
}
