package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *Store
}

func Register(rg *gin.RouterGroup, store *Store) {
	h := &Handler{store: store}

	rg.GET("/components", h.components)
	rg.GET("/materials/lumber", h.lumber)
	rg.GET("/materials/sheet", h.sheetGoods)
	rg.GET("/materials/other", h.otherMaterials)
}

func (h *Handler) components(c *gin.Context) {
	ctx := c.Request.Context()

	if componentType := c.Query("type"); componentType != "" {
		items, err := h.store.ComponentsByType(ctx, componentType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "components": items})
		return
	}

	items, err := h.store.Components(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "components": items})
}

func (h *Handler) lumber(c *gin.Context) {
	items, err := h.store.Lumber(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "materials": items})
}

func (h *Handler) sheetGoods(c *gin.Context) {
	items, err := h.store.SheetGoods(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "materials": items})
}

func (h *Handler) otherMaterials(c *gin.Context) {
	items, err := h.store.OtherMaterials(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "materials": items})
}
