package plans

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/woodgrain-labs/furnplan-backend/internal/auth"
	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

// decodePlan runs the request body through the same closed-schema validation
// as model output. Saved documents are trusted downstream.
func decodePlan(c *gin.Context) (*schema.BuildPlan, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return nil, false
	}

	plan, violations := schema.DecodeBuildPlan(raw)
	if len(violations) > 0 {
		msgs := make([]string, 0, len(violations))
		for _, v := range violations {
			msgs = append(msgs, v.String())
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "plan failed validation", "violations": msgs})
		return nil, false
	}
	return plan, true
}

func (h *Handler) create(c *gin.Context) {
	plan, ok := decodePlan(c)
	if !ok {
		return
	}

	plan.UserID = auth.UserID(c)
	if err := h.repo.Create(c.Request.Context(), plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "plan": plan})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "plans": items})
}

func (h *Handler) get(c *gin.Context) {
	plan, err := h.repo.Get(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if errors.Is(err, ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "plan": plan})
}

func (h *Handler) update(c *gin.Context) {
	plan, ok := decodePlan(c)
	if !ok {
		return
	}

	// Path wins over whatever id the document carries.
	plan.ID = c.Param("id")

	updated, err := h.repo.Update(c.Request.Context(), auth.UserID(c), plan)
	if errors.Is(err, ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "plan": updated})
}

func (h *Handler) delete(c *gin.Context) {
	ok, err := h.repo.Delete(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
