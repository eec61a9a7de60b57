package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/woodgrain-labs/furnplan-backend/internal/auth"
	"github.com/woodgrain-labs/furnplan-backend/internal/design/brief"
	"github.com/woodgrain-labs/furnplan-backend/internal/design/geometry"
	"github.com/woodgrain-labs/furnplan-backend/internal/design/planner"
	"github.com/woodgrain-labs/furnplan-backend/internal/export"
	"github.com/woodgrain-labs/furnplan-backend/internal/plans"
	"github.com/woodgrain-labs/furnplan-backend/internal/pricing"
	sessdomain "github.com/woodgrain-labs/furnplan-backend/internal/session/domain"
	sessrepo "github.com/woodgrain-labs/furnplan-backend/internal/session/repository"
)

// Handler owns the conversational design endpoints: chat, plan generation,
// session lifecycle, derived 3D model and export.
type Handler struct {
	sessions  *sessrepo.SessionRepository
	plans     *plans.Repo
	planner   *planner.Service
	deriver   *geometry.Deriver
	estimator *pricing.Estimator
}

func NewHandler(
	sessions *sessrepo.SessionRepository,
	planRepo *plans.Repo,
	plannerSvc *planner.Service,
	deriver *geometry.Deriver,
	estimator *pricing.Estimator,
) *Handler {
	return &Handler{
		sessions:  sessions,
		plans:     planRepo,
		planner:   plannerSvc,
		deriver:   deriver,
		estimator: estimator,
	}
}

func Register(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/session", h.createSession)
	rg.GET("/session/:id", h.getSession)
	rg.POST("/session/:id/reset", h.resetSession)
	rg.POST("/chat", h.chat)
	rg.POST("/generate", h.generate)
	rg.GET("/plans/:id/model", h.model)
	rg.GET("/plans/:id/export", h.export)
}

func (h *Handler) createSession(c *gin.Context) {
	session, err := h.sessions.Create(auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "session": session})
}

func (h *Handler) getSession(c *gin.Context) {
	sessionID := c.Param("id")

	session, err := h.sessions.Get(sessionID)
	if errors.Is(err, sessdomain.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	turns, err := h.sessions.Turns(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "session": session, "messages": turns})
}

func (h *Handler) resetSession(c *gin.Context) {
	session, err := h.sessions.Reset(c.Param("id"))
	if errors.Is(err, sessdomain.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": session})
}

type chatReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	session, err := h.sessions.Get(req.SessionID)
	if errors.Is(err, sessdomain.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	// Chat is blocked while a plan is being generated for the session.
	busy, err := h.sessions.IsProcessing(req.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if busy {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "generation in progress"})
		return
	}

	message := strings.TrimSpace(req.Message)

	if brief.IsNewDesign(message) {
		session, err = h.sessions.Reset(req.SessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
	} else {
		session.Brief = brief.Extract(message, session.Brief)
		if err := h.sessions.Save(session); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
	}

	reply := brief.Respond(message, session.Brief)

	if err := h.sessions.AppendTurn(req.SessionID, sessdomain.ChatTurn{Role: sessdomain.RoleUser, Content: message}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if err := h.sessions.AppendTurn(req.SessionID, sessdomain.ChatTurn{Role: sessdomain.RoleAssistant, Content: reply}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "reply": reply, "brief": session.Brief})
}

type generateReq struct {
	SessionID string `json:"session_id"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	session, err := h.sessions.Get(req.SessionID)
	if errors.Is(err, sessdomain.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	seq, err := h.sessions.BeginGeneration(req.SessionID)
	if errors.Is(err, sessdomain.ErrBusy) {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "generation already in progress"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	defer h.sessions.EndGeneration(req.SessionID)

	userID := auth.UserID(c)

	plan, err := h.planner.Generate(c.Request.Context(), userID, session.Brief)
	if err != nil {
		var ve *planner.ValidationError
		switch {
		case errors.As(err, &ve):
			msgs := make([]string, 0, len(ve.Violations))
			for _, v := range ve.Violations {
				msgs = append(msgs, v.String())
			}
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "generated plan failed validation", "violations": msgs})
		case errors.Is(err, planner.ErrAIUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "plan generation is unavailable, please try again"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	// A reset that happened mid-generation invalidates this result; the plan
	// is discarded, never persisted.
	current, err := h.sessions.CurrentGeneration(req.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if current != seq {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "session was reset during generation"})
		return
	}

	if h.estimator != nil {
		// Cost fill is best effort; a price table outage never blocks a plan.
		_ = h.estimator.FillCosts(c.Request.Context(), plan)
	}

	if err := h.plans.Create(c.Request.Context(), plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	session.CurrentPlanID = plan.ID
	if err := h.sessions.Save(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "plan": plan})
}

func (h *Handler) model(c *gin.Context) {
	plan, err := h.plans.Get(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if errors.Is(err, plans.ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	instances := h.deriver.BuildModel(plan)
	c.JSON(http.StatusOK, gin.H{"ok": true, "plan_id": plan.ID, "model": instances})
}

func (h *Handler) export(c *gin.Context) {
	plan, err := h.plans.Get(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if errors.Is(err, plans.ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	section := c.DefaultQuery("section", export.SectionAll)
	format := c.DefaultQuery("format", export.FormatJSON)
	fileName := export.FileName(plan.PlanName, section)

	switch format {
	case export.FormatJSON:
		data, err := export.JSON(plan, section)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+fileName+`.json"`)
		c.Data(http.StatusOK, "application/json", data)

	case export.FormatCSV:
		content, err := export.CSV(plan, section)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+fileName+`.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))

	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown export format"})
	}
}
