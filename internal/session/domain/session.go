package domain

import (
	"errors"
	"time"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

// Chat turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrBusy means a plan generation is already in flight for the session.
	ErrBusy = errors.New("generation already in progress")
)

// ChatTurn is one message in a design conversation.
type ChatTurn struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the conversational state for one design-in-progress. The brief
// accumulates across turns; CurrentPlanID points at the latest accepted plan,
// if any. Chat turns are stored separately as an append-only list.
type Session struct {
	ID            string             `json:"session_id"`
	UserID        string             `json:"user_id"`
	Brief         schema.DesignBrief `json:"brief"`
	CurrentPlanID string             `json:"current_plan_id,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
