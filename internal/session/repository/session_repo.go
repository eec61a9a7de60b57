package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/brief"
	"github.com/woodgrain-labs/furnplan-backend/internal/session/domain"
)

const (
	sessionKeyPrefix    = "design:session:"    // Session state: design:session:{session_id}
	userSessionPrefix   = "design:user:"       // Set of session IDs for a user: design:user:{user_id}:sessions
	turnsKeySuffix      = ":turns"             // Chat turn list: design:session:{session_id}:turns
	processingKeySuffix = ":processing"        // Generation-in-flight flag
	seqKeySuffix        = ":seq"               // Generation sequence counter
	sessionTTL          = 7 * 24 * time.Hour   // TTL for session state (7 days)
	processingTTL       = 2 * time.Minute      // Flag expires even if a worker dies mid-generation
)

// SessionRepository handles Redis operations for design sessions
type SessionRepository struct {
	client *redis.Client
	ctx    context.Context
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
		ctx:    context.Background(),
	}
}

// Create creates a new design session seeded with the default brief
func (r *SessionRepository) Create(userID string) (*domain.Session, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Brief:     brief.DefaultBrief(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	userSetKey := r.userSessionSetKey(userID)

	pipe := r.client.Pipeline()
	pipe.Set(r.ctx, r.sessionKey(session.ID), data, sessionTTL)
	pipe.SAdd(r.ctx, userSetKey, session.ID)
	pipe.Expire(r.ctx, userSetKey, sessionTTL)
	if _, err := pipe.Exec(r.ctx); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(sessionID string) (*domain.Session, error) {
	data, err := r.client.Get(r.ctx, r.sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Save persists an updated session and refreshes its TTL
func (r *SessionRepository) Save(session *domain.Session) error {
	session.UpdatedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(r.ctx, r.sessionKey(session.ID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Reset restores a session to its initial state: default brief, no current
// plan, empty chat history. The session ID and owner are kept.
func (r *SessionRepository) Reset(sessionID string) (*domain.Session, error) {
	session, err := r.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.Brief = brief.DefaultBrief()
	session.CurrentPlanID = ""
	session.UpdatedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(r.ctx, r.sessionKey(sessionID), data, sessionTTL)
	pipe.Del(r.ctx, r.turnsKey(sessionID))
	// Invalidate any generation still in flight for the old design.
	pipe.Incr(r.ctx, r.seqKey(sessionID))
	if _, err := pipe.Exec(r.ctx); err != nil {
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}
	return session, nil
}

// AppendTurn appends a chat turn to the session's history
func (r *SessionRepository) AppendTurn(sessionID string, turn domain.ChatTurn) error {
	if turn.ID == "" {
		turn.ID = uuid.New().String()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}

	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal chat turn: %w", err)
	}

	key := r.turnsKey(sessionID)
	pipe := r.client.Pipeline()
	pipe.RPush(r.ctx, key, data)
	pipe.Expire(r.ctx, key, sessionTTL)
	if _, err := pipe.Exec(r.ctx); err != nil {
		return fmt.Errorf("failed to append chat turn: %w", err)
	}
	return nil
}

// Turns retrieves the full chat history in order
func (r *SessionRepository) Turns(sessionID string) ([]domain.ChatTurn, error) {
	items, err := r.client.LRange(r.ctx, r.turnsKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list chat turns: %w", err)
	}

	turns := make([]domain.ChatTurn, 0, len(items))
	for _, item := range items {
		var turn domain.ChatTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chat turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// BeginGeneration marks the session as having a generation in flight and
// returns a sequence token for it. Returns ErrBusy if one is already running.
// Responses carrying a token older than the current sequence must be
// discarded by the caller.
func (r *SessionRepository) BeginGeneration(sessionID string) (int64, error) {
	ok, err := r.client.SetNX(r.ctx, r.processingKey(sessionID), "1", processingTTL).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to set processing flag: %w", err)
	}
	if !ok {
		return 0, domain.ErrBusy
	}

	seq, err := r.client.Incr(r.ctx, r.seqKey(sessionID)).Result()
	if err != nil {
		// Roll back the flag so the session does not stay locked.
		r.client.Del(r.ctx, r.processingKey(sessionID))
		return 0, fmt.Errorf("failed to advance generation sequence: %w", err)
	}
	return seq, nil
}

// EndGeneration clears the in-flight flag
func (r *SessionRepository) EndGeneration(sessionID string) error {
	if err := r.client.Del(r.ctx, r.processingKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear processing flag: %w", err)
	}
	return nil
}

// IsProcessing reports whether a generation is in flight for the session
func (r *SessionRepository) IsProcessing(sessionID string) (bool, error) {
	n, err := r.client.Exists(r.ctx, r.processingKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check processing flag: %w", err)
	}
	return n > 0, nil
}

// CurrentGeneration returns the latest issued sequence token, 0 if none
func (r *SessionRepository) CurrentGeneration(sessionID string) (int64, error) {
	seq, err := r.client.Get(r.ctx, r.seqKey(sessionID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get generation sequence: %w", err)
	}
	return seq, nil
}

// ListByUserID retrieves all session IDs for a user
func (r *SessionRepository) ListByUserID(userID string) ([]string, error) {
	ids, err := r.client.SMembers(r.ctx, r.userSessionSetKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for user: %w", err)
	}
	return ids, nil
}

// Delete removes a session and its chat history
func (r *SessionRepository) Delete(sessionID string) error {
	session, err := r.Get(sessionID)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(r.ctx, r.sessionKey(sessionID))
	pipe.Del(r.ctx, r.turnsKey(sessionID))
	pipe.Del(r.ctx, r.processingKey(sessionID))
	pipe.Del(r.ctx, r.seqKey(sessionID))
	pipe.SRem(r.ctx, r.userSessionSetKey(session.UserID), sessionID)
	if _, err := pipe.Exec(r.ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Helper methods for key generation
func (r *SessionRepository) sessionKey(sessionID string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, sessionID)
}

func (r *SessionRepository) turnsKey(sessionID string) string {
	return fmt.Sprintf("%s%s%s", sessionKeyPrefix, sessionID, turnsKeySuffix)
}

func (r *SessionRepository) processingKey(sessionID string) string {
	return fmt.Sprintf("%s%s%s", sessionKeyPrefix, sessionID, processingKeySuffix)
}

func (r *SessionRepository) seqKey(sessionID string) string {
	return fmt.Sprintf("%s%s%s", sessionKeyPrefix, sessionID, seqKeySuffix)
}

func (r *SessionRepository) userSessionSetKey(userID string) string {
	return fmt.Sprintf("%s%s:sessions", userSessionPrefix, userID)
}
