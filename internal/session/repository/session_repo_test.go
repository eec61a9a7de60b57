package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodgrain-labs/furnplan-backend/internal/session/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	ctx := context.Background()
	err = client.Ping(ctx).Err()
	require.NoError(t, err)

	return client, mr
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := NewSessionRepository(client)

	session, err := repo.Create("user123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "user123", session.UserID)
	assert.Equal(t, "A standard piece of furniture.", session.Brief.Description)
	require.NotNil(t, session.Brief.TargetDimensions)
	assert.Equal(t, "in", session.Brief.TargetDimensions.Units)
	assert.False(t, session.CreatedAt.IsZero())

	got, err := repo.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, session.Brief, got.Brief)

	ids, err := repo.ListByUserID("user123")
	require.NoError(t, err)
	assert.Contains(t, ids, session.ID)
}

func TestSessionRepository_GetMissing(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := NewSessionRepository(client)

	_, err := repo.Get("no-such-session")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_SavePersistsBriefChanges(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := NewSessionRepository(client)

	session, err := repo.Create("user123")
	require.NoError(t, err)

	session.Brief.Material = "Walnut"
	session.Brief.FurnitureType = "Table"
	session.CurrentPlanID = "plan_1"
	require.NoError(t, repo.Save(session))

	got, err := repo.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Walnut", got.Brief.Material)
	assert.Equal(t, "Table", got.Brief.FurnitureType)
	assert.Equal(t, "plan_1", got.CurrentPlanID)
}

func TestSessionRepository_Turns(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := NewSessionRepository(client)

	session, err := repo.Create("user123")
	require.NoError(t, err)

	require.NoError(t, repo.AppendTurn(session.ID, domain.ChatTurn{Role: domain.RoleUser, Content: "I want a walnut table"}))
	require.NoError(t, repo.AppendTurn(session.ID, domain.ChatTurn{Role: domain.RoleAssistant, Content: "Noted walnut."}))

	turns, err := repo.Turns(session.ID)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "I want a walnut table", turns[0].Content)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.NotEmpty(t, turns[0].ID)
	assert.False(t, turns[0].CreatedAt.IsZero())
}

func TestSessionRepository_Reset(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := NewSessionRepository(client)

	session, err := repo.Create("user123")
	require.NoError(t, err)

	session.Brief.Material = "Walnut"
	session.CurrentPlanID = "plan_1"
	require.NoError(t, repo.Save(session))
	require.NoError(t, repo.AppendTurn(session.ID, domain.ChatTurn{Role: domain.RoleUser, Content: "hello"}))

	reset, err := repo.Reset(session.ID)
	require.NoError(t, err)
	assert.Empty(t, reset.Brief.Material)
	assert.Equal(t, "A standard piece of furniture.", reset.Brief.Description)
	assert.Empty(t, reset.CurrentPlanID)
	assert.Equal(t, session.ID, reset.ID)
	assert.Equal(t, "user123", reset.UserID)

	turns, err := repo.Turns(session.ID)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSessionRepository_GenerationGate(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := NewSessionRepository(client)

	session, err := repo.Create("user123")
	require.NoError(t, err)

	seq, err := repo.BeginGeneration(session.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, seq)

	busy, err := repo.IsProcessing(session.ID)
	require.NoError(t, err)
	assert.True(t, busy)

	// A second begin while in flight is rejected.
	_, err = repo.BeginGeneration(session.ID)
	assert.ErrorIs(t, err, domain.ErrBusy)

	require.NoError(t, repo.EndGeneration(session.ID))

	busy, err = repo.IsProcessing(session.ID)
	require.NoError(t, err)
	assert.False(t, busy)

	// Sequence keeps advancing across generations.
	seq, err = repo.BeginGeneration(session.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, seq)

	current, err := repo.CurrentGeneration(session.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, current)
}

func TestSessionRepository_Delete(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := NewSessionRepository(client)

	session, err := repo.Create("user123")
	require.NoError(t, err)
	require.NoError(t, repo.AppendTurn(session.ID, domain.ChatTurn{Role: domain.RoleUser, Content: "hello"}))

	require.NoError(t, repo.Delete(session.ID))

	_, err = repo.Get(session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	ids, err := repo.ListByUserID("user123")
	require.NoError(t, err)
	assert.NotContains(t, ids, session.ID)
}
