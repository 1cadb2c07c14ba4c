package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanush/resumai/internal/types"
)

func TestMemory_CreateUser(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	user, err := m.CreateUser(ctx, "a@example.com", "Ada", "hash1")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "a@example.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestMemory_DuplicateEmailLeavesExistingRecord(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first, err := m.CreateUser(ctx, "a@example.com", "Ada", "hash1")
	require.NoError(t, err)

	_, err = m.CreateUser(ctx, "a@example.com", "Impostor", "hash2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	got, err := m.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "hash1", got.PasswordHash)
}

func TestMemory_GetUserMissing(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	user, err := m.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = m.GetUserByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestMemory_HistoryNewestFirst(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	user, err := m.CreateUser(ctx, "a@example.com", "Ada", "hash")
	require.NoError(t, err)

	var saved []*types.HistoryItem
	for i := 1; i <= 3; i++ {
		item, err := m.SaveAnalysis(ctx, user.ID, fmt.Sprintf("resume v%d", i), types.ResumeAnalysis{Score: i})
		require.NoError(t, err)
		saved = append(saved, item)
	}

	items, err := m.ListAnalyses(ctx, user.ID, DefaultHistoryLimit)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, saved[2].ID, items[0].ID)
	assert.Equal(t, saved[1].ID, items[1].ID)
	assert.Equal(t, saved[0].ID, items[2].ID)
}

func TestMemory_HistoryLimit(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	user, err := m.CreateUser(ctx, "a@example.com", "Ada", "hash")
	require.NoError(t, err)

	for i := 0; i < 55; i++ {
		_, err := m.SaveAnalysis(ctx, user.ID, "resume", types.ResumeAnalysis{Score: i})
		require.NoError(t, err)
	}

	items, err := m.ListAnalyses(ctx, user.ID, DefaultHistoryLimit)
	require.NoError(t, err)
	assert.Len(t, items, DefaultHistoryLimit)
	// Newest of the 55 saves carries the highest score.
	assert.Equal(t, 54, items[0].Analysis.Score)
}

func TestMemory_HistoryIsolatedPerUser(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	ada, err := m.CreateUser(ctx, "ada@example.com", "Ada", "hash")
	require.NoError(t, err)
	bob, err := m.CreateUser(ctx, "bob@example.com", "Bob", "hash")
	require.NoError(t, err)

	_, err = m.SaveAnalysis(ctx, ada.ID, "ada resume", types.ResumeAnalysis{Score: 1})
	require.NoError(t, err)

	items, err := m.ListAnalyses(ctx, bob.ID, DefaultHistoryLimit)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemory_Ping(t *testing.T) {
	m := NewMemory()
	assert.NoError(t, m.Ping(context.Background()))
}
