package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thanush/resumai/internal/types"
)

// Memory is the in-process storage engine used when no database is
// configured. All data is lost on restart; acceptable for a reference/dev
// deployment. Intended for single-process, low-concurrency usage, though
// access is mutex-guarded so concurrent requests stay safe.
type Memory struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]*User
	byEmail  map[string]uuid.UUID
	analyses map[uuid.UUID][]types.HistoryItem // keyed by user id, newest first
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:    make(map[uuid.UUID]*User),
		byEmail:  make(map[string]uuid.UUID),
		analyses: make(map[uuid.UUID][]types.HistoryItem),
	}
}

// CreateUser inserts a new account or fails with ErrDuplicateEmail.
func (m *Memory) CreateUser(_ context.Context, email, name, passwordHash string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[email]; exists {
		return nil, ErrDuplicateEmail
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.users[user.ID] = user
	m.byEmail[email] = user.ID

	copied := *user
	return &copied, nil
}

// GetUserByEmail returns the account for an email, or nil when absent.
func (m *Memory) GetUserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *m.users[id]
	return &copied, nil
}

// GetUserByID returns the account for an id, or nil when absent.
func (m *Memory) GetUserByID(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

// SaveAnalysis prepends one analysis document to the user's history.
func (m *Memory) SaveAnalysis(_ context.Context, userID uuid.UUID, resumeText string, analysis types.ResumeAnalysis) (*types.HistoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item := types.HistoryItem{
		ID:         uuid.New(),
		UserID:     userID.String(),
		Timestamp:  time.Now(),
		ResumeText: resumeText,
		Analysis:   analysis,
	}
	m.analyses[userID] = append([]types.HistoryItem{item}, m.analyses[userID]...)

	copied := item
	return &copied, nil
}

// ListAnalyses returns a user's analyses, newest first.
func (m *Memory) ListAnalyses(_ context.Context, userID uuid.UUID, limit int) ([]types.HistoryItem, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Prepend-on-insert keeps the slice newest first.
	history := m.analyses[userID]
	items := make([]types.HistoryItem, len(history))
	copy(items, history)

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// Ping always succeeds for the memory engine.
func (m *Memory) Ping(context.Context) error {
	return nil
}

// Close is a no-op for the memory engine.
func (m *Memory) Close() {}
