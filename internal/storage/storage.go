// Package storage provides the persistence engines for the ResumAI backend.
// Route handlers are written against the Store interface only; the engine
// (Postgres or in-process memory) is chosen once at startup.
package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/thanush/resumai/internal/types"
)

// ErrDuplicateEmail indicates the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// DefaultHistoryLimit caps how many history items a listing returns.
const DefaultHistoryLimit = 50

// User is a stored user account, including the credential hash.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Store is the persistence contract shared by both engines.
type Store interface {
	// CreateUser inserts a new account. Fails with ErrDuplicateEmail when the
	// email exists; the existing record is left untouched.
	CreateUser(ctx context.Context, email, name, passwordHash string) (*User, error)
	// GetUserByEmail returns the account for an email, or nil when absent.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// GetUserByID returns the account for an id, or nil when absent.
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	// SaveAnalysis persists one analysis document for a user.
	SaveAnalysis(ctx context.Context, userID uuid.UUID, resumeText string, analysis types.ResumeAnalysis) (*types.HistoryItem, error)
	// ListAnalyses returns a user's analyses, newest first, at most limit
	// items (DefaultHistoryLimit when limit <= 0).
	ListAnalyses(ctx context.Context, userID uuid.UUID, limit int) ([]types.HistoryItem, error)
	// Ping verifies the engine is reachable.
	Ping(ctx context.Context) error
	// Close releases engine resources.
	Close()
}

// Open selects the storage engine. A usable databaseURL gets the Postgres
// engine; an empty one, or a connection failure, falls back to the in-memory
// engine with a logged warning rather than a startup failure. Data in the
// memory engine is lost on restart.
func Open(ctx context.Context, databaseURL string) Store {
	if databaseURL == "" {
		log.Println("[storage] no database configured, using in-memory engine")
		return NewMemory()
	}

	store, err := ConnectPostgres(ctx, databaseURL)
	if err != nil {
		log.Printf("[storage] database connection failed, using in-memory engine: %v", err)
		return NewMemory()
	}

	log.Println("[storage] connected to Postgres")
	return store
}
