// Package server provides the HTTP REST API for the ResumAI backend.
package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/thanush/resumai/internal/config"
	"github.com/thanush/resumai/internal/storage"
	"github.com/thanush/resumai/internal/types"
)

// UserService provides business logic for user authentication operations.
type UserService struct {
	store          storage.Store
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(store storage.Store, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// normalizeEmail lowercases the address so uniqueness and lookup are
// case-insensitive server-side.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// toAPIUser converts a stored user to the API shape, excluding the hash.
func toAPIUser(u *storage.User) *types.User {
	if u == nil {
		return nil
	}
	return &types.User{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// Register creates a new user with a hashed password. Registering an email
// that already exists fails and leaves the existing record untouched.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*storage.User, error) {
	email := normalizeEmail(req.Email)

	name := req.Name
	if name == "" {
		// Same default the reference client applies: local part of the email.
		if at := strings.Index(email, "@"); at > 0 {
			name = email[:at]
		}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, email, name, passwordHash)
	if err != nil {
		if err == storage.ErrDuplicateEmail {
			return nil, &ErrEmailAlreadyExists{Email: email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user. Any mismatch yields ErrInvalidCredentials
// without revealing which field was wrong.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*storage.User, error) {
	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return user, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*storage.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return user, nil
}
