// Package types provides type definitions for structured data used throughout the ResumAI system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterRequest represents the request to create a new user account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents a user account for API responses. The password hash is
// never part of this type.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// AuthResponse is the login/register response with user data and session token.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// SaveAnalysisRequest is the body for persisting an analysis document.
type SaveAnalysisRequest struct {
	ResumeText string         `json:"resumeText"`
	Analysis   ResumeAnalysis `json:"analysis"`
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
