package ports

import (
	"context"

	"github.com/bankline/auth-service/internal/core/domain"
)

// AuthResult pairs a public user view with a freshly issued bearer token.
type AuthResult struct {
	User  *domain.PublicUser `json:"user"`
	Token string             `json:"token"`
}

// AuthService is the credential and token lifecycle exposed to the transport layer.
type AuthService interface {
	// Register creates a user with a hashed password and issues a token.
	// Fails with domain.ErrDuplicateUsername or domain.ErrDuplicateEmail on
	// collision (username takes precedence when both collide).
	Register(ctx context.Context, username, password, email string, role domain.Role) (*AuthResult, error)

	// Login verifies credentials and issues a token. Fails with
	// domain.ErrUserNotFound for an unknown username, distinct from
	// domain.ErrInvalidPassword for a bad password.
	Login(ctx context.Context, username, password string) (*AuthResult, error)

	// Validate checks credentials without minting a token. A wrong password
	// or unknown username yields (nil, nil), not an error.
	Validate(ctx context.Context, username, password string) (*domain.PublicUser, error)

	// FindByID returns the public view or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*domain.PublicUser, error)

	// ListAll returns all public views, most recently created first.
	ListAll(ctx context.Context) ([]*domain.PublicUser, error)

	// DeleteByID removes a user, compensating for a failed downstream step
	// in the registration saga. Fails with domain.ErrUserNotFound.
	DeleteByID(ctx context.Context, id string) error
}
