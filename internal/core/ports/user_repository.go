package ports

import (
	"context"

	"github.com/bankline/auth-service/internal/core/domain"
)

// UserRepository is the persistence contract the auth core depends on.
//
// Uniqueness on username and email must be enforced by the store itself
// (unique constraints), not only by FindByUsernameOrEmail: the pre-check in
// Register is advisory and two concurrent registrations can both pass it.
// Insert must surface a constraint violation as domain.ErrDuplicateUsername
// or domain.ErrDuplicateEmail.
type UserRepository interface {
	// FindByUsernameOrEmail returns the first user matching either value,
	// or domain.ErrUserNotFound. The password hash is included.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)

	// FindByUsername returns the user with the password hash populated,
	// or domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID returns the user or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// Insert persists a new user and returns the stored record with
	// server-assigned created_at/updated_at.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)

	// ListAll returns every user ordered by creation time, newest first.
	// An empty store yields an empty slice.
	ListAll(ctx context.Context) ([]*domain.User, error)

	// Remove physically deletes the user.
	Remove(ctx context.Context, user *domain.User) error
}
