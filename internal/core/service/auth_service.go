package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bankline/auth-service/internal/api/metrics"
	"github.com/bankline/auth-service/internal/core/domain"
	"github.com/bankline/auth-service/internal/core/ports"
)

const (
	defaultBcryptCost = 10
	defaultTokenTTL   = 24 * time.Hour
)

// UserCache abstracts the read-through cache for public user views (Redis).
// All methods are best-effort: a cache failure never fails the operation.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.PublicUser, error)
	Set(ctx context.Context, user *domain.PublicUser) error
	Invalidate(ctx context.Context, id string) error
}

// AuthService implements the credential and token lifecycle against a
// UserRepository. All dependencies are injected at construction.
type AuthService struct {
	repo       ports.UserRepository
	cache      UserCache
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, cache UserCache, jwtSecret string, tokenTTL time.Duration, bcryptCost int, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = defaultBcryptCost
	}
	return &AuthService{
		repo:       repo,
		cache:      cache,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

// Register creates a new user and issues a token for it.
//
// The collision pre-check is advisory only; the repository's unique
// constraints are the authority and Insert reports the loser of a race with
// the same duplicate errors the pre-check would have produced.
func (s *AuthService) Register(ctx context.Context, username, password, email string, role domain.Role) (*ports.AuthResult, error) {
	if username == "" || password == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	if role == "" {
		role = domain.DefaultRole
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	existing, err := s.repo.FindByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		// Username precedence when both collide.
		if existing.Username == username {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, domain.ErrDuplicateEmail
	case err != domain.ErrUserNotFound:
		return nil, fmt.Errorf("register: collision check: %w", err)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues(string(created.Role)).Inc()
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")

	return &ports.AuthResult{User: created.PublicView(), Token: token}, nil
}

// Login verifies a username/password pair and issues a token.
// An unknown username fails with ErrUserNotFound so the transport layer can
// prompt the caller to register first; a wrong password fails with
// ErrInvalidPassword. The distinction is a deliberate UX tradeoff.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			metrics.LoginsTotal.WithLabelValues("user_not_found").Inc()
		}
		return nil, err
	}

	if !s.verifyPassword(user.PasswordHash, password) {
		metrics.LoginsTotal.WithLabelValues("invalid_password").Inc()
		return nil, domain.ErrInvalidPassword
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.AuthResult{User: user.PublicView(), Token: token}, nil
}

// Validate checks credentials without minting a token. No match is not an
// error: both an unknown username and a wrong password yield (nil, nil).
func (s *AuthService) Validate(ctx context.Context, username, password string) (*domain.PublicUser, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("validate: %w", err)
	}

	if !s.verifyPassword(user.PasswordHash, password) {
		return nil, nil
	}
	return user.PublicView(), nil
}

// FindByID returns the public view for an id, reading through the cache.
func (s *AuthService) FindByID(ctx context.Context, id string) (*domain.PublicUser, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("user_id", id).Msg("user cache read failed")
		} else if cached != nil {
			metrics.UserCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.UserCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := user.PublicView()
	if s.cache != nil {
		if err := s.cache.Set(ctx, view); err != nil {
			s.log.Warn().Err(err).Str("user_id", id).Msg("user cache write failed")
		}
	}
	return view, nil
}

// ListAll returns every user's public view, most recently created first.
func (s *AuthService) ListAll(ctx context.Context) ([]*domain.PublicUser, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	views := make([]*domain.PublicUser, 0, len(users))
	for _, u := range users {
		views = append(views, u.PublicView())
	}
	return views, nil
}

// DeleteByID removes a user record. It exists as the compensating action for
// a registration saga whose downstream profile creation failed; the core
// imposes no authorization check, so callers must gate it at the transport
// boundary.
func (s *AuthService) DeleteByID(ctx context.Context, id string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.log.Warn().Str("user_id", id).Msg("delete requested for unknown user")
		}
		return err
	}

	if err := s.repo.Remove(ctx, user); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("user_id", id).Msg("user cache invalidation failed")
		}
	}

	metrics.UsersDeletedTotal.Inc()
	s.log.Info().Str("user_id", id).Str("username", user.Username).Msg("user deleted")
	return nil
}
