package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/bankline/auth-service/internal/core/domain"
)

// Expected table:
//
//	CREATE TABLE users (
//	    id            UUID PRIMARY KEY,
//	    username      VARCHAR(50)  NOT NULL,
//	    email         VARCHAR(100) NOT NULL,
//	    password_hash TEXT         NOT NULL,
//	    role          VARCHAR(16)  NOT NULL DEFAULT 'client',
//	    created_at    TIMESTAMPTZ  NOT NULL DEFAULT now(),
//	    updated_at    TIMESTAMPTZ  NOT NULL DEFAULT now(),
//	    CONSTRAINT users_username_key UNIQUE (username),
//	    CONSTRAINT users_email_key    UNIQUE (email)
//	);
//
// The unique constraints are the authority for username/email uniqueness;
// the service's pre-insert check only exists for friendlier error ordering.

const uniqueViolation = "23505"

// UserRepository is the Postgres-backed credential store.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

const userColumns = "id, username, email, password_hash, role, created_at, updated_at"

func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $2 LIMIT 1`,
		username, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by username or email: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return row.toDomain(), nil
}

// Insert persists the user and reads back the server-assigned timestamps.
// A unique-constraint violation is translated into the corresponding
// duplicate error so the race the pre-check cannot close still surfaces as
// a domain conflict, never a raw storage error.
func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		`INSERT INTO users (id, username, email, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		user.ID, user.Username, user.Email, user.PasswordHash, string(user.Role))
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	var rows []userRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users, nil
}

func (r *UserRepository) Remove(ctx context.Context, user *domain.User) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, user.ID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// mapUniqueViolation returns the matching duplicate error for a Postgres
// unique-constraint violation, or nil when err is something else.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	if strings.Contains(pgErr.ConstraintName, "email") {
		return domain.ErrDuplicateEmail
	}
	return domain.ErrDuplicateUsername
}
