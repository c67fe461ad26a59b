package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bankline/auth-service/internal/core/domain"
)

func TestMapUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "username constraint",
			err:  &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_username_key"},
			want: domain.ErrDuplicateUsername,
		},
		{
			name: "email constraint",
			err:  &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_email_key"},
			want: domain.ErrDuplicateEmail,
		},
		{
			name: "wrapped violation",
			err:  fmt.Errorf("exec: %w", &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_email_key"}),
			want: domain.ErrDuplicateEmail,
		},
		{
			name: "other pg error",
			err:  &pgconn.PgError{Code: "42P01"},
			want: nil,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapUniqueViolation(tc.err); got != tc.want {
				t.Fatalf("mapUniqueViolation() = %v, want %v", got, tc.want)
			}
		})
	}
}
