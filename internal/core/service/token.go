package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bankline/auth-service/internal/api/metrics"
	"github.com/bankline/auth-service/internal/core/domain"
)

// issueToken signs an HS256 bearer token for the user. Downstream
// authorization depends on exactly these claims: sub (user id), username,
// role, plus iat/exp with exp driven by the configured TTL.
func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	metrics.TokensIssuedTotal.Inc()
	return signed, nil
}

// hashPassword derives a salted bcrypt hash from a plaintext password.
// A value that already carries a bcrypt prefix is returned as-is; hashing is
// an explicit registration step here, so the guard only protects against a
// caller feeding an already-persisted hash back in.
func (s *AuthService) hashPassword(password string) (string, error) {
	if strings.HasPrefix(password, "$2a$") || strings.HasPrefix(password, "$2b$") {
		return password, nil
	}

	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())

	return string(hash), nil
}

// verifyPassword compares a plaintext attempt against the stored bcrypt hash
// using bcrypt's constant-time comparison.
func (s *AuthService) verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
