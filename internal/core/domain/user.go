package domain

import (
	"errors"
	"time"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
	RoleTeller Role = "teller"
)

// DefaultRole is assigned when registration omits the role.
const DefaultRole = RoleClient

// Valid reports whether the role belongs to the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleTeller:
		return true
	}
	return false
}

var ErrDuplicateUsername = errors.New("username already exists")
var ErrDuplicateEmail = errors.New("email already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidPassword = errors.New("invalid password")
var ErrInvalidInput = errors.New("invalid input")

// User models a registered account. PasswordHash never leaves the core;
// callers receive users through PublicView.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the hash-free projection exposed externally.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicView strips the password hash from a user record.
func (u *User) PublicView() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
