package domain

import (
	"errors"
	"time"
)

// Default role assigned on registration.
const (
	DefaultRoleName        = "User"
	DefaultRoleDescription = "This Is The User Role"

	AdminRoleName = "Admin"
)

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrAuthenticationFailed = errors.New("invalid username or password")
	ErrPrincipalNotFound    = errors.New("principal not found")

	// Verifier rejections. Never surfaced to callers as-is.
	ErrAccountDisabled = errors.New("account disabled")
	ErrBadCredentials  = errors.New("bad credentials")

	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrForbidden       = errors.New("access forbidden")
	ErrUnauthenticated = errors.New("authentication required")
)

// Role is a flat authorization tag attached to a user.
type Role struct {
	RoleName    string `json:"roleName"`
	Description string `json:"description,omitempty"`
}

// User is the identity record. UserName is the primary key.
type User struct {
	UserName      string    `json:"userName"`
	Password      string    `json:"-"`
	Email         string    `json:"email,omitempty"`
	ContactNumber int64     `json:"contactNumber,omitempty"`
	Address       string    `json:"address,omitempty"`
	Enabled       bool      `json:"enabled"`
	Roles         []Role    `json:"roles"`
	CreatedAt     time.Time `json:"createdAt"`
}

// LoginRequest is the transient input of a token request.
type LoginRequest struct {
	Identifier string
	Password   string
}

// AuthResult pairs the resolved user with the issued token.
type AuthResult struct {
	User  *User
	Token string
}
