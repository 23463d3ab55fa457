package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrUserNotVerified    = errors.New("user is not verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserStatus string

const (
	UserStatusPending UserStatus = "PENDING_VERIFICATION"
	UserStatusActive  UserStatus = "ACTIVE"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the account record. VerificationCode is set while the user is
// pending and cleared exactly once on successful verification.
type User struct {
	ID               string
	Email            string
	PasswordHash     string
	Status           UserStatus
	Roles            []Role
	VerificationCode *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasAnyRole reports whether the user holds at least one of the given roles.
func HasAnyRole(held []Role, required []Role) bool {
	for _, r := range required {
		for _, h := range held {
			if h == r {
				return true
			}
		}
	}
	return false
}
