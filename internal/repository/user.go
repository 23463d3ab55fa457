package repository

import (
	"context"
	"time"

	"github.com/adilbekov/timetrack/internal/domain"
)

// UserRepository is the user directory. Email uniqueness is enforced by the
// storage layer; Create surfaces the losing writer as domain.ErrEmailTaken.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail optionally filters on status; pass nil for any status.
	FindByEmail(ctx context.Context, email string, status *domain.UserStatus) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	// DeleteStalePending removes users still pending verification that were
	// created before the cutoff. Returns the number of rows removed.
	DeleteStalePending(ctx context.Context, createdBefore time.Time) (int64, error)
}
