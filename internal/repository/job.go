package repository

import (
	"context"
	"time"

	"github.com/adilbekov/timetrack/internal/domain"
)

type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	// FindByIDForUser scopes the lookup to the owning user.
	FindByIDForUser(ctx context.Context, jobID, userID string) (*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	// List returns a page of jobs newest-first plus the total count.
	// A nil userID lists jobs across all users.
	List(ctx context.Context, userID *string, limit, offset int) ([]domain.Job, int, error)
	// WorkingTime aggregates finished jobs into per-day totals within
	// [from, to). A nil userID aggregates across all users.
	WorkingTime(ctx context.Context, userID *string, from, to time.Time) ([]domain.DailyWorkingTime, error)
}
