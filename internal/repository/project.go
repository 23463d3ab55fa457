package repository

import (
	"context"

	"github.com/adilbekov/timetrack/internal/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, limit, offset int) ([]domain.Project, int, error)
}
