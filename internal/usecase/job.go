package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adilbekov/timetrack/internal/domain"
	"github.com/adilbekov/timetrack/internal/pagination"
	"github.com/adilbekov/timetrack/internal/repository"
	"github.com/google/uuid"
)

type JobUsecase struct {
	jobs     repository.JobRepository
	projects repository.ProjectRepository
}

func NewJobUsecase(jobs repository.JobRepository, projects repository.ProjectRepository) *JobUsecase {
	return &JobUsecase{jobs: jobs, projects: projects}
}

type StartJobInput struct {
	Description string
	ProjectID   string
	UserID      string
}

func (u *JobUsecase) StartJob(ctx context.Context, in StartJobInput) (*domain.Job, error) {
	if _, err := u.projects.FindByID(ctx, in.ProjectID); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}

	job := &domain.Job{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Description: in.Description,
		UserID:      in.UserID,
		ProjectID:   in.ProjectID,
		Status:      domain.JobStatusActive,
		StartDate:   time.Now(),
	}

	if err := u.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// FinishJob stamps the finish date on one of the caller's active jobs.
func (u *JobUsecase) FinishJob(ctx context.Context, jobID, userID string) error {
	job, err := u.jobs.FindByIDForUser(ctx, jobID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return domain.ErrJobNotFound
		}
		return fmt.Errorf("find job: %w", err)
	}

	if err := job.Finish(time.Now()); err != nil {
		return err
	}

	if err := u.jobs.Update(ctx, job); err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// ListJobs pages through jobs newest-first. A nil userID lists all users'
// jobs (admin view).
func (u *JobUsecase) ListJobs(ctx context.Context, userID *string, opts pagination.Options) (pagination.Page[domain.Job], error) {
	jobs, total, err := u.jobs.List(ctx, userID, opts.Limit, opts.Offset())
	if err != nil {
		return pagination.Page[domain.Job]{}, fmt.Errorf("list jobs: %w", err)
	}
	return pagination.NewPage(jobs, total, opts), nil
}

func (u *JobUsecase) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	now := time.Now()
	project := &domain.Project{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (u *JobUsecase) ListProjects(ctx context.Context, opts pagination.Options) (pagination.Page[domain.Project], error) {
	projects, total, err := u.projects.List(ctx, opts.Limit, opts.Offset())
	if err != nil {
		return pagination.Page[domain.Project]{}, fmt.Errorf("list projects: %w", err)
	}
	return pagination.NewPage(projects, total, opts), nil
}

// WorkingTime rolls up finished jobs into total hours per day over a
// `limit`-day window. Page 1 starts at today; each further page shifts the
// window `limit` days into the past.
func (u *JobUsecase) WorkingTime(ctx context.Context, userID *string, page, limit int) ([]domain.DailyWorkingTime, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 7
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := startOfDay.AddDate(0, 0, -(page-1)*limit)
	to := from.AddDate(0, 0, limit)

	out, err := u.jobs.WorkingTime(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("working time: %w", err)
	}
	return out, nil
}
