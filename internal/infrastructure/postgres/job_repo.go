package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adilbekov/timetrack/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, description, user_id, project_id, status, start_date, finish_date`

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func (r *JobRepository) Create(ctx context.Context, j *domain.Job) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO jobs (id, description, user_id, project_id, status, start_date, finish_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		j.ID, j.Description, j.UserID, j.ProjectID, j.Status, j.StartDate, j.FinishDate,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) FindByIDForUser(ctx context.Context, jobID, userID string) (*domain.Job, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND user_id = $2`,
		jobID, userID)
	return scanJob(row)
}

func (r *JobRepository) Update(ctx context.Context, j *domain.Job) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE jobs
		SET description = $2, status = $3, finish_date = $4
		WHERE id = $1`,
		j.ID, j.Description, j.Status, j.FinishDate,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

func (r *JobRepository) List(ctx context.Context, userID *string, limit, offset int) ([]domain.Job, int, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	countQuery := `SELECT COUNT(*) FROM jobs`
	args := []any{}

	if userID != nil {
		query += ` WHERE user_id = $1`
		countQuery += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += fmt.Sprintf(` ORDER BY start_date DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list jobs rows: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	return jobs, total, nil
}

// WorkingTime sums finished job durations per user and calendar day.
// The grouping runs in SQL so pages of day windows stay cheap.
func (r *JobRepository) WorkingTime(ctx context.Context, userID *string, from, to time.Time) ([]domain.DailyWorkingTime, error) {
	query := `
		SELECT user_id,
		       to_char(date_trunc('day', finish_date), 'YYYY-MM-DD') AS day,
		       SUM(EXTRACT(EPOCH FROM (finish_date - start_date))) / 3600 AS total_hours
		FROM jobs
		WHERE status = $1 AND finish_date >= $2 AND finish_date < $3`
	args := []any{domain.JobStatusFinished, from, to}

	if userID != nil {
		query += ` AND user_id = $4`
		args = append(args, *userID)
	}
	query += ` GROUP BY user_id, day ORDER BY day DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("working time query: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyWorkingTime
	for rows.Next() {
		var wt domain.DailyWorkingTime
		if err := rows.Scan(&wt.UserID, &wt.Date, &wt.TotalHours); err != nil {
			return nil, fmt.Errorf("scan working time: %w", err)
		}
		out = append(out, wt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("working time rows: %w", err)
	}
	return out, nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(&j.ID, &j.Description, &j.UserID, &j.ProjectID, &j.Status,
		&j.StartDate, &j.FinishDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	return &j, nil
}
