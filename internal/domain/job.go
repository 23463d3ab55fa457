package domain

import (
	"errors"
	"time"
)

var (
	ErrJobNotFound        = errors.New("job not found")
	ErrJobAlreadyFinished = errors.New("job already finished")
)

type JobStatus string

const (
	JobStatusActive   JobStatus = "ACTIVE"
	JobStatusFinished JobStatus = "FINISHED"
)

// Job is one work session: started by a user against a project,
// finished at most once.
type Job struct {
	ID          string
	Description string
	UserID      string
	ProjectID   string
	Status      JobStatus
	StartDate   time.Time
	FinishDate  *time.Time
}

// Finish stamps the finish date and flips the status.
// Returns ErrJobAlreadyFinished if the job is not active.
func (j *Job) Finish(now time.Time) error {
	if j.Status == JobStatusFinished {
		return ErrJobAlreadyFinished
	}
	j.Status = JobStatusFinished
	j.FinishDate = &now
	return nil
}

// DailyWorkingTime is the per-day rollup of finished job durations.
type DailyWorkingTime struct {
	UserID     string
	Date       string
	TotalHours float64
}
