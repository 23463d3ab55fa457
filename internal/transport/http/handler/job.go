package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/adilbekov/timetrack/internal/domain"
	"github.com/adilbekov/timetrack/internal/pagination"
	"github.com/adilbekov/timetrack/internal/transport/http/middleware"
	"github.com/adilbekov/timetrack/internal/usecase"
	"github.com/gin-gonic/gin"
)

type jobUsecaser interface {
	StartJob(ctx context.Context, in usecase.StartJobInput) (*domain.Job, error)
	FinishJob(ctx context.Context, jobID, userID string) error
	ListJobs(ctx context.Context, userID *string, opts pagination.Options) (pagination.Page[domain.Job], error)
	CreateProject(ctx context.Context, name string) (*domain.Project, error)
	ListProjects(ctx context.Context, opts pagination.Options) (pagination.Page[domain.Project], error)
	WorkingTime(ctx context.Context, userID *string, page, limit int) ([]domain.DailyWorkingTime, error)
}

type JobHandler struct {
	jobUsecase jobUsecaser
	logger     *slog.Logger
}

func NewJobHandler(jobUsecase jobUsecaser, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobUsecase: jobUsecase, logger: logger.With("component", "job_handler")}
}

type startJobRequest struct {
	Description string `json:"description" binding:"required"`
	ProjectID   string `json:"projectId"   binding:"required"`
}

type jobResponse struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	UserID      string           `json:"userId"`
	ProjectID   string           `json:"projectId"`
	Status      domain.JobStatus `json:"status"`
	StartDate   time.Time        `json:"startDate"`
	FinishDate  *time.Time       `json:"finishDate,omitempty"`
}

func toJobResponse(j domain.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		Description: j.Description,
		UserID:      j.UserID,
		ProjectID:   j.ProjectID,
		Status:      j.Status,
		StartDate:   j.StartDate,
		FinishDate:  j.FinishDate,
	}
}

// POST /job/start
func (h *JobHandler) Start(c *gin.Context) {
	var req startJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal := middleware.Principal(c)
	job, err := h.jobUsecase.StartJob(c.Request.Context(), usecase.StartJobInput{
		Description: req.Description,
		ProjectID:   req.ProjectID,
		UserID:      principal.SubjectID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errProjectNotFound})
			return
		}
		h.logger.Error("start job", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toJobResponse(*job))
}

type finishJobRequest struct {
	JobID string `json:"jobId" binding:"required"`
}

// PATCH /job/finish
func (h *JobHandler) Finish(c *gin.Context) {
	var req finishJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal := middleware.Principal(c)
	err := h.jobUsecase.FinishJob(c.Request.Context(), req.JobID, principal.SubjectID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errJobNotFound})
		case errors.Is(err, domain.ErrJobAlreadyFinished):
			c.JSON(http.StatusConflict, gin.H{"error": errJobFinished})
		default:
			h.logger.Error("finish job", "job_id", req.JobID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.Status(http.StatusOK)
}

// GET /job — the caller's jobs, newest first.
func (h *JobHandler) List(c *gin.Context) {
	var opts pagination.Options
	if err := c.ShouldBindQuery(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal := middleware.Principal(c)
	page, err := h.jobUsecase.ListJobs(c.Request.Context(), &principal.SubjectID, opts)
	if err != nil {
		h.logger.Error("list jobs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, mapPage(page, toJobResponse))
}

// GET /job/admin — any user's jobs, or everyone's when userId is omitted.
func (h *JobHandler) ListAll(c *gin.Context) {
	var opts pagination.Options
	if err := c.ShouldBindQuery(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userID *string
	if v := c.Query("userId"); v != "" {
		userID = &v
	}

	page, err := h.jobUsecase.ListJobs(c.Request.Context(), userID, opts)
	if err != nil {
		h.logger.Error("list all jobs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, mapPage(page, toJobResponse))
}

type createProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type projectResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toProjectResponse(p domain.Project) projectResponse {
	return projectResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

// POST /job/project (admin)
func (h *JobHandler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.jobUsecase.CreateProject(c.Request.Context(), req.Name)
	if err != nil {
		h.logger.Error("create project", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(*project))
}

// GET /job/projects
func (h *JobHandler) ListProjects(c *gin.Context) {
	var opts pagination.Options
	if err := c.ShouldBindQuery(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.jobUsecase.ListProjects(c.Request.Context(), opts)
	if err != nil {
		h.logger.Error("list projects", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, mapPage(page, toProjectResponse))
}

type workingTimeQuery struct {
	Page  int `form:"page,default=1"  binding:"omitempty,min=1"`
	Limit int `form:"limit,default=7" binding:"omitempty,min=1,max=100"`
}

type workingTimeEntry struct {
	Date       string  `json:"date"`
	TotalHours float64 `json:"totalHours"`
}

type userWorkingTimeEntry struct {
	UserID     string  `json:"userId"`
	Date       string  `json:"date"`
	TotalHours float64 `json:"totalHours"`
}

// GET /job/working-time — the caller's hours per day over a day window.
func (h *JobHandler) WorkingTime(c *gin.Context) {
	var q workingTimeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal := middleware.Principal(c)
	rows, err := h.jobUsecase.WorkingTime(c.Request.Context(), &principal.SubjectID, q.Page, q.Limit)
	if err != nil {
		h.logger.Error("working time", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]workingTimeEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, workingTimeEntry{Date: r.Date, TotalHours: r.TotalHours})
	}
	c.JSON(http.StatusOK, out)
}

// GET /job/admin/working-time — everyone's hours per day (admin).
func (h *JobHandler) WorkingTimeAllUsers(c *gin.Context) {
	var q workingTimeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.jobUsecase.WorkingTime(c.Request.Context(), nil, q.Page, q.Limit)
	if err != nil {
		h.logger.Error("working time all users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]userWorkingTimeEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, userWorkingTimeEntry{UserID: r.UserID, Date: r.Date, TotalHours: r.TotalHours})
	}
	c.JSON(http.StatusOK, out)
}

func mapPage[T, R any](page pagination.Page[T], f func(T) R) pagination.Page[R] {
	data := make([]R, 0, len(page.Data))
	for _, item := range page.Data {
		data = append(data, f(item))
	}
	return pagination.Page[R]{Data: data, Meta: page.Meta}
}
