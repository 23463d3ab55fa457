package handler_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/adilbekov/timetrack/internal/domain"
	"github.com/adilbekov/timetrack/internal/pagination"
	"github.com/adilbekov/timetrack/internal/token"
	"github.com/adilbekov/timetrack/internal/transport/http/handler"
	"github.com/adilbekov/timetrack/internal/transport/http/middleware"
	"github.com/adilbekov/timetrack/internal/usecase"
	"github.com/gin-gonic/gin"
)

type fakeJobUsecase struct {
	startJob      func(ctx context.Context, in usecase.StartJobInput) (*domain.Job, error)
	finishJob     func(ctx context.Context, jobID, userID string) error
	listJobs      func(ctx context.Context, userID *string, opts pagination.Options) (pagination.Page[domain.Job], error)
	createProject func(ctx context.Context, name string) (*domain.Project, error)
	listProjects  func(ctx context.Context, opts pagination.Options) (pagination.Page[domain.Project], error)
	workingTime   func(ctx context.Context, userID *string, page, limit int) ([]domain.DailyWorkingTime, error)
}

func (f *fakeJobUsecase) StartJob(ctx context.Context, in usecase.StartJobInput) (*domain.Job, error) {
	return f.startJob(ctx, in)
}

func (f *fakeJobUsecase) FinishJob(ctx context.Context, jobID, userID string) error {
	return f.finishJob(ctx, jobID, userID)
}

func (f *fakeJobUsecase) ListJobs(ctx context.Context, userID *string, opts pagination.Options) (pagination.Page[domain.Job], error) {
	return f.listJobs(ctx, userID, opts)
}

func (f *fakeJobUsecase) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	return f.createProject(ctx, name)
}

func (f *fakeJobUsecase) ListProjects(ctx context.Context, opts pagination.Options) (pagination.Page[domain.Project], error) {
	return f.listProjects(ctx, opts)
}

func (f *fakeJobUsecase) WorkingTime(ctx context.Context, userID *string, page, limit int) ([]domain.DailyWorkingTime, error) {
	return f.workingTime(ctx, userID, page, limit)
}

const jobTestKey = "handler-test-secret-32-characters!!!"

// newJobEngine routes through the real Authenticate middleware so handlers
// see the same principal they would in production.
func newJobEngine(uc *fakeJobUsecase, tokens *token.Service) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewJobHandler(uc, logger)

	r := gin.New()
	jobs := r.Group("/job", middleware.Authenticate(tokens, logger))
	jobs.POST("/start", h.Start)
	jobs.PATCH("/finish", h.Finish)
	jobs.GET("", h.List)
	jobs.GET("/working-time", h.WorkingTime)
	return r
}

func bearerFor(t *testing.T, tokens *token.Service, userID string) string {
	t.Helper()
	signed, err := tokens.Issue(userID, []domain.Role{domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return "Bearer " + signed
}

func TestStartJob_UsesCallerAsOwner(t *testing.T) {
	tokens := token.NewService([]byte(jobTestKey))

	var gotInput usecase.StartJobInput
	uc := &fakeJobUsecase{
		startJob: func(_ context.Context, in usecase.StartJobInput) (*domain.Job, error) {
			gotInput = in
			return &domain.Job{ID: "job-1", UserID: in.UserID, ProjectID: in.ProjectID,
				Description: in.Description, Status: domain.JobStatusActive}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/job/start",
		strings.NewReader(`{"description":"work","projectId":"proj-1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, tokens, "user-42"))
	newJobEngine(uc, tokens).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if gotInput.UserID != "user-42" {
		t.Errorf("owner = %q, want the token subject user-42", gotInput.UserID)
	}
}

func TestStartJob_UnknownProject_Returns404(t *testing.T) {
	tokens := token.NewService([]byte(jobTestKey))
	uc := &fakeJobUsecase{
		startJob: func(_ context.Context, _ usecase.StartJobInput) (*domain.Job, error) {
			return nil, domain.ErrProjectNotFound
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/job/start",
		strings.NewReader(`{"description":"work","projectId":"missing"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, tokens, "user-1"))
	newJobEngine(uc, tokens).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestFinishJob_AlreadyFinished_Returns409(t *testing.T) {
	tokens := token.NewService([]byte(jobTestKey))
	uc := &fakeJobUsecase{
		finishJob: func(_ context.Context, _, _ string) error {
			return domain.ErrJobAlreadyFinished
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/job/finish",
		strings.NewReader(`{"jobId":"job-1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, tokens, "user-1"))
	newJobEngine(uc, tokens).ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestListJobs_WithoutToken_Returns401(t *testing.T) {
	tokens := token.NewService([]byte(jobTestKey))
	uc := &fakeJobUsecase{
		listJobs: func(_ context.Context, _ *string, _ pagination.Options) (pagination.Page[domain.Job], error) {
			t.Error("usecase must not run without authentication")
			return pagination.Page[domain.Job]{}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/job", nil)
	newJobEngine(uc, tokens).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestListJobs_ScopedToCaller(t *testing.T) {
	tokens := token.NewService([]byte(jobTestKey))

	var gotUserID *string
	uc := &fakeJobUsecase{
		listJobs: func(_ context.Context, userID *string, opts pagination.Options) (pagination.Page[domain.Job], error) {
			gotUserID = userID
			return pagination.NewPage([]domain.Job{{ID: "job-1", UserID: *userID}}, 1, opts), nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/job?page=1&limit=5", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, "user-7"))
	newJobEngine(uc, tokens).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotUserID == nil || *gotUserID != "user-7" {
		t.Errorf("list scoped to %v, want user-7", gotUserID)
	}

	var page struct {
		Data []json.RawMessage `json:"data"`
		Meta pagination.Meta   `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if page.Meta.Limit != 5 || len(page.Data) != 1 {
		t.Errorf("page = %+v, want limit 5 and one item", page.Meta)
	}
}

func TestWorkingTime_ReturnsDailyTotals(t *testing.T) {
	tokens := token.NewService([]byte(jobTestKey))
	uc := &fakeJobUsecase{
		workingTime: func(_ context.Context, userID *string, page, limit int) ([]domain.DailyWorkingTime, error) {
			if userID == nil || *userID != "user-1" {
				t.Errorf("userID = %v, want user-1", userID)
			}
			return []domain.DailyWorkingTime{{UserID: "user-1", Date: "2026-08-30", TotalHours: 7.5}}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/job/working-time", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, "user-1"))
	newJobEngine(uc, tokens).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var rows []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(rows) != 1 || rows[0]["date"] != "2026-08-30" {
		t.Errorf("rows = %v, want one entry for 2026-08-30", rows)
	}
	if _, hasUserID := rows[0]["userId"]; hasUserID {
		t.Error("per-user endpoint must not expose userId per row")
	}
}
