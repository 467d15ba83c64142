package report_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-workforce/internal/policy"
	"go-workforce/internal/report"
	"go-workforce/internal/shared/apperror"

	reporterrors "go-workforce/internal/report/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeReportService struct {
	GenerateFn      func(ctx context.Context, actor policy.Principal, year, month int) (report.GenerateSummariesResponse, error)
	GetByPeriodFn   func(ctx context.Context, year, month int) ([]report.MonthlySummaryResponse, error)
	GetByEmployeeFn func(ctx context.Context, actor policy.Principal, employeeID string) ([]report.MonthlySummaryResponse, error)
	FinalizeFn      func(ctx context.Context, actor policy.Principal, id string) (report.MonthlySummaryResponse, error)
	ExportFn        func(ctx context.Context, year, month int) (string, error)
}

func (f *fakeReportService) Generate(ctx context.Context, actor policy.Principal, year, month int) (report.GenerateSummariesResponse, error) {
	return f.GenerateFn(ctx, actor, year, month)
}
func (f *fakeReportService) GetByPeriod(ctx context.Context, year, month int) ([]report.MonthlySummaryResponse, error) {
	return f.GetByPeriodFn(ctx, year, month)
}
func (f *fakeReportService) GetByEmployee(ctx context.Context, actor policy.Principal, employeeID string) ([]report.MonthlySummaryResponse, error) {
	return f.GetByEmployeeFn(ctx, actor, employeeID)
}
func (f *fakeReportService) Finalize(ctx context.Context, actor policy.Principal, id string) (report.MonthlySummaryResponse, error) {
	return f.FinalizeFn(ctx, actor, id)
}
func (f *fakeReportService) Export(ctx context.Context, year, month int) (string, error) {
	return f.ExportFn(ctx, year, month)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestReportHandler_Generate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeReportService{
			GenerateFn: func(ctx context.Context, actor policy.Principal, year, month int) (report.GenerateSummariesResponse, error) {
				assert.Equal(t, 2025, year)
				assert.Equal(t, 6, month)
				return report.GenerateSummariesResponse{
					Year: year, Month: month, EmployeesProcessed: 4, SummariesUpserted: 4,
				}, nil
			},
		}

		r := setupRouter()
		h := report.NewHandler(svc, nil)
		r.POST("/reports/generate/:year/:month", h.Generate)

		req := httptest.NewRequest(http.MethodPost, "/reports/generate/2025/6", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"employees_processed":4`)
	})

	t.Run("non-numeric year", func(t *testing.T) {
		r := setupRouter()
		h := report.NewHandler(&fakeReportService{}, nil)
		r.POST("/reports/generate/:year/:month", h.Generate)

		req := httptest.NewRequest(http.MethodPost, "/reports/generate/twenty/6", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInvalidInput)
	})

	t.Run("out of range month", func(t *testing.T) {
		svc := &fakeReportService{
			GenerateFn: func(ctx context.Context, actor policy.Principal, year, month int) (report.GenerateSummariesResponse, error) {
				return report.GenerateSummariesResponse{}, reporterrors.ErrInvalidMonth
			},
		}

		r := setupRouter()
		h := report.NewHandler(svc, nil)
		r.POST("/reports/generate/:year/:month", h.Generate)

		req := httptest.NewRequest(http.MethodPost, "/reports/generate/2025/13", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReportHandler_Finalize(t *testing.T) {
	summaryID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeReportService{
			FinalizeFn: func(ctx context.Context, actor policy.Principal, id string) (report.MonthlySummaryResponse, error) {
				assert.Equal(t, summaryID, id)
				return report.MonthlySummaryResponse{ID: id, Status: report.StatusFinalized}, nil
			},
		}

		r := setupRouter()
		h := report.NewHandler(svc, nil)
		r.PUT("/reports/finalize/:id", h.Finalize)

		req := httptest.NewRequest(http.MethodPut, "/reports/finalize/"+summaryID, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), report.StatusFinalized)
	})

	t.Run("already finalized", func(t *testing.T) {
		svc := &fakeReportService{
			FinalizeFn: func(ctx context.Context, actor policy.Principal, id string) (report.MonthlySummaryResponse, error) {
				return report.MonthlySummaryResponse{}, reporterrors.ErrAlreadyFinalized
			},
		}

		r := setupRouter()
		h := report.NewHandler(svc, nil)
		r.PUT("/reports/finalize/:id", h.Finalize)

		req := httptest.NewRequest(http.MethodPut, "/reports/finalize/"+summaryID, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInvalidState)
	})
}

func TestReportHandler_GetByEmployee_Forbidden(t *testing.T) {
	svc := &fakeReportService{
		GetByEmployeeFn: func(ctx context.Context, actor policy.Principal, employeeID string) ([]report.MonthlySummaryResponse, error) {
			return nil, apperror.ErrForbidden
		},
	}

	r := setupRouter()
	h := report.NewHandler(svc, nil)
	r.GET("/reports/employee/:employeeId", h.GetByEmployee)

	req := httptest.NewRequest(http.MethodGet, "/reports/employee/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReportHandler_Export(t *testing.T) {
	svc := &fakeReportService{
		ExportFn: func(ctx context.Context, year, month int) (string, error) {
			return "employee_number\tname\nEMP001\tJane Doe\n", nil
		},
	}

	r := setupRouter()
	h := report.NewHandler(svc, nil)
	r.GET("/reports/export/:year/:month", h.Export)

	req := httptest.NewRequest(http.MethodGet, "/reports/export/2025/06", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "tab-separated-values")
	assert.Contains(t, w.Body.String(), "EMP001\tJane Doe")
}
