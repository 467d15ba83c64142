package expense_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-workforce/internal/expense"
	expenseerrors "go-workforce/internal/expense/errors"
	"go-workforce/internal/policy"
	"go-workforce/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeExpenseService struct {
	CreateFn  func(ctx context.Context, actor policy.Principal, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error)
	GetAllFn  func(ctx context.Context, actor policy.Principal) ([]expense.ExpenseResponse, error)
	GetByIDFn func(ctx context.Context, actor policy.Principal, id string) (expense.ExpenseResponse, error)
	UpdateFn  func(ctx context.Context, actor policy.Principal, id string, req expense.UpdateExpenseRequest) (expense.ExpenseResponse, error)
	SubmitFn  func(ctx context.Context, actor policy.Principal, id string) (expense.ExpenseResponse, error)
	ApproveFn func(ctx context.Context, actor policy.Principal, id string) (expense.ExpenseResponse, error)
	RejectFn  func(ctx context.Context, actor policy.Principal, id, reason string) (expense.ExpenseResponse, error)
	DeleteFn  func(ctx context.Context, actor policy.Principal, id string) error
}

func (f *fakeExpenseService) Create(ctx context.Context, actor policy.Principal, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error) {
	return f.CreateFn(ctx, actor, req)
}
func (f *fakeExpenseService) GetAll(ctx context.Context, actor policy.Principal) ([]expense.ExpenseResponse, error) {
	return f.GetAllFn(ctx, actor)
}
func (f *fakeExpenseService) GetByID(ctx context.Context, actor policy.Principal, id string) (expense.ExpenseResponse, error) {
	return f.GetByIDFn(ctx, actor, id)
}
func (f *fakeExpenseService) Update(ctx context.Context, actor policy.Principal, id string, req expense.UpdateExpenseRequest) (expense.ExpenseResponse, error) {
	return f.UpdateFn(ctx, actor, id, req)
}
func (f *fakeExpenseService) Submit(ctx context.Context, actor policy.Principal, id string) (expense.ExpenseResponse, error) {
	return f.SubmitFn(ctx, actor, id)
}
func (f *fakeExpenseService) Approve(ctx context.Context, actor policy.Principal, id string) (expense.ExpenseResponse, error) {
	return f.ApproveFn(ctx, actor, id)
}
func (f *fakeExpenseService) Reject(ctx context.Context, actor policy.Principal, id, reason string) (expense.ExpenseResponse, error) {
	return f.RejectFn(ctx, actor, id, reason)
}
func (f *fakeExpenseService) Delete(ctx context.Context, actor policy.Principal, id string) error {
	return f.DeleteFn(ctx, actor, id)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestExpenseHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeExpenseService{
			CreateFn: func(ctx context.Context, actor policy.Principal, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error) {
				assert.Equal(t, expense.CategoryMeals, req.Category)
				return expense.ExpenseResponse{
					ID:       uuid.New().String(),
					Category: req.Category,
					Amount:   req.Amount,
					Status:   expense.StatusDraft,
				}, nil
			},
		}

		h := expense.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"expense_date":"2025-06-02","category":"MEALS","description":"Client lunch","amount":45.5,"currency":"USD"}`
		req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "MEALS")
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		h := expense.NewHandler(&fakeExpenseService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"expense_date":"2025-06-02","category":"GIFTS","description":"x","currency":"USD"}`
		req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInvalidInput)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		h := expense.NewHandler(&fakeExpenseService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"expense_date":"2025-06-02","category":"MEALS","description":"x","amount":-1,"currency":"USD"}`
		req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExpenseHandler_Reject(t *testing.T) {
	expenseID := uuid.New().String()

	t.Run("with reason", func(t *testing.T) {
		svc := &fakeExpenseService{
			RejectFn: func(ctx context.Context, actor policy.Principal, id, reason string) (expense.ExpenseResponse, error) {
				assert.Equal(t, expenseID, id)
				assert.Equal(t, "receipt missing", reason)
				r := reason
				return expense.ExpenseResponse{ID: id, Status: expense.StatusRejected, RejectionReason: &r}, nil
			},
		}

		r := setupRouter()
		h := expense.NewHandler(svc)
		r.PUT("/expenses/:id/reject", h.Reject)

		body := `{"rejection_reason":"receipt missing"}`
		req := httptest.NewRequest(http.MethodPut, "/expenses/"+expenseID+"/reject", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), expense.StatusRejected)
	})

	t.Run("without body", func(t *testing.T) {
		svc := &fakeExpenseService{
			RejectFn: func(ctx context.Context, actor policy.Principal, id, reason string) (expense.ExpenseResponse, error) {
				assert.Equal(t, "", reason)
				return expense.ExpenseResponse{ID: id, Status: expense.StatusRejected}, nil
			},
		}

		r := setupRouter()
		h := expense.NewHandler(svc)
		r.PUT("/expenses/:id/reject", h.Reject)

		req := httptest.NewRequest(http.MethodPut, "/expenses/"+expenseID+"/reject", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid transition", func(t *testing.T) {
		svc := &fakeExpenseService{
			RejectFn: func(ctx context.Context, actor policy.Principal, id, reason string) (expense.ExpenseResponse, error) {
				return expense.ExpenseResponse{}, expenseerrors.ErrInvalidStatusTransition
			},
		}

		r := setupRouter()
		h := expense.NewHandler(svc)
		r.PUT("/expenses/:id/reject", h.Reject)

		req := httptest.NewRequest(http.MethodPut, "/expenses/"+expenseID+"/reject", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInvalidState)
	})
}

func TestExpenseHandler_GetAll_CategoryFilter(t *testing.T) {
	svc := &fakeExpenseService{
		GetAllFn: func(ctx context.Context, actor policy.Principal) ([]expense.ExpenseResponse, error) {
			return []expense.ExpenseResponse{
				{ID: "1", Category: "MEALS", ExpenseDate: "2025-06-02"},
				{ID: "2", Category: "TRANSPORT", ExpenseDate: "2025-06-03"},
			}, nil
		},
	}

	r := setupRouter()
	h := expense.NewHandler(svc)
	r.GET("/expenses", h.GetAll)

	req := httptest.NewRequest(http.MethodGet, "/expenses?category=TRANSPORT", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TRANSPORT")
	assert.NotContains(t, w.Body.String(), "MEALS")
}
