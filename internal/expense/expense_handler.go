package expense

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"go-workforce/internal/middleware"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("expense.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("expense.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("expense request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeValidationError(c *gin.Context, err error) {
	appErr, fields := apperror.MapValidationError(err)
	h.logger.Warn("expense validation failed", zap.Error(err))
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, fields)
}

func (h *Handler) Create(c *gin.Context) {
	actor := middleware.GetPrincipal(c)
	h.logger.Debug("http create expense", zap.String("user_id", actor.UserID))

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeValidationError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetPrincipal(c)
	h.logger.Debug("http get all expenses", zap.String("user_id", actor.UserID))

	resp, err := h.service.GetAll(ctx, actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if employeeID := strings.TrimSpace(c.Query("employee_id")); employeeID != "" {
		filtered := make([]ExpenseResponse, 0, len(resp))
		for _, e := range resp {
			if e.EmployeeID == employeeID {
				filtered = append(filtered, e)
			}
		}
		resp = filtered
	}
	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
		filtered := make([]ExpenseResponse, 0, len(resp))
		for _, e := range resp {
			if e.Status == status {
				filtered = append(filtered, e)
			}
		}
		resp = filtered
	}
	if category := strings.ToUpper(strings.TrimSpace(c.Query("category"))); category != "" {
		filtered := make([]ExpenseResponse, 0, len(resp))
		for _, e := range resp {
			if e.Category == category {
				filtered = append(filtered, e)
			}
		}
		resp = filtered
	}

	sortDir := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_dir", "desc")))
	sort.Slice(resp, func(i, j int) bool {
		if sortDir == "asc" {
			return resp[i].ExpenseDate < resp[j].ExpenseDate
		}
		return resp[i].ExpenseDate > resp[j].ExpenseDate
	})

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetPrincipal(c)
	id := c.Param("id")
	h.logger.Debug("http get expense by id", zap.String("expense_id", id))

	resp, err := h.service.GetByID(ctx, actor, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetPrincipal(c)
	id := c.Param("id")
	h.logger.Debug("http update expense", zap.String("expense_id", id))

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeValidationError(c, err)
		return
	}

	resp, err := h.service.Update(ctx, actor, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetPrincipal(c)
	id := c.Param("id")
	h.logger.Debug("http submit expense", zap.String("expense_id", id))

	resp, err := h.service.Submit(ctx, actor, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetPrincipal(c)
	id := c.Param("id")
	h.logger.Debug("http approve expense", zap.String("expense_id", id))

	resp, err := h.service.Approve(ctx, actor, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetPrincipal(c)
	id := c.Param("id")
	h.logger.Debug("http reject expense", zap.String("expense_id", id))

	// Body is optional; rejection without a reason is allowed.
	var req RejectExpenseRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeValidationError(c, err)
			return
		}
	}

	resp, err := h.service.Reject(ctx, actor, id, req.RejectionReason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetPrincipal(c)
	id := c.Param("id")
	h.logger.Debug("http delete expense", zap.String("expense_id", id))

	if err := h.service.Delete(ctx, actor, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
