package timesheet

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
	l := zap.L().Named("timesheet.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("timesheet request failed",
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
	h.logger.Warn("timesheet validation failed", zap.Error(err))
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, fields)
}

func (h *Handler) Create(c *gin.Context) {
	actor := middleware.GetPrincipal(c)
	h.logger.Debug("http create timesheet", zap.String("user_id", actor.UserID))

	var req CreateTimesheetRequest
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
	h.logger.Debug("http get all timesheets", zap.String("user_id", actor.UserID))

	resp, err := h.service.GetAll(ctx, actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if employeeID := strings.TrimSpace(c.Query("employee_id")); employeeID != "" {
		filtered := make([]TimesheetResponse, 0, len(resp))
		for _, t := range resp {
			if t.EmployeeID == employeeID {
				filtered = append(filtered, t)
			}
		}
		resp = filtered
	}
	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
		filtered := make([]TimesheetResponse, 0, len(resp))
		for _, t := range resp {
			if t.Status == status {
				filtered = append(filtered, t)
			}
		}
		resp = filtered
	}

	sortDir := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_dir", "desc")))
	sort.Slice(resp, func(i, j int) bool {
		if sortDir == "asc" {
			return resp[i].WorkDate < resp[j].WorkDate
		}
		return resp[i].WorkDate > resp[j].WorkDate
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
	h.logger.Debug("http get timesheet by id", zap.String("timesheet_id", id))

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
	h.logger.Debug("http update timesheet", zap.String("timesheet_id", id))

	var req UpdateTimesheetRequest
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
	h.logger.Debug("http submit timesheet", zap.String("timesheet_id", id))

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
	h.logger.Debug("http approve timesheet", zap.String("timesheet_id", id))

	resp, err := h.service.Approve(ctx, actor, id)
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
	h.logger.Debug("http delete timesheet", zap.String("timesheet_id", id))

	if err := h.service.Delete(ctx, actor, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
