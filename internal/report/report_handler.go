package report

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go-workforce/internal/middleware"
	reporterrors "go-workforce/internal/report/errors"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("report request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) parsePeriod(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.writeServiceError(c, reporterrors.ErrInvalidYear)
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		h.writeServiceError(c, reporterrors.ErrInvalidMonth)
		return 0, 0, false
	}
	return year, month, true
}

func (h *Handler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetPrincipal(c)

	// Release the idempotency lock whether the batch succeeds or fails;
	// only a success is cached for replay.
	if lockKey, exists := c.Get("idempotency_lock_key"); exists {
		defer h.rdb.Del(ctx, lockKey.(string))
	}

	year, month, ok := h.parsePeriod(c)
	if !ok {
		return
	}
	h.logger.Debug("http generate summaries",
		zap.String("user_id", actor.UserID),
		zap.Int("year", year),
		zap.Int("month", month),
	)

	resp, err := h.service.Generate(ctx, actor, year, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if cacheKey, exists := c.Get("idempotency_cache_key"); exists {
		if payload, err := json.Marshal(resp); err == nil {
			_ = h.rdb.Set(ctx, cacheKey.(string), payload, 24*time.Hour).Err()
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByPeriod(c *gin.Context) {
	year, month, ok := h.parsePeriod(c)
	if !ok {
		return
	}
	h.logger.Debug("http get summaries by period", zap.Int("year", year), zap.Int("month", month))

	resp, err := h.service.GetByPeriod(c.Request.Context(), year, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	actor := middleware.GetPrincipal(c)
	employeeID := c.Param("employeeId")
	h.logger.Debug("http get summaries by employee", zap.String("employee_id", employeeID))

	resp, err := h.service.GetByEmployee(c.Request.Context(), actor, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Finalize(c *gin.Context) {
	actor := middleware.GetPrincipal(c)
	id := c.Param("id")
	h.logger.Debug("http finalize summary", zap.String("summary_id", id))

	resp, err := h.service.Finalize(c.Request.Context(), actor, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Export(c *gin.Context) {
	year, month, ok := h.parsePeriod(c)
	if !ok {
		return
	}
	h.logger.Debug("http export summaries", zap.Int("year", year), zap.Int("month", month))

	doc, err := h.service.Export(c.Request.Context(), year, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition",
		"attachment; filename=monthly_summaries_"+strconv.Itoa(year)+"_"+c.Param("month")+".txt")
	c.Data(http.StatusOK, "text/tab-separated-values; charset=utf-8", []byte(doc))
}
