package report

import (
	"go-workforce/internal/middleware"
	"go-workforce/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	policyService policy.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	reports.Use(middleware.ContextLogger(logger))
	{
		reports.POST("/generate/:year/:month",
			middleware.RateLimitByUser(0.2, 1),
			middleware.Authorize(policyService, policy.ResourceReport, policy.ActionGenerate),
			middleware.Idempotency(rdb),
			handler.Generate,
		)

		reports.GET("/monthly/:year/:month",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(policyService, policy.ResourceReport, policy.ActionReadAll),
			handler.GetByPeriod,
		)

		reports.GET("/employee/:employeeId",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(policyService, policy.ResourceReport, policy.ActionRead),
			handler.GetByEmployee,
		)

		reports.PUT("/finalize/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(policyService, policy.ResourceReport, policy.ActionFinalize),
			handler.Finalize,
		)

		reports.GET("/export/:year/:month",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(policyService, policy.ResourceReport, policy.ActionExport),
			handler.Export,
		)
	}
}
