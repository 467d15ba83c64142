package timesheet

import (
	"go-workforce/internal/middleware"
	"go-workforce/internal/policy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	policyService policy.Service,
	logger *zap.Logger,
) {
	timesheets := r.Group("/timesheets")
	timesheets.Use(middleware.AuthMiddleware())
	timesheets.Use(middleware.ContextLogger(logger))
	{
		timesheets.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(policyService, policy.ResourceTimesheet, policy.ActionRead),
			handler.GetAll,
		)

		timesheets.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(policyService, policy.ResourceTimesheet, policy.ActionRead),
			handler.GetById,
		)

		timesheets.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.Authorize(policyService, policy.ResourceTimesheet, policy.ActionCreate),
			handler.Create,
		)

		timesheets.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.Authorize(policyService, policy.ResourceTimesheet, policy.ActionUpdate),
			handler.Update,
		)

		timesheets.PUT("/:id/submit",
			middleware.RateLimitByUser(1, 5),
			middleware.Authorize(policyService, policy.ResourceTimesheet, policy.ActionSubmit),
			handler.Submit,
		)

		timesheets.PUT("/:id/approve",
			middleware.RateLimitByUser(1, 5),
			middleware.Authorize(policyService, policy.ResourceTimesheet, policy.ActionApprove),
			handler.Approve,
		)

		timesheets.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(policyService, policy.ResourceTimesheet, policy.ActionDelete),
			handler.Delete,
		)
	}
}
