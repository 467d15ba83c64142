package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(policyService, policy.ResourceEmployee, policy.ActionRead),
			handler.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.Authorize(policyService, policy.ResourceEmployee, policy.ActionRead),
			handler.GetOptions,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(policyService, policy.ResourceEmployee, policy.ActionRead),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(policyService, policy.ResourceEmployee, policy.ActionCreate),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(policyService, policy.ResourceEmployee, policy.ActionUpdate),
			handler.Update,
		)

		employees.PUT("/:id/activate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(policyService, policy.ResourceEmployee, policy.ActionActivate),
			handler.Activate,
		)

		employees.PUT("/:id/deactivate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(policyService, policy.ResourceEmployee, policy.ActionActivate),
			handler.Deactivate,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.Authorize(policyService, policy.ResourceEmployee, policy.ActionDelete),
			handler.Delete,
		)
	}
}
