package expense

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
	expenses := r.Group("/expenses")
	expenses.Use(middleware.AuthMiddleware())
	expenses.Use(middleware.ContextLogger(logger))
	{
		expenses.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(policyService, policy.ResourceExpense, policy.ActionRead),
			handler.GetAll,
		)

		expenses.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(policyService, policy.ResourceExpense, policy.ActionRead),
			handler.GetById,
		)

		expenses.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.Authorize(policyService, policy.ResourceExpense, policy.ActionCreate),
			handler.Create,
		)

		expenses.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.Authorize(policyService, policy.ResourceExpense, policy.ActionUpdate),
			handler.Update,
		)

		expenses.PUT("/:id/submit",
			middleware.RateLimitByUser(1, 5),
			middleware.Authorize(policyService, policy.ResourceExpense, policy.ActionSubmit),
			handler.Submit,
		)

		expenses.PUT("/:id/approve",
			middleware.RateLimitByUser(1, 5),
			middleware.Authorize(policyService, policy.ResourceExpense, policy.ActionApprove),
			handler.Approve,
		)

		expenses.PUT("/:id/reject",
			middleware.RateLimitByUser(1, 5),
			middleware.Authorize(policyService, policy.ResourceExpense, policy.ActionReject),
			handler.Reject,
		)

		expenses.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(policyService, policy.ResourceExpense, policy.ActionDelete),
			handler.Delete,
		)
	}
}
