package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.ContextLogger(logger))
	users.Use(middleware.Authorize(policyService, policy.ResourceUser, policy.ActionManage))
	{
		users.GET("", middleware.RateLimitByUser(2, 5), handler.GetAll)
		users.GET("/:id", middleware.RateLimitByUser(2, 5), handler.GetById)
		users.POST("", middleware.RateLimitByUser(0.5, 2), handler.Create)
		users.PUT("/:id", middleware.RateLimitByUser(0.5, 2), handler.Update)
		users.PUT("/:id/activate", middleware.RateLimitByUser(0.5, 2), handler.Activate)
		users.PUT("/:id/deactivate", middleware.RateLimitByUser(0.5, 2), handler.Deactivate)
		users.PUT("/:id/reset-password", middleware.RateLimitByUser(0.2, 1), handler.ResetPassword)
		users.DELETE("/:id", middleware.RateLimitByUser(0.2, 1), handler.Delete)
	}
}
