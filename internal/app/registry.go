package app

import (
	"database/sql"

	"go-workforce/internal/auth"
	"go-workforce/internal/employee"
	"go-workforce/internal/expense"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/middleware"
	"go-workforce/internal/policy"
	"go-workforce/internal/report"
	"go-workforce/internal/shared/counter"
	"go-workforce/internal/shared/timecalc"
	"go-workforce/internal/timesheet"
	"go-workforce/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	expenseRepo := expense.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	reportRepo := report.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- Access policy ---
	policyService, err := policy.NewService(logger)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(userRepo, logger)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)
	expenseService := expense.NewService(db, expenseRepo, policyService, outboxRepo, logger)
	reportService := report.NewService(db, reportRepo, policyService, outboxRepo, rdb, logger)
	timesheetService := timesheet.NewService(db, timesheetRepo, policyService, timecalc.ConfigFromEnv(), logger)
	userService := user.NewService(userRepo, employeeRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	expenseHandler := expense.NewHandler(expenseService, logger)
	reportHandler := report.NewHandler(reportService, rdb, logger)
	timesheetHandler := timesheet.NewHandler(timesheetService, logger)
	userHandler := user.NewHandler(userService, logger)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, policyService, logger)
		expense.RegisterRoutes(api, expenseHandler, policyService, logger)
		report.RegisterRoutes(api, reportHandler, policyService, rdb, logger)
		timesheet.RegisterRoutes(api, timesheetHandler, policyService, logger)
		user.RegisterRoutes(api, userHandler, policyService, logger)
	}

	return nil
}
