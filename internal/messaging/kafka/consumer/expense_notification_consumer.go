package consumer

import (
	"context"
	"encoding/json"

	"go-workforce/internal/bootstrap"
	"go-workforce/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeExpenseLifecycle records an audit entry for every expense
// approval/rejection decision so employees can be notified out of band.
func ConsumeExpenseLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.expense_lifecycle")
	log.Info("expense lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("expense lifecycle consumer stopped")
				return
			}
			log.Error("fetch expense lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.ExpenseDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode expense_decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		auditLogger.Log(ctx, bootstrap.AuditLog{
			Action:  "EXPENSE_" + event.Status,
			Message: "Expense decision recorded",
			Meta: map[string]any{
				"expense_id":  event.ExpenseID,
				"employee_id": event.EmployeeID,
				"amount":      event.Amount,
				"currency":    event.Currency,
				"decided_by":  event.DecidedBy,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit expense lifecycle message failed", zap.Error(err))
			continue
		}
	}
}
