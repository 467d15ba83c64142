package expense

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	expenseerrors "go-workforce/internal/expense/errors"

	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/policy"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StatusDraft      = "DRAFT"
	StatusSubmitted  = "SUBMITTED"
	StatusApproved   = "APPROVED"
	StatusRejected   = "REJECTED"
	StatusReimbursed = "REIMBURSED"
)

//go:generate mockgen -source=expense_service.go -destination=mock/expense_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor policy.Principal, req CreateExpenseRequest) (ExpenseResponse, error)
	GetAll(ctx context.Context, actor policy.Principal) ([]ExpenseResponse, error)
	GetByID(ctx context.Context, actor policy.Principal, id string) (ExpenseResponse, error)
	Update(ctx context.Context, actor policy.Principal, id string, req UpdateExpenseRequest) (ExpenseResponse, error)
	Submit(ctx context.Context, actor policy.Principal, id string) (ExpenseResponse, error)
	Approve(ctx context.Context, actor policy.Principal, id string) (ExpenseResponse, error)
	Reject(ctx context.Context, actor policy.Principal, id, rejectionReason string) (ExpenseResponse, error)
	Delete(ctx context.Context, actor policy.Principal, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	policy policy.Service
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, policyService policy.Service, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("expense.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("expense.service")
	}
	return &service{db: db, repo: repo, policy: policyService, outbox: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, actor policy.Principal, req CreateExpenseRequest) (ExpenseResponse, error) {
	s.logger.Debug("create expense requested",
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("category", req.Category),
	)

	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidEmployeeID
	}

	decision, err := s.policy.AuthorizeOwned(actor, employeeID, policy.ResourceExpense, policy.ActionCreate)
	if err != nil {
		return ExpenseResponse{}, err
	}
	if !decision.Allowed {
		return ExpenseResponse{}, apperror.ErrForbidden
	}

	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return ExpenseResponse{}, apperror.ErrUnauthorized
	}

	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create expense begin tx failed", zap.Error(err))
		return ExpenseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &Expense{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		ExpenseDate:    expenseDate,
		Category:       req.Category,
		Description:    req.Description,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Receipt:        req.Receipt,
		Notes:          req.Notes,
		Status:         StatusDraft,
		CreatedBy:      actorUUID,
		LastModifiedBy: actorUUID,
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create expense persist failed", zap.Error(err))
		return ExpenseResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create expense commit failed", zap.Error(err))
		return ExpenseResponse{}, err
	}

	s.logger.Info("create expense success",
		zap.String("expense_id", e.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Float64("amount", e.Amount),
		zap.String("currency", e.Currency),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, actor policy.Principal) ([]ExpenseResponse, error) {
	var (
		rows []Expense
		err  error
	)
	if s.policy.CanReadAll(actor, policy.ResourceExpense) {
		rows, err = s.repo.FindAll(ctx)
	} else {
		if actor.EmployeeID == "" {
			return []ExpenseResponse{}, nil
		}
		rows, err = s.repo.FindAllByEmployee(ctx, actor.EmployeeID)
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, actor policy.Principal, id string) (ExpenseResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ExpenseResponse{}, mapRepositoryError(err)
	}

	decision, err := s.policy.AuthorizeOwned(actor, e.EmployeeID.String(), policy.ResourceExpense, policy.ActionRead)
	if err != nil {
		return ExpenseResponse{}, err
	}
	if !decision.Allowed {
		return ExpenseResponse{}, apperror.ErrForbidden
	}

	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, actor policy.Principal, id string, req UpdateExpenseRequest) (ExpenseResponse, error) {
	s.logger.Debug("update expense requested",
		zap.String("expense_id", id),
		zap.String("actor_id", actor.UserID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseID
	}
	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return ExpenseResponse{}, apperror.ErrUnauthorized
	}
	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update expense begin tx failed", zap.Error(err))
		return ExpenseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ExpenseResponse{}, mapRepositoryError(err)
	}

	decision, err := s.policy.AuthorizeOwned(actor, e.EmployeeID.String(), policy.ResourceExpense, policy.ActionUpdate)
	if err != nil {
		return ExpenseResponse{}, err
	}
	if !decision.Allowed {
		return ExpenseResponse{}, apperror.ErrForbidden
	}

	if actor.Role == policy.RoleEmployee && e.Status != StatusDraft && e.Status != StatusRejected {
		return ExpenseResponse{}, expenseerrors.ErrNotEditableInStatus
	}

	e.ExpenseDate = expenseDate
	e.Category = req.Category
	e.Description = req.Description
	e.Amount = req.Amount
	e.Currency = req.Currency
	e.Receipt = req.Receipt
	e.Notes = req.Notes
	e.LastModifiedBy = actorUUID

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update expense persist failed",
			zap.String("expense_id", id),
			zap.Error(err),
		)
		return ExpenseResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update expense commit failed", zap.Error(err))
		return ExpenseResponse{}, err
	}

	s.logger.Info("update expense success", zap.String("expense_id", id))
	return mapToResponse(*e), nil
}

func (s *service) Submit(ctx context.Context, actor policy.Principal, id string) (ExpenseResponse, error) {
	return s.transitionStatus(ctx, actor, id, StatusSubmitted, policy.ActionSubmit, "")
}

func (s *service) Approve(ctx context.Context, actor policy.Principal, id string) (ExpenseResponse, error) {
	return s.transitionStatus(ctx, actor, id, StatusApproved, policy.ActionApprove, "")
}

func (s *service) Reject(ctx context.Context, actor policy.Principal, id, rejectionReason string) (ExpenseResponse, error) {
	return s.transitionStatus(ctx, actor, id, StatusRejected, policy.ActionReject, rejectionReason)
}

func (s *service) transitionStatus(ctx context.Context, actor policy.Principal, id, targetStatus, action, rejectionReason string) (ExpenseResponse, error) {
	s.logger.Debug("transition expense status requested",
		zap.String("expense_id", id),
		zap.String("actor_id", actor.UserID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(id); err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseID
	}
	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return ExpenseResponse{}, apperror.ErrUnauthorized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition expense status begin tx failed", zap.Error(err))
		return ExpenseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ExpenseResponse{}, mapRepositoryError(err)
	}

	decision, err := s.policy.AuthorizeOwned(actor, e.EmployeeID.String(), policy.ResourceExpense, action)
	if err != nil {
		return ExpenseResponse{}, err
	}
	if !decision.Allowed {
		return ExpenseResponse{}, apperror.ErrForbidden
	}

	if !isAllowedStatusTransition(e.Status, targetStatus) {
		s.logger.Warn("transition expense status invalid",
			zap.String("expense_id", id),
			zap.String("from_status", e.Status),
			zap.String("to_status", targetStatus),
		)
		return ExpenseResponse{}, expenseerrors.ErrInvalidStatusTransition
	}

	e.Status = targetStatus
	e.LastModifiedBy = actorUUID
	switch targetStatus {
	case StatusApproved:
		e.ApprovedBy = &actorUUID
		now := time.Now().UTC()
		e.ApprovedAt = &now
		e.RejectionReason = nil
	case StatusRejected:
		// An empty reason is acceptable; approval stamps are cleared so a
		// reopened expense carries no stale decision.
		e.ApprovedBy = nil
		e.ApprovedAt = nil
		e.RejectionReason = &rejectionReason
	}

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("transition expense status persist failed",
			zap.String("expense_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return ExpenseResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil && (targetStatus == StatusApproved || targetStatus == StatusRejected) {
		if err := s.writeDecisionEvent(ctx, tx, e, actor.UserID); err != nil {
			s.logger.Error("transition expense status outbox failed", zap.Error(err))
			return ExpenseResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition expense status commit failed", zap.Error(err))
		return ExpenseResponse{}, err
	}

	s.logger.Info("transition expense status success",
		zap.String("expense_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*e), nil
}

func (s *service) writeDecisionEvent(ctx context.Context, tx *sql.Tx, e *Expense, decidedBy string) error {
	eventType := "expense_approved"
	if e.Status == StatusRejected {
		eventType = "expense_rejected"
	}

	payload, err := json.Marshal(events.ExpenseDecidedEvent{
		EventType:  eventType,
		ExpenseID:  e.ID.String(),
		EmployeeID: e.EmployeeID.String(),
		Status:     e.Status,
		Amount:     e.Amount,
		Currency:   e.Currency,
		DecidedBy:  decidedBy,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "expense",
		AggregateID:   e.ID.String(),
		EventType:     eventType,
		Topic:         events.ExpenseLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Delete(ctx context.Context, actor policy.Principal, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return expenseerrors.ErrInvalidExpenseID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	decision, err := s.policy.AuthorizeOwned(actor, e.EmployeeID.String(), policy.ResourceExpense, policy.ActionDelete)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return apperror.ErrForbidden
	}

	if actor.Role == policy.RoleEmployee && e.Status != StatusDraft {
		return expenseerrors.ErrNotDeletableInStatus
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete expense success", zap.String("expense_id", id))
	return nil
}

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return false
	}

	switch currentStatus {
	case StatusDraft:
		return targetStatus == StatusSubmitted
	case StatusSubmitted:
		return targetStatus == StatusApproved || targetStatus == StatusRejected
	case StatusApproved:
		// Reimbursement is recorded out of band; no route reaches it.
		return targetStatus == StatusRejected || targetStatus == StatusReimbursed
	case StatusRejected:
		return targetStatus == StatusApproved
	default:
		return false
	}
}

func mapToResponse(e Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:             e.ID.String(),
		EmployeeID:     e.EmployeeID.String(),
		ExpenseDate:    e.ExpenseDate.Format("2006-01-02"),
		Category:       e.Category,
		Description:    e.Description,
		Amount:         e.Amount,
		Currency:       e.Currency,
		Receipt:        e.Receipt,
		Notes:          e.Notes,
		Status:         e.Status,
		CreatedBy:      e.CreatedBy.String(),
		LastModifiedBy: e.LastModifiedBy.String(),
	}
	if e.Employee != nil {
		resp.EmployeeName = e.Employee.FullName
		resp.EmployeeNumber = e.Employee.EmployeeNumber
	}
	if e.ApprovedBy != nil {
		v := e.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if e.ApprovedAt != nil {
		v := e.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = e.RejectionReason
	return resp
}

func mapToListResponse(rows []Expense) []ExpenseResponse {
	resp := make([]ExpenseResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToResponse(e)
	}
	return resp
}
