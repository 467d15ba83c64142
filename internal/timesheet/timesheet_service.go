package timesheet

import (
	"context"
	"database/sql"
	"time"

	"go-workforce/internal/policy"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/timecalc"

	timesheeterrors "go-workforce/internal/timesheet/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor policy.Principal, req CreateTimesheetRequest) (TimesheetResponse, error)
	GetAll(ctx context.Context, actor policy.Principal) ([]TimesheetResponse, error)
	GetByID(ctx context.Context, actor policy.Principal, id string) (TimesheetResponse, error)
	Update(ctx context.Context, actor policy.Principal, id string, req UpdateTimesheetRequest) (TimesheetResponse, error)
	Submit(ctx context.Context, actor policy.Principal, id string) (TimesheetResponse, error)
	Approve(ctx context.Context, actor policy.Principal, id string) (TimesheetResponse, error)
	Delete(ctx context.Context, actor policy.Principal, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	policy  policy.Service
	calc    timecalc.Config
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, policyService policy.Service, calc timecalc.Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{db: db, repo: repo, policy: policyService, calc: calc, logger: l}
}

func (s *service) Create(ctx context.Context, actor policy.Principal, req CreateTimesheetRequest) (TimesheetResponse, error) {
	s.logger.Debug("create timesheet requested",
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("work_date", req.WorkDate),
	)

	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidEmployeeID
	}

	decision, err := s.policy.AuthorizeOwned(actor, employeeID, policy.ResourceTimesheet, policy.ActionCreate)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if !decision.Allowed {
		return TimesheetResponse{}, apperror.ErrForbidden
	}

	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return TimesheetResponse{}, apperror.ErrUnauthorized
	}

	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidWorkDate
	}

	result, err := s.calc.Compute(req.StartTime, req.EndTime, req.BreakMinutes)
	if err != nil {
		s.logger.Warn("create timesheet time computation failed", zap.Error(err))
		return TimesheetResponse{}, timesheeterrors.ErrInvalidShiftTime
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create timesheet begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t := &Timesheet{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		WorkDate:       workDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		BreakMinutes:   req.BreakMinutes,
		HoursWorked:    result.HoursWorked,
		OTHours:        result.OTHours,
		IsVacationWork: req.IsVacationWork,
		IsHolidayWork:  req.IsHolidayWork,
		Notes:          req.Notes,
		Status:         StatusDraft,
		CreatedBy:      actorUUID,
		LastModifiedBy: actorUUID,
	}

	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create timesheet persist failed", zap.Error(err))
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create timesheet commit failed", zap.Error(err))
		return TimesheetResponse{}, err
	}

	s.logger.Info("create timesheet success",
		zap.String("timesheet_id", t.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("work_date", req.WorkDate),
	)
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, actor policy.Principal) ([]TimesheetResponse, error) {
	var (
		rows []Timesheet
		err  error
	)
	if s.policy.CanReadAll(actor, policy.ResourceTimesheet) {
		rows, err = s.repo.FindAll(ctx)
	} else {
		if actor.EmployeeID == "" {
			return []TimesheetResponse{}, nil
		}
		rows, err = s.repo.FindAllByEmployee(ctx, actor.EmployeeID)
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, actor policy.Principal, id string) (TimesheetResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimesheetID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	decision, err := s.policy.AuthorizeOwned(actor, t.EmployeeID.String(), policy.ResourceTimesheet, policy.ActionRead)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if !decision.Allowed {
		// Generic denial; existence of foreign records is not leaked.
		return TimesheetResponse{}, apperror.ErrForbidden
	}

	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, actor policy.Principal, id string, req UpdateTimesheetRequest) (TimesheetResponse, error) {
	s.logger.Debug("update timesheet requested",
		zap.String("timesheet_id", id),
		zap.String("actor_id", actor.UserID),
		zap.String("target_status", req.Status),
	)

	if _, err := uuid.Parse(id); err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimesheetID
	}
	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return TimesheetResponse{}, apperror.ErrUnauthorized
	}
	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidWorkDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update timesheet begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	decision, err := s.policy.AuthorizeOwned(actor, t.EmployeeID.String(), policy.ResourceTimesheet, policy.ActionUpdate)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if !decision.Allowed {
		return TimesheetResponse{}, apperror.ErrForbidden
	}

	if req.Status != t.Status && !isAllowedStatusTransition(t.Status, req.Status) {
		s.logger.Warn("update timesheet transition invalid",
			zap.String("timesheet_id", id),
			zap.String("from_status", t.Status),
			zap.String("to_status", req.Status),
		)
		return TimesheetResponse{}, timesheeterrors.ErrInvalidStatusTransition
	}

	// Approval-level transitions through the generic update still require
	// the approve permission. Rejection has no dedicated endpoint, so
	// APPROVED -> REJECTED reopening flows through here.
	if req.Status != t.Status && (req.Status == StatusApproved || req.Status == StatusRejected) {
		d, err := s.policy.Authorize(actor, policy.ResourceTimesheet, policy.ActionApprove)
		if err != nil {
			return TimesheetResponse{}, err
		}
		if !d.Allowed {
			return TimesheetResponse{}, apperror.ErrForbidden
		}
	}

	// Owner edits are limited to statuses the record is still theirs to
	// change; managers and admins may edit regardless.
	if actor.Role == policy.RoleEmployee && t.Status != StatusDraft && t.Status != StatusRejected {
		return TimesheetResponse{}, timesheeterrors.ErrNotEditableInStatus
	}

	result, err := s.calc.Compute(req.StartTime, req.EndTime, req.BreakMinutes)
	if err != nil {
		s.logger.Warn("update timesheet time computation failed", zap.Error(err))
		return TimesheetResponse{}, timesheeterrors.ErrInvalidShiftTime
	}

	t.WorkDate = workDate
	t.StartTime = req.StartTime
	t.EndTime = req.EndTime
	t.BreakMinutes = req.BreakMinutes
	t.HoursWorked = result.HoursWorked
	t.OTHours = result.OTHours
	t.IsVacationWork = req.IsVacationWork
	t.IsHolidayWork = req.IsHolidayWork
	t.Notes = req.Notes
	t.Status = req.Status
	t.LastModifiedBy = actorUUID

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("update timesheet persist failed",
			zap.String("timesheet_id", id),
			zap.Error(err),
		)
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update timesheet commit failed", zap.Error(err))
		return TimesheetResponse{}, err
	}

	s.logger.Info("update timesheet success",
		zap.String("timesheet_id", id),
		zap.String("status", t.Status),
	)
	return mapToResponse(*t), nil
}

func (s *service) Submit(ctx context.Context, actor policy.Principal, id string) (TimesheetResponse, error) {
	return s.transitionStatus(ctx, actor, id, StatusSubmitted, policy.ActionSubmit)
}

func (s *service) Approve(ctx context.Context, actor policy.Principal, id string) (TimesheetResponse, error) {
	return s.transitionStatus(ctx, actor, id, StatusApproved, policy.ActionApprove)
}

func (s *service) transitionStatus(ctx context.Context, actor policy.Principal, id, targetStatus, action string) (TimesheetResponse, error) {
	s.logger.Debug("transition timesheet status requested",
		zap.String("timesheet_id", id),
		zap.String("actor_id", actor.UserID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(id); err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimesheetID
	}
	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return TimesheetResponse{}, apperror.ErrUnauthorized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition timesheet status begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	decision, err := s.policy.AuthorizeOwned(actor, t.EmployeeID.String(), policy.ResourceTimesheet, action)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if !decision.Allowed {
		return TimesheetResponse{}, apperror.ErrForbidden
	}

	if !isAllowedStatusTransition(t.Status, targetStatus) {
		s.logger.Warn("transition timesheet status invalid",
			zap.String("timesheet_id", id),
			zap.String("from_status", t.Status),
			zap.String("to_status", targetStatus),
		)
		return TimesheetResponse{}, timesheeterrors.ErrInvalidStatusTransition
	}

	t.Status = targetStatus
	// Approval leaves no dedicated stamp; the modifier audit field is the
	// only trace of who approved.
	t.LastModifiedBy = actorUUID

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("transition timesheet status persist failed",
			zap.String("timesheet_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("transition timesheet status commit failed", zap.Error(err))
		return TimesheetResponse{}, err
	}

	s.logger.Info("transition timesheet status success",
		zap.String("timesheet_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, actor policy.Principal, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return timesheeterrors.ErrInvalidTimesheetID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	decision, err := s.policy.AuthorizeOwned(actor, t.EmployeeID.String(), policy.ResourceTimesheet, policy.ActionDelete)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return apperror.ErrForbidden
	}

	if actor.Role == policy.RoleEmployee && t.Status != StatusDraft {
		return timesheeterrors.ErrNotDeletableInStatus
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete timesheet success", zap.String("timesheet_id", id))
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
		// Reopening an approved sheet puts it back under review.
		return targetStatus == StatusRejected
	case StatusRejected:
		return targetStatus == StatusSubmitted || targetStatus == StatusApproved
	default:
		return false
	}
}

func mapToResponse(t Timesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:             t.ID.String(),
		EmployeeID:     t.EmployeeID.String(),
		WorkDate:       t.WorkDate.Format("2006-01-02"),
		StartTime:      t.StartTime,
		EndTime:        t.EndTime,
		BreakMinutes:   t.BreakMinutes,
		HoursWorked:    t.HoursWorked,
		OTHours:        t.OTHours,
		IsVacationWork: t.IsVacationWork,
		IsHolidayWork:  t.IsHolidayWork,
		Notes:          t.Notes,
		Status:         t.Status,
		CreatedBy:      t.CreatedBy.String(),
		LastModifiedBy: t.LastModifiedBy.String(),
	}
	if t.Employee != nil {
		resp.EmployeeName = t.Employee.FullName
		resp.EmployeeNumber = t.Employee.EmployeeNumber
	}
	return resp
}

func mapToListResponse(rows []Timesheet) []TimesheetResponse {
	resp := make([]TimesheetResponse, len(rows))
	for i, t := range rows {
		resp[i] = mapToResponse(t)
	}
	return resp
}
