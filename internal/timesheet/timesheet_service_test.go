package timesheet

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-workforce/internal/policy"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/timecalc"
	timesheeterrors "go-workforce/internal/timesheet/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	store map[string]*Timesheet

	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{store: map[string]*Timesheet{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, t *Timesheet) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *t
	f.store[t.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]Timesheet, error) {
	rows := make([]Timesheet, 0, len(f.store))
	for _, t := range f.store {
		rows = append(rows, *t)
	}
	return rows, nil
}

func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]Timesheet, error) {
	var rows []Timesheet
	for _, t := range f.store {
		if t.EmployeeID.String() == employeeID {
			rows = append(rows, *t)
		}
	}
	return rows, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Timesheet, error) {
	t, ok := f.store[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, t *Timesheet) error {
	cp := *t
	f.store[t.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.store, id)
	return nil
}

func newTestService(t *testing.T, repo Repository) (Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	policyService, err := policy.NewService()
	assert.NoError(t, err)

	svc := NewService(db, repo, policyService, timecalc.Config{RegularHoursThreshold: 8})
	return svc, mock, func() { db.Close() }
}

func managerPrincipal() policy.Principal {
	return policy.Principal{UserID: uuid.New().String(), Role: policy.RoleManager}
}

func employeePrincipal(employeeID string) policy.Principal {
	return policy.Principal{UserID: uuid.New().String(), Role: policy.RoleEmployee, EmployeeID: employeeID}
}

func TestTimesheetService_Create_ComputesDerivedHours(t *testing.T) {
	repo := newFakeRepo()
	svc, mock, cleanup := newTestService(t, repo)
	defer cleanup()

	employeeID := uuid.New().String()
	actor := employeePrincipal(employeeID)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), actor, CreateTimesheetRequest{
		WorkDate:     "2025-06-02",
		StartTime:    "09:00",
		EndTime:      "19:30",
		BreakMinutes: 30,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusDraft, resp.Status)
	assert.Equal(t, employeeID, resp.EmployeeID)
	assert.InDelta(t, 10.0, resp.HoursWorked, 0.001)
	assert.InDelta(t, 2.0, resp.OTHours, 0.001)
	assert.Equal(t, actor.UserID, resp.CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimesheetService_Create_OvernightShift(t *testing.T) {
	repo := newFakeRepo()
	svc, mock, cleanup := newTestService(t, repo)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), managerPrincipal(), CreateTimesheetRequest{
		EmployeeID: uuid.New().String(),
		WorkDate:   "2025-06-02",
		StartTime:  "22:00",
		EndTime:    "06:00",
	})
	assert.NoError(t, err)
	assert.InDelta(t, 8.0, resp.HoursWorked, 0.001)
	assert.InDelta(t, 0.0, resp.OTHours, 0.001)
}

func TestTimesheetService_Create_ForeignEmployeeForbidden(t *testing.T) {
	repo := newFakeRepo()
	svc, _, cleanup := newTestService(t, repo)
	defer cleanup()

	actor := employeePrincipal(uuid.New().String())

	_, err := svc.Create(context.Background(), actor, CreateTimesheetRequest{
		EmployeeID: uuid.New().String(),
		WorkDate:   "2025-06-02",
		StartTime:  "09:00",
		EndTime:    "17:00",
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Empty(t, repo.store)
}

func TestTimesheetService_Create_MalformedTimeRejected(t *testing.T) {
	repo := newFakeRepo()
	svc, _, cleanup := newTestService(t, repo)
	defer cleanup()

	_, err := svc.Create(context.Background(), managerPrincipal(), CreateTimesheetRequest{
		EmployeeID: uuid.New().String(),
		WorkDate:   "2025-06-02",
		StartTime:  "9am",
		EndTime:    "17:00",
	})
	assert.ErrorIs(t, err, timesheeterrors.ErrInvalidShiftTime)
}

func TestTimesheetService_Create_DuplicateWorkDateConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New(`ERROR: duplicate key value violates unique constraint "uq_timesheet_employee_workdate" (SQLSTATE 23505)`)
	svc, mock, cleanup := newTestService(t, repo)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), managerPrincipal(), CreateTimesheetRequest{
		EmployeeID: uuid.New().String(),
		WorkDate:   "2025-06-02",
		StartTime:  "09:00",
		EndTime:    "17:00",
	})
	assert.ErrorIs(t, err, timesheeterrors.ErrDuplicateWorkDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func seedTimesheet(repo *fakeRepo, employeeID string, status string) *Timesheet {
	t := &Timesheet{
		ID:             uuid.New(),
		EmployeeID:     uuid.MustParse(employeeID),
		WorkDate:       time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:      "09:00",
		EndTime:        "17:00",
		HoursWorked:    8,
		Status:         status,
		CreatedBy:      uuid.New(),
		LastModifiedBy: uuid.New(),
	}
	repo.store[t.ID.String()] = t
	return t
}

func TestTimesheetService_SubmitAndApprove(t *testing.T) {
	repo := newFakeRepo()
	svc, mock, cleanup := newTestService(t, repo)
	defer cleanup()

	employeeID := uuid.New().String()
	owner := employeePrincipal(employeeID)
	sheet := seedTimesheet(repo, employeeID, StatusDraft)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Submit(context.Background(), owner, sheet.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, StatusSubmitted, resp.Status)

	// approval is a manager capability and stamps the modifier only
	manager := managerPrincipal()
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.Approve(context.Background(), manager, sheet.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.Equal(t, manager.UserID, resp.LastModifiedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimesheetService_ApproveFromDraftFails(t *testing.T) {
	repo := newFakeRepo()
	svc, mock, cleanup := newTestService(t, repo)
	defer cleanup()

	sheet := seedTimesheet(repo, uuid.New().String(), StatusDraft)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Approve(context.Background(), managerPrincipal(), sheet.ID.String())
	assert.ErrorIs(t, err, timesheeterrors.ErrInvalidStatusTransition)
}

func TestTimesheetService_ApproveFromRejected(t *testing.T) {
	repo := newFakeRepo()
	svc, mock, cleanup := newTestService(t, repo)
	defer cleanup()

	sheet := seedTimesheet(repo, uuid.New().String(), StatusRejected)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Approve(context.Background(), managerPrincipal(), sheet.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
}

func TestTimesheetService_SubmitDeniedForEmployeeRole(t *testing.T) {
	repo := newFakeRepo()
	svc, mock, cleanup := newTestService(t, repo)
	defer cleanup()

	sheet := seedTimesheet(repo, uuid.New().String(), StatusDraft)
	stranger := employeePrincipal(uuid.New().String())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Submit(context.Background(), stranger, sheet.ID.String())
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestTimesheetService_Update_ReopenApproved(t *testing.T) {
	repo := newFakeRepo()
	svc, mock, cleanup := newTestService(t, repo)
	defer cleanup()

	sheet := seedTimesheet(repo, uuid.New().String(), StatusApproved)
	manager := managerPrincipal()

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), manager, sheet.ID.String(), UpdateTimesheetRequest{
		WorkDate:  "2025-06-02",
		StartTime: "09:00",
		EndTime:   "17:00",
		Status:    StatusRejected,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, resp.Status)
	assert.Equal(t, manager.UserID, resp.LastModifiedBy)
}

func TestTimesheetService_Update_EmployeeCannotReject(t *testing.T) {
	repo := newFakeRepo()
	svc, mock, cleanup := newTestService(t, repo)
	defer cleanup()

	employeeID := uuid.New().String()
	sheet := seedTimesheet(repo, employeeID, StatusSubmitted)
	owner := employeePrincipal(employeeID)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Update(context.Background(), owner, sheet.ID.String(), UpdateTimesheetRequest{
		WorkDate:  "2025-06-02",
		StartTime: "09:00",
		EndTime:   "17:00",
		Status:    StatusRejected,
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestTimesheetService_Update_OwnerEditRecomputesHours(t *testing.T) {
	repo := newFakeRepo()
	svc, mock, cleanup := newTestService(t, repo)
	defer cleanup()

	employeeID := uuid.New().String()
	sheet := seedTimesheet(repo, employeeID, StatusDraft)
	owner := employeePrincipal(employeeID)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), owner, sheet.ID.String(), UpdateTimesheetRequest{
		WorkDate:     "2025-06-02",
		StartTime:    "08:00",
		EndTime:      "18:00",
		BreakMinutes: 60,
		Status:       StatusDraft,
	})
	assert.NoError(t, err)
	assert.InDelta(t, 9.0, resp.HoursWorked, 0.001)
	assert.InDelta(t, 1.0, resp.OTHours, 0.001)
}

func TestTimesheetService_Update_OwnerBlockedAfterSubmit(t *testing.T) {
	repo := newFakeRepo()
	svc, mock, cleanup := newTestService(t, repo)
	defer cleanup()

	employeeID := uuid.New().String()
	sheet := seedTimesheet(repo, employeeID, StatusSubmitted)
	owner := employeePrincipal(employeeID)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Update(context.Background(), owner, sheet.ID.String(), UpdateTimesheetRequest{
		WorkDate:  "2025-06-02",
		StartTime: "09:00",
		EndTime:   "17:00",
		Status:    StatusSubmitted,
	})
	assert.ErrorIs(t, err, timesheeterrors.ErrNotEditableInStatus)
}

func TestTimesheetService_Delete_OwnerOnlyDraft(t *testing.T) {
	repo := newFakeRepo()
	svc, mock, cleanup := newTestService(t, repo)
	defer cleanup()

	employeeID := uuid.New().String()
	owner := employeePrincipal(employeeID)

	submitted := seedTimesheet(repo, employeeID, StatusSubmitted)
	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Delete(context.Background(), owner, submitted.ID.String())
	assert.ErrorIs(t, err, timesheeterrors.ErrNotDeletableInStatus)

	draft := seedTimesheet(repo, employeeID, StatusDraft)
	mock.ExpectBegin()
	mock.ExpectCommit()
	err = svc.Delete(context.Background(), owner, draft.ID.String())
	assert.NoError(t, err)
	_, found := repo.store[draft.ID.String()]
	assert.False(t, found)
}

func TestTimesheetService_GetAll_EmployeeSeesOwnOnly(t *testing.T) {
	repo := newFakeRepo()
	svc, _, cleanup := newTestService(t, repo)
	defer cleanup()

	mineID := uuid.New().String()
	seedTimesheet(repo, mineID, StatusDraft)
	seedTimesheet(repo, uuid.New().String(), StatusDraft)

	rows, err := svc.GetAll(context.Background(), employeePrincipal(mineID))
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, mineID, rows[0].EmployeeID)

	all, err := svc.GetAll(context.Background(), managerPrincipal())
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTimesheetService_GetByID_ForeignRecordForbidden(t *testing.T) {
	repo := newFakeRepo()
	svc, _, cleanup := newTestService(t, repo)
	defer cleanup()

	sheet := seedTimesheet(repo, uuid.New().String(), StatusDraft)

	_, err := svc.GetByID(context.Background(), employeePrincipal(uuid.New().String()), sheet.ID.String())
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
