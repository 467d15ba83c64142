package employee

import (
	"context"
	"database/sql"
	"testing"

	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn        func(tx *sql.Tx) Repository
	createFn        func(ctx context.Context, e *Employee) error
	findAllFn       func(ctx context.Context) ([]Employee, error)
	findAllActiveFn func(ctx context.Context) ([]Employee, error)
	findByIDFn      func(ctx context.Context, id string) (*Employee, error)
	updateFn        func(ctx context.Context, e *Employee) error
	hardDeleteFn    func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository              { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, e *Employee) error { return f.createFn(ctx, e) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindAllActive(ctx context.Context) ([]Employee, error) {
	return f.findAllActiveFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, e *Employee) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) HardDelete(ctx context.Context, id string) error {
	return f.hardDeleteFn(ctx, id)
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error   { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, r string) error { return nil }

func TestService_Create_GeneratesEmployeeNumber(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, e *Employee) error { saved = *e; return nil }

	counterRepo := &fakeCounter{next: 6}
	outbox := &fakeOutbox{}
	svc := NewService(db, repo, counterRepo, outbox, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), uuid.New().String(), CreateEmployeeRequest{
		FullName: "Jane Silva",
		HireDate: "2024-03-01",
		PayRate:  25,
		OTRate:   37.5,
	})
	assert.NoError(t, err)
	assert.Equal(t, "EMP007", resp.EmployeeNumber)
	assert.Equal(t, StatusActive, resp.Status)
	assert.Equal(t, saved.ID.String(), resp.ID)

	// lifecycle event persisted inside the same transaction
	assert.Len(t, outbox.events, 1)
	assert.Equal(t, "employee_created", outbox.events[0].EventType)
	assert.Equal(t, saved.ID.String(), outbox.events[0].AggregateID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_UppercasesProvidedNumber(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, e *Employee) error { return nil }

	svc := NewService(db, repo, &fakeCounter{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), uuid.New().String(), CreateEmployeeRequest{
		EmployeeNumber: "emp042",
		FullName:       "Nimal Perera",
		HireDate:       "2023-11-20",
	})
	assert.NoError(t, err)
	assert.Equal(t, "EMP042", resp.EmployeeNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_InvalidHireDate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }

	svc := NewService(db, repo, &fakeCounter{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateEmployeeRequest{
		FullName: "Jane Silva",
		HireDate: "01-03-2024",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeCounter{}, nil, nil)

	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestService_GetByID_InvalidID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCounter{}, nil, nil)

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}

func TestService_SetStatus(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	stored := Employee{ID: uuid.New(), EmployeeNumber: "EMP001", FullName: "Jane Silva", Status: StatusActive}
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Employee, error) {
		cp := stored
		return &cp, nil
	}
	repo.updateFn = func(ctx context.Context, e *Employee) error { stored = *e; return nil }

	svc := NewService(db, repo, &fakeCounter{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.SetStatus(context.Background(), stored.ID.String(), StatusInactive)
	assert.NoError(t, err)
	assert.Equal(t, StatusInactive, resp.Status)
	assert.Equal(t, StatusInactive, stored.Status)

	_, err = svc.SetStatus(context.Background(), stored.ID.String(), "RETIRED")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	deleted := false
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, got string) (*Employee, error) {
		return &Employee{ID: id}, nil
	}
	repo.hardDeleteFn = func(ctx context.Context, got string) error {
		deleted = got == id.String()
		return nil
	}

	svc := NewService(db, repo, &fakeCounter{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.Delete(context.Background(), id.String())
	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
