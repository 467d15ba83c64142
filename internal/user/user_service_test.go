package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-workforce/internal/employee"
	"go-workforce/internal/policy"

	employeeerrors "go-workforce/internal/employee/errors"
	usererrors "go-workforce/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	store map[string]*User

	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{store: map[string]*User{}}
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *u
	f.store[u.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]User, error) {
	rows := make([]User, 0, len(f.store))
	for _, u := range f.store {
		rows = append(rows, *u)
	}
	return rows, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.store[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.store {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Update(ctx context.Context, u *User) error {
	cp := *u
	f.store[u.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.store, id)
	return nil
}

type fakeEmployeeRepo struct {
	store map[string]*employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{store: map[string]*employee.Employee{}}
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	f.store[e.ID.String()] = e
	return nil
}
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindAllActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	e, ok := f.store[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) HardDelete(ctx context.Context, id string) error        { return nil }

func seedLinkedEmployee(repo *fakeEmployeeRepo) uuid.UUID {
	id := uuid.New()
	repo.store[id.String()] = &employee.Employee{ID: id, EmployeeNumber: "EMP001", FullName: "Jane Doe"}
	return id
}

func TestUserService_Create_EmployeeAccount(t *testing.T) {
	repo := newFakeRepo()
	employeeRepo := newFakeEmployeeRepo()
	employeeID := seedLinkedEmployee(employeeRepo)
	svc := NewService(repo, employeeRepo)

	resp, err := svc.Create(context.Background(), CreateUserRequest{
		Email:      "Jane.Doe@Example.com",
		Name:       "Jane Doe",
		Password:   "s3cret-pass",
		Role:       policy.RoleEmployee,
		EmployeeID: employeeID.String(),
	})
	assert.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", resp.Email)
	assert.Equal(t, employeeID.String(), resp.EmployeeID)
	assert.True(t, resp.IsActive)

	stored := repo.store[resp.ID]
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestUserService_Create_EmployeeRoleRequiresLink(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeEmployeeRepo())

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "worker@example.com",
		Name:     "Worker",
		Password: "s3cret-pass",
		Role:     policy.RoleEmployee,
	})
	assert.ErrorIs(t, err, usererrors.ErrEmployeeLinkRequired)
}

func TestUserService_Create_ManagerCannotCarryLink(t *testing.T) {
	employeeRepo := newFakeEmployeeRepo()
	employeeID := seedLinkedEmployee(employeeRepo)
	svc := NewService(newFakeRepo(), employeeRepo)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:      "boss@example.com",
		Name:       "Boss",
		Password:   "s3cret-pass",
		Role:       policy.RoleManager,
		EmployeeID: employeeID.String(),
	})
	assert.ErrorIs(t, err, usererrors.ErrEmployeeLinkNotAllowed)
}

func TestUserService_Create_UnknownEmployee(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeEmployeeRepo())

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:      "worker@example.com",
		Name:       "Worker",
		Password:   "s3cret-pass",
		Role:       policy.RoleEmployee,
		EmployeeID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New(`ERROR: duplicate key value violates unique constraint "uq_user_email" (SQLSTATE 23505)`)
	svc := NewService(repo, newFakeEmployeeRepo())

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "taken@example.com",
		Name:     "Taken",
		Password: "s3cret-pass",
		Role:     policy.RoleAdmin,
	})
	assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyRegistered)
}

func TestUserService_SetActive(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeEmployeeRepo())

	created, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "admin@example.com",
		Name:     "Admin",
		Password: "s3cret-pass",
		Role:     policy.RoleAdmin,
	})
	assert.NoError(t, err)

	resp, err := svc.SetActive(context.Background(), created.ID, false)
	assert.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.False(t, repo.store[created.ID].IsActive)
}

func TestUserService_ResetPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeEmployeeRepo())

	created, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "admin@example.com",
		Name:     "Admin",
		Password: "old-password",
		Role:     policy.RoleAdmin,
	})
	assert.NoError(t, err)

	err = svc.ResetPassword(context.Background(), created.ID, "new-password-1")
	assert.NoError(t, err)

	stored := repo.store[created.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("new-password-1")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("old-password")))
}

func TestUserService_Delete_Unknown(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeEmployeeRepo())

	err := svc.Delete(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)

	err = svc.Delete(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
}
