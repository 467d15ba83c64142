package user

import (
	"context"
	"strings"

	"go-workforce/internal/employee"
	"go-workforce/internal/policy"

	employeeerrors "go-workforce/internal/employee/errors"
	usererrors "go-workforce/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	SetActive(ctx context.Context, id string, isActive bool) (UserResponse, error)
	ResetPassword(ctx context.Context, id, newPassword string) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, employeeRepo: employeeRepo, logger: l}
}

// resolveEmployeeLink enforces the role/link rule: EMPLOYEE accounts must
// reference an existing employee record, other roles must not.
func (s *service) resolveEmployeeLink(ctx context.Context, role, employeeID string) (*uuid.UUID, error) {
	if role != policy.RoleEmployee {
		if strings.TrimSpace(employeeID) != "" {
			return nil, usererrors.ErrEmployeeLinkNotAllowed
		}
		return nil, nil
	}

	if strings.TrimSpace(employeeID) == "" {
		return nil, usererrors.ErrEmployeeLinkRequired
	}
	eID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	if _, err := s.employeeRepo.FindByID(ctx, eID.String()); err != nil {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	return &eID, nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Debug("create user requested",
		zap.String("email", email),
		zap.String("role", req.Role),
	)

	employeeID, err := s.resolveEmployeeLink(ctx, req.Role, req.EmployeeID)
	if err != nil {
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create user hash failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hashed),
		Role:         req.Role,
		EmployeeID:   employeeID,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create user success",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(rows))
	for i, u := range rows {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	employeeID, err := s.resolveEmployeeLink(ctx, req.Role, req.EmployeeID)
	if err != nil {
		return UserResponse{}, err
	}

	u.Email = strings.ToLower(strings.TrimSpace(req.Email))
	u.Name = strings.TrimSpace(req.Name)
	u.Role = req.Role
	u.EmployeeID = employeeID

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func (s *service) SetActive(ctx context.Context, id string, isActive bool) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("user status changed",
		zap.String("user_id", id),
		zap.Bool("is_active", isActive),
	)
	return mapToResponse(*u), nil
}

func (s *service) ResetPassword(ctx context.Context, id, newPassword string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hashed)
	if err := s.repo.Update(ctx, u); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("user password reset", zap.String("user_id", id))
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.EmployeeID != nil {
		resp.EmployeeID = u.EmployeeID.String()
	}
	return resp
}
