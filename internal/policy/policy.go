package policy

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

const (
	ResourceTimesheet = "timesheet"
	ResourceExpense   = "expense"
	ResourceEmployee  = "employee"
	ResourceUser      = "user"
	ResourceReport    = "report"
)

const (
	ActionRead     = "read"
	ActionReadAll  = "read_all"
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionSubmit   = "submit"
	ActionApprove  = "approve"
	ActionReject   = "reject"
	ActionActivate = "activate"
	ActionManage   = "manage"
	ActionGenerate = "generate"
	ActionFinalize = "finalize"
	ActionExport   = "export"
)

const (
	ReasonOK         = "ok"
	ReasonRoleDenied = "role_denied"
	ReasonNotOwner   = "not_owner"
)

// Principal is the authenticated caller as extracted by the auth
// middleware. EmployeeID is empty unless the account is linked to an
// employee record.
type Principal struct {
	UserID     string
	Role       string
	EmployeeID string
}

type Decision struct {
	Allowed bool
	Reason  string
}

//go:generate mockgen -source=policy.go -destination=mock/policy_mock.go -package=mock
type Service interface {
	// Authorize checks the role matrix only.
	Authorize(p Principal, resource, action string) (Decision, error)
	// AuthorizeOwned additionally requires EMPLOYEE principals to own the
	// record. Admin and manager skip the ownership check.
	AuthorizeOwned(p Principal, ownerEmployeeID, resource, action string) (Decision, error)
	// CanReadAll reports whether the principal may read records beyond
	// their own.
	CanReadAll(p Principal, resource string) bool
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// permissionMatrix is the fixed role capability table. There is no
// per-tenant policy storage; the matrix is part of the application.
var permissionMatrix = map[string][][2]string{
	RoleEmployee: {
		{ResourceTimesheet, ActionRead},
		{ResourceTimesheet, ActionCreate},
		{ResourceTimesheet, ActionUpdate},
		{ResourceTimesheet, ActionDelete},
		{ResourceTimesheet, ActionSubmit},
		{ResourceExpense, ActionRead},
		{ResourceExpense, ActionCreate},
		{ResourceExpense, ActionUpdate},
		{ResourceExpense, ActionDelete},
		{ResourceExpense, ActionSubmit},
		{ResourceReport, ActionRead},
	},
	RoleManager: {
		{ResourceTimesheet, ActionReadAll},
		{ResourceTimesheet, ActionApprove},
		{ResourceExpense, ActionReadAll},
		{ResourceExpense, ActionApprove},
		{ResourceExpense, ActionReject},
		{ResourceEmployee, ActionRead},
		{ResourceEmployee, ActionActivate},
		{ResourceReport, ActionReadAll},
		{ResourceReport, ActionGenerate},
		{ResourceReport, ActionFinalize},
		{ResourceReport, ActionExport},
	},
	RoleAdmin: {
		{ResourceEmployee, ActionCreate},
		{ResourceEmployee, ActionUpdate},
		{ResourceEmployee, ActionDelete},
		{ResourceUser, ActionManage},
	},
}

func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	// Privilege ordering: admin inherits manager, manager inherits employee.
	if _, err := enforcer.AddGroupingPolicy(RoleAdmin, RoleManager); err != nil {
		return nil, err
	}
	if _, err := enforcer.AddGroupingPolicy(RoleManager, RoleEmployee); err != nil {
		return nil, err
	}

	for role, perms := range permissionMatrix {
		for _, perm := range perms {
			if _, err := enforcer.AddPolicy(role, perm[0], perm[1]); err != nil {
				return nil, err
			}
		}
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Authorize(p Principal, resource, action string) (Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(p.Role, resource, action)
	if err != nil {
		return Decision{}, err
	}
	if !allowed {
		s.logger.Debug("authorization denied",
			zap.String("role", p.Role),
			zap.String("resource", resource),
			zap.String("action", action),
		)
		return Decision{Allowed: false, Reason: ReasonRoleDenied}, nil
	}
	return Decision{Allowed: true, Reason: ReasonOK}, nil
}

func (s *service) AuthorizeOwned(p Principal, ownerEmployeeID, resource, action string) (Decision, error) {
	decision, err := s.Authorize(p, resource, action)
	if err != nil || !decision.Allowed {
		return decision, err
	}

	if p.Role == RoleEmployee {
		if p.EmployeeID == "" || p.EmployeeID != ownerEmployeeID {
			s.logger.Debug("ownership check failed",
				zap.String("employee_id", p.EmployeeID),
				zap.String("resource", resource),
				zap.String("action", action),
			)
			return Decision{Allowed: false, Reason: ReasonNotOwner}, nil
		}
	}

	return Decision{Allowed: true, Reason: ReasonOK}, nil
}

func (s *service) CanReadAll(p Principal, resource string) bool {
	decision, err := s.Authorize(p, resource, ActionReadAll)
	if err != nil {
		return false
	}
	return decision.Allowed
}
