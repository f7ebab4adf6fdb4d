package policy

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Roles carried on the JWT and the users table.
const (
	RoleOwner      = "OWNER"
	RoleAdmin      = "ADMIN"
	RoleEmployee   = "EMPLOYEE"
	RoleIndividual = "INDIVIDUAL"
)

// Resources guarded by route middleware.
const (
	ResourceCompany     = "company"
	ResourceMember      = "member"
	ResourceJoinRequest = "joinrequest"
	ResourceShift       = "shift"
	ResourceArchive     = "archive"
	ResourceExport      = "export"
	ResourceRollup      = "rollup"
)

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

// rules is the static (role, resource, action) table. Role inheritance
// runs OWNER -> ADMIN -> EMPLOYEE, so a rule granted to EMPLOYEE is held
// by every company role. INDIVIDUAL stands alone: personal accounts keep
// their own shifts and archives but see nothing company-wide.
var rules = [][3]string{
	{RoleEmployee, ResourceShift, "write"},
	{RoleEmployee, ResourceShift, "read"},
	{RoleEmployee, ResourceArchive, "write"},
	{RoleEmployee, ResourceArchive, "read"},
	{RoleEmployee, ResourceExport, "read"},
	{RoleEmployee, ResourceCompany, "read"},

	{RoleAdmin, ResourceShift, "read_all"},
	{RoleAdmin, ResourceExport, "read_all"},
	{RoleAdmin, ResourceMember, "read"},
	{RoleAdmin, ResourceMember, "delete"},
	{RoleAdmin, ResourceJoinRequest, "read"},
	{RoleAdmin, ResourceJoinRequest, "resolve"},
	{RoleAdmin, ResourceRollup, "read"},

	{RoleOwner, ResourceMember, "promote"},
	{RoleOwner, ResourceCompany, "update"},

	{RoleIndividual, ResourceShift, "write"},
	{RoleIndividual, ResourceShift, "read"},
	{RoleIndividual, ResourceArchive, "write"},
	{RoleIndividual, ResourceArchive, "read"},
	{RoleIndividual, ResourceExport, "read"},
}

var grouping = [][2]string{
	{RoleOwner, RoleAdmin},
	{RoleAdmin, RoleEmployee},
}

//go:generate mockgen -source=policy.go -destination=mock/policy_mock.go -package=mock
type Service interface {
	Allow(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

// NewService builds the enforcer from the static model above. The policy
// never changes at runtime, so there is no storage adapter behind it.
func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, g := range grouping {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}
	for _, p := range rules {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: e}, nil
}

func (s *service) Allow(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
