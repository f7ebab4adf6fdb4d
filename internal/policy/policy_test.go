package policy_test

import (
	"testing"

	"github.com/kiwidressing/Maruschedule/internal/policy"

	"github.com/stretchr/testify/assert"
)

func newService(t *testing.T) policy.Service {
	t.Helper()
	svc, err := policy.NewService()
	assert.NoError(t, err)
	return svc
}

func TestPolicy_EmployeeScope(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name     string
		resource string
		action   string
		allowed  bool
	}{
		{"own shifts writable", policy.ResourceShift, "write", true},
		{"own shifts readable", policy.ResourceShift, "read", true},
		{"company-wide shifts hidden", policy.ResourceShift, "read_all", false},
		{"member list hidden", policy.ResourceMember, "read", false},
		{"join requests hidden", policy.ResourceJoinRequest, "read", false},
		{"archives writable", policy.ResourceArchive, "write", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Allow(policy.RoleEmployee, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestPolicy_AdminInheritsEmployee(t *testing.T) {
	svc := newService(t)

	allowed, err := svc.Allow(policy.RoleAdmin, policy.ResourceShift, "write")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Allow(policy.RoleAdmin, policy.ResourceShift, "read_all")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Allow(policy.RoleAdmin, policy.ResourceJoinRequest, "resolve")
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestPolicy_OwnerOnlyActions(t *testing.T) {
	svc := newService(t)

	allowed, err := svc.Allow(policy.RoleAdmin, policy.ResourceMember, "promote")
	assert.NoError(t, err)
	assert.False(t, allowed, "promote is reserved for the owner")

	allowed, err = svc.Allow(policy.RoleOwner, policy.ResourceMember, "promote")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Allow(policy.RoleOwner, policy.ResourceCompany, "update")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Allow(policy.RoleAdmin, policy.ResourceCompany, "update")
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestPolicy_IndividualIsolation(t *testing.T) {
	svc := newService(t)

	allowed, err := svc.Allow(policy.RoleIndividual, policy.ResourceShift, "write")
	assert.NoError(t, err)
	assert.True(t, allowed)

	for _, action := range []string{"read_all"} {
		allowed, err = svc.Allow(policy.RoleIndividual, policy.ResourceShift, action)
		assert.NoError(t, err)
		assert.False(t, allowed)
	}

	allowed, err = svc.Allow(policy.RoleIndividual, policy.ResourceCompany, "read")
	assert.NoError(t, err)
	assert.False(t, allowed)
}
