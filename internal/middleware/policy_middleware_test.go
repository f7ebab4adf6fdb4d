package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kiwidressing/Maruschedule/internal/middleware"
	"github.com/kiwidressing/Maruschedule/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupPolicyRouter(t *testing.T, role, resource, action string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	policySvc, err := policy.NewService()
	assert.NoError(t, err)

	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
			c.Next()
		},
		middleware.PolicyAuthorize(policySvc, resource, action),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return r
}

func doGet(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPolicyAuthorize(t *testing.T) {
	t.Run("success employee reads own shifts", func(t *testing.T) {
		r := setupPolicyRouter(t, policy.RoleEmployee, policy.ResourceShift, "read")
		assert.Equal(t, http.StatusOK, doGet(r).Code)
	})

	t.Run("success owner inherits admin permissions", func(t *testing.T) {
		r := setupPolicyRouter(t, policy.RoleOwner, policy.ResourceJoinRequest, "resolve")
		assert.Equal(t, http.StatusOK, doGet(r).Code)
	})

	t.Run("negative employee cannot resolve join requests", func(t *testing.T) {
		r := setupPolicyRouter(t, policy.RoleEmployee, policy.ResourceJoinRequest, "resolve")
		assert.Equal(t, http.StatusForbidden, doGet(r).Code)
	})

	t.Run("negative individual has no member panel", func(t *testing.T) {
		r := setupPolicyRouter(t, policy.RoleIndividual, policy.ResourceMember, "read")
		assert.Equal(t, http.StatusForbidden, doGet(r).Code)
	})

	t.Run("negative missing role is unauthorized", func(t *testing.T) {
		r := setupPolicyRouter(t, "", policy.ResourceShift, "read")
		assert.Equal(t, http.StatusUnauthorized, doGet(r).Code)
	})
}
