package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravitycar/api-core/internal/apierrors"
)

type staticLookup map[string]map[string][]string

func (s staticLookup) RolesAndActions(component string) map[string][]string { return s[component] }

func TestAuthorizePublicRouteNeedsNoIdentity(t *testing.T) {
	g := NewGate(nil)
	route := RouteInfo{Public: true, Method: "GET"}
	assert.NoError(t, g.Authorize(route, "", nil))
}

func TestAuthorizeRejectsUnauthenticatedOnPrivateRoute(t *testing.T) {
	g := NewGate(nil)
	route := RouteInfo{Method: "GET", AllowedRoles: []string{"admin"}}
	err := g.Authorize(route, "", nil)
	apiErr := apierrors.As(err)
	if assert.NotNil(t, apiErr) {
		assert.Equal(t, apierrors.Unauthenticated, apiErr.Kind)
	}
}

func TestAuthorizeRejectsRoleNotInAllowedList(t *testing.T) {
	g := NewGate(nil)
	route := RouteInfo{Method: "GET", AllowedRoles: []string{"admin"}}
	err := g.Authorize(route, "alice", []string{"viewer"})
	apiErr := apierrors.As(err)
	if assert.NotNil(t, apiErr) {
		assert.Equal(t, apierrors.Forbidden, apiErr.Kind)
	}
}

func TestAuthorizeChecksFineGrainedRolesAndActions(t *testing.T) {
	lookup := staticLookup{"Users": {"editor": {"read", "update"}}}
	g := NewGate(lookup)
	route := RouteInfo{
		Method:       "DELETE",
		ModelName:    "Users",
		AllowedRoles: []string{"editor"},
	}
	err := g.Authorize(route, "alice", []string{"editor"})
	apiErr := apierrors.As(err)
	if assert.NotNil(t, apiErr) {
		assert.Equal(t, apierrors.Forbidden, apiErr.Kind, "editor lacks delete permission")
	}
}

func TestAuthorizeGrantsWhenRoleHasDeclaredAction(t *testing.T) {
	lookup := staticLookup{"Users": {"editor": {"read", "update"}}}
	g := NewGate(lookup)
	route := RouteInfo{
		Method:       "GET",
		ModelName:    "Users",
		AllowedRoles: []string{"editor"},
		RBACAction:   "read",
	}
	err := g.Authorize(route, "alice", []string{"editor"})
	assert.NoError(t, err)
}

func TestAuthorizeInfersReadForWildcardTerminalGet(t *testing.T) {
	route := RouteInfo{Method: "GET", TerminalWildcard: true}
	assert.Equal(t, "read", resolveAction(route))
}

func TestAuthorizeInfersListForNonWildcardTerminalGet(t *testing.T) {
	route := RouteInfo{Method: "GET", TerminalWildcard: false}
	assert.Equal(t, "list", resolveAction(route))
}

func TestAuthorizeDenialContextUsesRequiredActionKey(t *testing.T) {
	lookup := staticLookup{"Users": {"editor": {"read"}}}
	g := NewGate(lookup)
	route := RouteInfo{
		Method:       "DELETE",
		ModelName:    "Users",
		AllowedRoles: []string{"editor"},
	}
	err := g.Authorize(route, "alice", []string{"editor"})
	apiErr := apierrors.As(err)
	if assert.NotNil(t, apiErr) {
		assert.Equal(t, "delete", apiErr.Context["required_action"])
	}
}

func TestAuthorizeWildcardActionGrantsAnyAction(t *testing.T) {
	lookup := staticLookup{"Users": {"admin": {"*"}}}
	g := NewGate(lookup)
	route := RouteInfo{
		Method:       "DELETE",
		ModelName:    "Users",
		AllowedRoles: []string{"admin"},
	}
	assert.NoError(t, g.Authorize(route, "alice", []string{"admin"}))
}
