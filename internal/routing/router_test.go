package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitycar/api-core/internal/apierrors"
	"github.com/gravitycar/api-core/internal/metadata"
	"github.com/gravitycar/api-core/internal/rbac"
)

func buildTestRouter(t *testing.T, models *metadata.Engine, gate *rbac.Gate) (*Router, *Holder) {
	t.Helper()
	builder := NewBuilder().
		WithModel(metadata.Model{
			Name: "Items",
			Fields: []metadata.FieldDescriptor{
				{Name: "id", Type: "ID", IsDBField: true},
				{Name: "name", Type: "Text", IsDBField: true},
			},
			RolesAndActions: map[string][]string{"viewer": {"list", "read"}},
			APIRoutes: []metadata.RouteDeclaration{
				{Method: "GET", Path: "/Items", APIClass: "Items", APIMethod: "list", ParameterNames: []string{""}},
				{Method: "GET", Path: "/Items/admin", APIClass: "Items", APIMethod: "adminList", ParameterNames: []string{"", ""}, AllowedRoles: []string{"admin"}},
			},
		})

	builder.Bind("Items", "list", func(r *Request) (any, error) {
		return []any{map[string]any{"id": "1", "name": "widget"}}, nil
	})
	builder.Bind("Items", "adminList", func(r *Request) (any, error) {
		return []any{}, nil
	})

	reg, err := builder.Build()
	require.NoError(t, err)
	holder := NewHolder(reg)
	rt := NewRouter(holder, models, gate, nil, false)
	return rt, holder
}

func newTestRequest(ctx context.Context, route Route, raw map[string]string) *Request {
	return &Request{Ctx: ctx, Route: route, PathParams: map[string]string{}, Raw: raw}
}

func TestRouterHandlesPublicRouteEndToEnd(t *testing.T) {
	models := metadata.NewEngine(metadata.Model{Name: "Items", RolesAndActions: map[string][]string{"viewer": {"list"}}})
	gate := rbac.NewGate(models)
	rt, holder := buildTestRouter(t, models, gate)

	route, ok := holder.Load().FindBest("GET", "/Items")
	require.True(t, ok)

	out := rt.Handle(newTestRequest(context.Background(), route, map[string]string{}))
	assert.Equal(t, 200, out.Status)
	assert.Equal(t, true, out.Body["success"])
}

func TestRouterRejectsForbiddenRoute(t *testing.T) {
	models := metadata.NewEngine(metadata.Model{Name: "Items", RolesAndActions: map[string][]string{"viewer": {"list"}}})
	gate := rbac.NewGate(models)
	rt, holder := buildTestRouter(t, models, gate)

	route, ok := holder.Load().FindBest("GET", "/Items/admin")
	require.True(t, ok)

	req := newTestRequest(context.Background(), route, map[string]string{})
	req.Subject = "alice"
	req.Roles = []string{"viewer"}

	out := rt.Handle(req)
	assert.Equal(t, 403, out.Status)
	assert.Equal(t, false, out.Body["success"])
}

func TestRouterReturnsRequestCanceledOnCanceledContext(t *testing.T) {
	models := metadata.NewEngine(metadata.Model{Name: "Items"})
	gate := rbac.NewGate(models)
	rt, holder := buildTestRouter(t, models, gate)

	route, ok := holder.Load().FindBest("GET", "/Items")
	require.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := rt.Handle(newTestRequest(ctx, route, map[string]string{}))
	assert.Equal(t, apierrors.StatusFor(apierrors.RequestCanceled), out.Status)
}

func TestRouterHonorsExplicitResponseFormatOverride(t *testing.T) {
	models := metadata.NewEngine(metadata.Model{Name: "Items", RolesAndActions: map[string][]string{"viewer": {"list"}}})
	gate := rbac.NewGate(models)
	rt, holder := buildTestRouter(t, models, gate)

	route, ok := holder.Load().FindBest("GET", "/Items")
	require.True(t, ok)

	out := rt.Handle(newTestRequest(context.Background(), route, map[string]string{"responseFormat": "swr"}))
	assert.Equal(t, 200, out.Status)
	assert.Contains(t, out.Body, "cache_key")
}

func TestRouterFormatParamAliasesResponseFormat(t *testing.T) {
	models := metadata.NewEngine(metadata.Model{Name: "Items", RolesAndActions: map[string][]string{"viewer": {"list"}}})
	gate := rbac.NewGate(models)
	rt, holder := buildTestRouter(t, models, gate)

	route, ok := holder.Load().FindBest("GET", "/Items")
	require.True(t, ok)

	out := rt.Handle(newTestRequest(context.Background(), route, map[string]string{"format": "cursor"}))
	assert.Equal(t, 200, out.Status)
	assert.Contains(t, out.Body, "pageInfo")
}

func TestRouterRecoversHandlerPanicAsHandlerError(t *testing.T) {
	builder := NewBuilder()
	builder.Bind("Panicky", "boom", func(r *Request) (any, error) {
		panic("kaboom")
	})
	_ = builder.WithController(panickyController{})
	reg, err := builder.Build()
	require.NoError(t, err)
	holder := NewHolder(reg)

	models := metadata.NewEngine()
	gate := rbac.NewGate(models)
	rt := NewRouter(holder, models, gate, nil, true)

	route, ok := holder.Load().FindBest("GET", "/Panic")
	require.True(t, ok)

	out := rt.Handle(newTestRequest(context.Background(), route, map[string]string{}))
	assert.Equal(t, 500, out.Status)
}

type panickyController struct{}

func (panickyController) ControllerName() string { return "Panicky" }
func (panickyController) RegisterRoutes() []metadata.RouteDeclaration {
	return []metadata.RouteDeclaration{
		{Method: "GET", Path: "/Panic", APIClass: "Panicky", APIMethod: "boom", ParameterNames: []string{""}},
	}
}
