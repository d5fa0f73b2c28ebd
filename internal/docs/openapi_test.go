package docs

import (
	"testing"

	"github.com/gravitycar/api-core/internal/fieldtypes"
	"github.com/gravitycar/api-core/internal/metadata"
)

func sampleModel() metadata.Model {
	return metadata.Model{
		Name:  "Users",
		Table: "users",
		Fields: []metadata.FieldDescriptor{
			{Name: "id", Type: fieldtypes.ID, IsDBField: true},
			{Name: "email", Type: fieldtypes.Email, IsDBField: true},
			{Name: "password", Type: fieldtypes.Password, IsDBField: true},
			{Name: "status", Type: fieldtypes.Enum, IsDBField: true, Options: []string{"active", "inactive"}},
		},
		APIRoutes: []metadata.RouteDeclaration{
			{Method: "GET", Path: "/Users", APIClass: "Users", APIMethod: "list", ParameterNames: []string{""}},
			{Method: "GET", Path: "/Users/?", APIClass: "Users", APIMethod: "read", ParameterNames: []string{"", "id"}},
			{Method: "POST", Path: "/Users", APIClass: "Users", APIMethod: "create", ParameterNames: []string{""}, AllowedRoles: []string{"admin"}},
		},
	}
}

func TestSchemaForModelExcludesPasswordField(t *testing.T) {
	schema := schemaForModel(sampleModel())
	props := schema["properties"].(map[string]any)
	if _, ok := props["password"]; ok {
		t.Fatal("expected password field to be excluded from schema")
	}
	if _, ok := props["email"]; !ok {
		t.Fatal("expected email field in schema")
	}
}

func TestSchemaForModelCapturesEnumOptions(t *testing.T) {
	schema := schemaForModel(sampleModel())
	props := schema["properties"].(map[string]any)
	status := props["status"].(map[string]any)
	enum, ok := status["enum"].([]any)
	if !ok || len(enum) != 2 {
		t.Fatalf("expected 2 enum options, got %#v", status["enum"])
	}
}

func TestPathsForModelSubstitutesWildcardWithParamName(t *testing.T) {
	paths := pathsForModel(sampleModel())
	if _, ok := paths["/Users/{id}"]; !ok {
		t.Fatalf("expected /Users/{id} path, got keys: %#v", keys(paths))
	}
}

func TestOperationForMarksNonPublicRouteAsSecured(t *testing.T) {
	model := sampleModel()
	op := operationFor(model, model.APIRoutes[2])
	if _, ok := op["security"]; !ok {
		t.Fatal("expected admin-only route to carry a security requirement")
	}
}

func TestOperationForLeavesPublicRouteUnsecured(t *testing.T) {
	model := sampleModel()
	op := operationFor(model, model.APIRoutes[0])
	if _, ok := op["security"]; ok {
		t.Fatal("expected public route to have no security requirement")
	}
}

func TestGenerateProducesADocumentPerRegisteredModel(t *testing.T) {
	engine := metadata.NewEngine(sampleModel())
	doc := Generate(Info{Title: "Test API", Version: "1.0"}, engine)

	components := doc["components"].(map[string]any)
	schemas := components["schemas"].(map[string]any)
	if _, ok := schemas["Users"]; !ok {
		t.Fatal("expected Users schema in generated document")
	}

	paths := doc["paths"].(map[string]any)
	if len(paths) == 0 {
		t.Fatal("expected at least one path in generated document")
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
