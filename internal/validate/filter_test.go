package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravitycar/api-core/internal/fieldtypes"
	"github.com/gravitycar/api-core/internal/metadata"
	"github.com/gravitycar/api-core/internal/reqparse"
)

func userModel() metadata.Model {
	return metadata.Model{
		Name: "Users",
		Fields: []metadata.FieldDescriptor{
			{Name: "id", Type: fieldtypes.ID, IsDBField: true},
			{Name: "email", Type: fieldtypes.Email, IsDBField: true},
			{Name: "password", Type: fieldtypes.Password, IsDBField: true},
			{Name: "status", Type: fieldtypes.Enum, IsDBField: true, Options: []string{"active", "inactive"}},
			{Name: "display_name", Type: fieldtypes.Text, IsDBField: false},
		},
	}
}

func TestFilterValidatorDropsPasswordField(t *testing.T) {
	v := NewFilterValidator(nil)
	filters := []reqparse.Filter{{Field: "password", Operator: "equals", Value: "x"}}
	kept := v.Validate(userModel(), filters)
	assert.Empty(t, kept, "password filters must never survive validation")
}

func TestFilterValidatorDropsNonPersistentField(t *testing.T) {
	v := NewFilterValidator(nil)
	filters := []reqparse.Filter{{Field: "display_name", Operator: "equals", Value: "x"}}
	kept := v.Validate(userModel(), filters)
	assert.Empty(t, kept)
}

func TestFilterValidatorDropsUnsupportedOperator(t *testing.T) {
	v := NewFilterValidator(nil)
	filters := []reqparse.Filter{{Field: "email", Operator: "greaterThan", Value: "x"}}
	kept := v.Validate(userModel(), filters)
	assert.Empty(t, kept)
}

func TestFilterValidatorKeepsValidFilterAndSetsFieldType(t *testing.T) {
	v := NewFilterValidator(nil)
	filters := []reqparse.Filter{{Field: "email", Operator: "contains", Value: "acme"}}
	kept := v.Validate(userModel(), filters)
	if assert.Len(t, kept, 1) {
		assert.Equal(t, string(fieldtypes.Email), kept[0].FieldType)
	}
}

func TestFilterValidatorRejectsValueOutsideEnumOptions(t *testing.T) {
	v := NewFilterValidator(nil)
	filters := []reqparse.Filter{{Field: "status", Operator: "equals", Value: "deleted"}}
	kept := v.Validate(userModel(), filters)
	assert.Empty(t, kept)
}

func TestFilterValidatorAcceptsEnumValueWithinOptions(t *testing.T) {
	v := NewFilterValidator(nil)
	filters := []reqparse.Filter{{Field: "status", Operator: "equals", Value: "active"}}
	kept := v.Validate(userModel(), filters)
	assert.Len(t, kept, 1)
}

func TestSupportedFiltersExcludesPasswordAndNonPersistent(t *testing.T) {
	catalog := SupportedFilters(userModel())
	for _, sf := range catalog {
		assert.NotEqual(t, "password", sf.Field)
		assert.NotEqual(t, "display_name", sf.Field)
	}
}
