package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravitycar/api-core/internal/reqparse"
)

func TestSearchValidatorDefaultsToModelSearchableFields(t *testing.T) {
	v := NewSearchValidator(nil)
	result := v.Validate(userModel(), reqparse.Search{Term: "acme", Operator: reqparse.SearchContains})
	assert.Contains(t, result.Fields, "email")
	assert.NotContains(t, result.Fields, "password")
}

func TestSearchValidatorDropsRequestedNonSearchableField(t *testing.T) {
	v := NewSearchValidator(nil)
	result := v.Validate(userModel(), reqparse.Search{Term: "acme", Fields: []string{"password"}, Operator: reqparse.SearchContains})
	assert.Empty(t, result.Term, "search with no surviving field must be cleared entirely")
}

func TestSearchValidatorEmptyTermClearsSearch(t *testing.T) {
	v := NewSearchValidator(nil)
	result := v.Validate(userModel(), reqparse.Search{Term: "   ", Fields: []string{"email"}})
	assert.Equal(t, reqparse.Search{}, result)
}

func TestParseSearchTermCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "hello world", parseSearchTerm("  hello   world  "))
}
