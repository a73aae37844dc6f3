// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchSchema = `{
	"type": "object",
	"required": ["query"],
	"properties": {
		"query": {"type": "string", "maxLength": 16},
		"limit": {"type": "integer", "minimum": 1},
		"paging": {
			"type": "object",
			"required": ["size"],
			"properties": {"size": {"type": "integer"}}
		}
	}
}`

func TestSchema_ValidateJSON(t *testing.T) {
	schema := MustCompileSchema(searchSchema)

	tests := []struct {
		name        string
		input       string
		valid       bool
		errorFields []string
	}{
		{"valid", `{"query": "john smith", "limit": 10}`, true, nil},
		{"missing required", `{"limit": 10}`, false, []string{"query"}},
		{"wrong type", `{"query": 42}`, false, []string{"query"}},
		{"too long", `{"query": "a very long query string"}`, false, []string{"query"}},
		{"below minimum", `{"query": "x", "limit": 0}`, false, []string{"limit"}},
		{"nested required", `{"query": "x", "paging": {}}`, false, []string{"paging.size"}},
		{"malformed json", `{"query":`, false, []string{"(root)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := schema.ValidateJSON(tt.input)
			assert.Equal(t, tt.valid, result.Valid)
			for _, f := range tt.errorFields {
				assert.True(t, result.HasErrors(f), "expected error on %s, got %v", f, result.GetErrorMessages())
			}
		})
	}
}

func TestSchema_ValidateDecoded(t *testing.T) {
	schema, err := CompileSchemaMap(map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"candidates"},
		"properties": map[string]interface{}{
			"candidates": map[string]interface{}{"type": "array"},
		},
	})
	require.NoError(t, err)

	assert.True(t, schema.Validate(map[string]interface{}{"candidates": []interface{}{}}).Valid)

	result := schema.Validate(map[string]interface{}{"candidates": "nope"})
	assert.False(t, result.Valid)
	require.Len(t, result.GetErrorsForField("candidates"), 1)
	assert.Equal(t, "INVALID_TYPE", result.Errors[0].Code)
}

func TestCompileSchema_Invalid(t *testing.T) {
	_, err := CompileSchema(`{"type": 12}`)
	assert.Error(t, err)
}

func TestValidateActivityNaming(t *testing.T) {
	assert.NoError(t, ValidateActivityNaming("search.request.parse"))
	assert.Error(t, ValidateActivityNaming("rank-candidates"))
	assert.Error(t, ValidateActivityNaming("Search.Request.Parse"))
}

func TestValidationResult_Helpers(t *testing.T) {
	vr := &ValidationResult{Errors: []ValidationError{
		{Field: "paging.size", Message: "is required"},
		{Field: "query", Message: "too long"},
	}}

	assert.Equal(t, []string{"paging.size: is required", "query: too long"}, vr.GetErrorMessages())
	assert.Len(t, vr.GetErrorsForField("paging"), 1)
	assert.False(t, vr.HasErrors("limit"))
}
