package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["person"],
	"properties": {
		"person": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"}
			}
		}
	}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON(t *testing.T) {
	schemaPath := writeFile(t, "person.schema.json", personSchema)

	tests := []struct {
		name      string
		document  string
		wantError bool
	}{
		{"valid", `{"person": {"name": "Ada"}}`, false},
		{"missing field", `{"person": {}}`, true},
		{"wrong type", `{"person": {"name": 42}}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(schemaPath, writeFile(t, "doc.json", tt.document))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %T: %v", err, err)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateJSON_MissingFiles(t *testing.T) {
	schemaPath := writeFile(t, "person.schema.json", personSchema)
	docPath := writeFile(t, "doc.json", `{}`)

	err := ValidateJSON(filepath.Join(t.TempDir(), "nonexistent.schema.json"), docPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")

	err = ValidateJSON(schemaPath, filepath.Join(t.TempDir(), "nonexistent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidateJSON_MalformedDocument(t *testing.T) {
	schemaPath := writeFile(t, "person.schema.json", personSchema)

	err := ValidateJSON(schemaPath, writeFile(t, "bad.json", "{ invalid json }"))

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateBytes(t *testing.T) {
	schemaPath := writeFile(t, "person.schema.json", personSchema)

	assert.NoError(t, ValidateBytes(schemaPath, []byte(`{"person": {"name": "Ada"}}`)))

	err := ValidateBytes(schemaPath, []byte(`{"person": {}}`))
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "person", validationErr.Errors[0].Field)
}

func TestValidateJSONString(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"person": {"name": "Ada"}}`))

	err := ValidateJSONString(personSchema, `{"age": 30}`)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "(string schema)", loadErr.Path)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "sections.0.label", Message: "String length must be greater than or equal to 1"},
			{Field: "(root)", Message: "sections is required"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. sections.0.label")
	assert.Contains(t, msg, "2. (root): sections is required")
}

func TestResolveSchemaPath(t *testing.T) {
	assert.NotEmpty(t, ResolveSchemaPath(TailorRequestSchema))
	assert.NotEmpty(t, ResolveSchemaPath(CoverLetterSchema))
	assert.Empty(t, ResolveSchemaPath("schemas/does_not_exist.schema.json"))
}

func TestTailorRequestSchema(t *testing.T) {
	schemaPath := ResolveSchemaPath(TailorRequestSchema)
	require.NotEmpty(t, schemaPath)

	tests := []struct {
		name      string
		document  string
		wantError bool
	}{
		{"valid", `{"sections":[{"label":"Brandl Nutrition","bullets":[{"original_text":"a","tailored_text":"b"}]}],"skills":"Go"}`, false},
		{"skills optional", `{"sections":[]}`, false},
		{"missing sections", `{"skills":"Go"}`, true},
		{"empty tailored text", `{"sections":[{"label":"x","bullets":[{"original_text":"a","tailored_text":""}]}]}`, true},
		{"unknown field", `{"sections":[],"extra":true}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBytes(schemaPath, []byte(tt.document))
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
