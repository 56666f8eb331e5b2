package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioSchema_IsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(PortfolioSchema()), &v))
	assert.Equal(t, "object", v["type"])
}

func TestValidatePortfolio_Valid(t *testing.T) {
	documents := []string{
		`{}`,
		`{"name":"Jo","bio":"Hi","skills":"a, b","template":"minimal"}`,
		`{"sections":["about","experience"],"customizations":{"primaryColor":"#007bff","fontFamily":"Arial"}}`,
		`{"sections":[],"customizations":{}}`,
		`{"sections":null,"customizations":null}`,
		`{"name":"Jo","unknownField":42}`,
		`{"name":null,"bio":"Hi","customizations":{"primaryColor":null}}`,
	}

	for _, doc := range documents {
		t.Run(doc, func(t *testing.T) {
			assert.NoError(t, ValidatePortfolio(doc))
		})
	}
}

func TestValidatePortfolio_WrongTypes(t *testing.T) {
	tests := []struct {
		name     string
		document string
		field    string
	}{
		{"name is a number", `{"name":42}`, "name"},
		{"sections is a string", `{"sections":"about"}`, "sections"},
		{"section entry is a number", `{"sections":["about",3]}`, "sections.1"},
		{"customizations is a list", `{"customizations":["#fff"]}`, "customizations"},
		{"color is a number", `{"customizations":{"primaryColor":255}}`, "customizations.primaryColor"},
		{"root is an array", `[]`, "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePortfolio(tt.document)
			require.Error(t, err)

			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type")
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.field, validationErr.Errors[0].Field)
		})
	}
}

func TestValidatePortfolio_MalformedJSON(t *testing.T) {
	err := ValidatePortfolio(`{"name":`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidatePortfolioFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"name":"Jo"}`), 0644))
	require.NoError(t, os.WriteFile(bad, []byte(`{"name":["Jo"]}`), 0644))

	assert.NoError(t, ValidatePortfolioFile(good))
	assert.Error(t, ValidatePortfolioFile(bad))

	err := ValidatePortfolioFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name":"Jo"}`))

	err := ValidateJSONString(schema, `{}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Len(t, validationErr.Errors, 1)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "Invalid type. Expected: string, given: integer"},
			{Field: "sections", Message: "Invalid type"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed:")
	assert.Contains(t, msg, "1. name: Invalid type. Expected: string, given: integer")
	assert.Contains(t, msg, "2. sections: Invalid type")
}
