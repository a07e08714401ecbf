package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userSchema = `{
  "type": "object",
  "required": ["name", "age"],
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer", "minimum": 0}
  }
}`

func TestValidate(t *testing.T) {
	valid, err := Validate(`{"name": "alice", "age": 30}`, userSchema)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = Validate(`{"name": "alice"}`, userSchema)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestValidate_BadInputs(t *testing.T) {
	_, err := Validate(`{not json}`, userSchema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")

	_, err = Validate(`{}`, `{"type": 42}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schema")
}

func TestValidateWithErrors(t *testing.T) {
	valid, errs := ValidateWithErrors(`{"name": 1, "age": -5}`, userSchema)
	assert.False(t, valid)
	require.NotEmpty(t, errs)

	combined := errs.Error()
	assert.Contains(t, combined, "/name")
	assert.Contains(t, combined, "/age")
}

func TestValidateWithErrors_Valid(t *testing.T) {
	valid, errs := ValidateWithErrors(`{"name": "bob", "age": 1}`, userSchema)
	assert.True(t, valid)
	assert.Nil(t, errs)
}

func TestValidationErrors_Empty(t *testing.T) {
	assert.Equal(t, "", ValidationErrors{}.Error())
}
