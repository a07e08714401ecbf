package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "name": "relay",
  "tags": ["http", "client"],
  "owner": {"name": "wes", "id": 7},
  "users": [
    {"name": "alice", "active": true},
    {"name": "bob", "active": false}
  ],
  "missing": null
}`

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		path string
		want string
	}{
		{"top-level field", "$.name", "relay"},
		{"nested field", "$.owner.name", "wes"},
		{"array index", "$.tags[0]", "http"},
		{"array of objects", "$.users[1].name", "bob"},
		{"bracket notation single quotes", "$['owner']['id']", "7"},
		{"bracket notation double quotes", `$["owner"]["name"]`, "wes"},
		{"boolean value", "$.users[0].active", "true"},
		{"null value", "$.missing", "null"},
		{"no dollar prefix", "owner.name", "wes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Extract(sample, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtract_WholeDocument(t *testing.T) {
	got, err := Extract(`{"a":1}`, "$")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, got)
}

func TestExtract_Errors(t *testing.T) {
	_, err := Extract("", "$.name")
	assert.EqualError(t, err, "empty JSON string")

	_, err = Extract(sample, "")
	assert.EqualError(t, err, "empty JSONPath expression")

	_, err = Extract(sample, "$.nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path not found")
}

func TestToGjsonPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"$.users[0].name", "users.0.name"},
		{"$['a']['b']", "a.b"},
		{"$", "@this"},
		{"plain.path", "plain.path"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, toGjsonPath(tc.in), "input %q", tc.in)
	}
}
