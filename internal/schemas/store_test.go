package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedSchema(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "survey.schema.json", s.Name())

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, s, again, "schema should be compiled once")
}

func TestLoad_PrecompilesConditions(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	for _, ptr := range []string{"", "/definitions/content/allOf/0", "/definitions/content/allOf/7"} {
		cond, ok := s.ifs[ptr]
		require.True(t, ok, "missing condition for %q", ptr)
		assert.NotNil(t, cond, "condition for %q should compile", ptr)
	}
}

func TestLoadFile_Valid(t *testing.T) {
	s, err := LoadFile(filepath.Join("testdata", "product.schema.json"))
	require.NoError(t, err)
	assert.Contains(t, s.Name(), "product.schema.json")
}

func TestLoadFile_NonExistent(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "nonexistent.schema.json"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "not readable")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadFile_InvalidSchema(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "invalid.schema.json"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "schema does not compile", loadErr.Message)
}

func TestCompile_MalformedJSON(t *testing.T) {
	_, err := Compile("broken", []byte("{ invalid json }"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "broken", loadErr.Path)
	assert.Equal(t, "schema is not valid JSON", loadErr.Message)
}

func TestCompile_NotAnObject(t *testing.T) {
	_, err := Compile("list", []byte(`["type"]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an object or a boolean")
}

func TestSchemaLoadError_Error(t *testing.T) {
	cause := errors.New("boom")
	err := &SchemaLoadError{Path: "a.json", Message: "bad", Cause: cause}
	assert.Equal(t, "failed to load schema a.json: bad: boom", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))

	err = &SchemaLoadError{Path: "a.json", Message: "bad"}
	assert.Equal(t, "failed to load schema a.json: bad", err.Error())
}

func TestResolveSchemaPath(t *testing.T) {
	got := ResolveSchemaPath(filepath.Join("testdata", "product.schema.json"))
	assert.NotEmpty(t, got)
	assert.True(t, filepath.IsAbs(got))

	assert.Empty(t, ResolveSchemaPath(filepath.Join("testdata", "missing.json")))
}
