package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"extensions": [".yaml"],
		"min_documents": 3,
		"parallelism": 2,
		"log_level": "debug",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, []string{".yaml"}, cfg.Extensions)
	assert.Equal(t, 3, cfg.MinDocuments)
	assert.Equal(t, 2, cfg.Parallelism)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "zero config", cfg: Config{}},
		{name: "valid config", cfg: Config{Extensions: []string{".yaml"}, MinDocuments: 2, Parallelism: 8, LogLevel: "warn", LogFormat: "json"}},
		{name: "extension without dot", cfg: Config{Extensions: []string{"yaml"}}, wantErr: "Extensions"},
		{name: "negative min documents", cfg: Config{MinDocuments: -1}, wantErr: "MinDocuments"},
		{name: "parallelism too high", cfg: Config{Parallelism: 65}, wantErr: "Parallelism"},
		{name: "unknown log level", cfg: Config{LogLevel: "loud"}, wantErr: "LogLevel"},
		{name: "unknown log format", cfg: Config{LogFormat: "xml"}, wantErr: "LogFormat"},
		{name: "missing schema file", cfg: Config{Schema: "/nonexistent/schema.json"}, wantErr: "schema file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{MinDocuments: 5}
	err := cfg.ApplyEnv(lookupFrom(map[string]string{
		"SURVEY_TOOL_EXTENSIONS":    ".yaml, .yml ,",
		"SURVEY_TOOL_MIN_DOCUMENTS": "3",
		"SURVEY_TOOL_LOG_LEVEL":     "DEBUG",
		"SURVEY_TOOL_LOG_FORMAT":    "",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{".yaml", ".yml"}, cfg.Extensions)
	assert.Equal(t, 3, cfg.MinDocuments)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Empty(t, cfg.LogFormat)
}

func TestApplyEnv_InvalidInteger(t *testing.T) {
	cfg := &Config{}
	err := cfg.ApplyEnv(lookupFrom(map[string]string{"SURVEY_TOOL_PARALLELISM": "many"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SURVEY_TOOL_PARALLELISM must be an integer")
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		MinDocuments: 3,
		LogLevel:     "debug",
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, 3, merged.MinDocuments)
	assert.Equal(t, "debug", merged.LogLevel)

	// Default values should fill in empty fields
	assert.Equal(t, []string{".yaml", ".yml"}, merged.Extensions)
	assert.Equal(t, 4, merged.Parallelism)
	assert.Equal(t, 21, merged.MinJavaVersion)
	assert.Equal(t, "console", merged.LogFormat)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{LogLevel: "warn"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "warn", merged.LogLevel)
	assert.Empty(t, merged.Extensions)
}

func TestLoad_FileThenEnv(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"min_documents": 3, "log_format": "json"}`), 0644))
	t.Setenv("SURVEY_TOOL_MIN_DOCUMENTS", "4")

	cfg, err := Load(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.MinDocuments)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{".yaml", ".yml"}, cfg.Extensions)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults().MinDocuments, cfg.MinDocuments)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("SURVEY_TOOL_LOG_LEVEL", "loud")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogLevel")
}
