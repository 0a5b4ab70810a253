package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2023-05-15", cfg.APIVersion)
	assert.Equal(t, "gpt-4o", cfg.Model)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TOOLMESH_BASE_URL", "https://example.openai.azure.com")
	t.Setenv("TOOLMESH_API_KEY", "secret")
	t.Setenv("TOOLMESH_API_VERSION", "2024-02-01")
	t.Setenv("TOOLMESH_MODEL", "gpt-4o-mini")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.openai.azure.com", cfg.BaseURL)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "2024-02-01", cfg.APIVersion)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
}

func TestValidate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
	assert.NoError(t, Config{APIKey: "secret"}.Validate())
}
