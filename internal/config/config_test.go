package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("RORISQL_HOME", home)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultProfile, cfg.ActiveProfile)
	assert.Equal(t, GeneratorHTTP, cfg.GetGenerator())
	assert.Equal(t, DefaultBackendURL, cfg.GetBackendURL())
	assert.Equal(t, time.Duration(0), cfg.GetTimeout())
	assert.True(t, cfg.IsValid())

	info, err := os.Stat(filepath.Join(home, ".rorisql", "config.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("RORISQL_HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.NoError(t, cfg.AddProfile("staging", Profile{
		Generator:      GeneratorHTTP,
		BackendURL:     "https://staging.example.com",
		TimeoutSeconds: 15,
	}))
	require.NoError(t, cfg.SwitchProfile("staging"))
	require.NoError(t, cfg.Save())

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "staging", loaded.ActiveProfile)
	assert.Equal(t, "https://staging.example.com", loaded.GetBackendURL())
	assert.Equal(t, 15*time.Second, loaded.GetTimeout())
}

func TestApplyOverrides(t *testing.T) {
	cfg := &Config{
		Profiles: map[string]Profile{
			"default": DefaultProfileValues(),
			"llm":     {Generator: GeneratorOpenAI, APIKey: "sk-1"},
		},
		ActiveProfile: "default",
	}
	require.NoError(t, cfg.setCurrentProfile())

	require.NoError(t, cfg.ApplyOverrides(Overrides{BackendURL: "http://10.0.0.1:9000"}))
	assert.Equal(t, "http://10.0.0.1:9000", cfg.GetBackendURL())
	// the stored profile is untouched
	assert.Equal(t, DefaultBackendURL, cfg.Profiles["default"].BackendURL)

	require.NoError(t, cfg.ApplyOverrides(Overrides{Profile: "llm"}))
	assert.Equal(t, GeneratorOpenAI, cfg.GetGenerator())
	assert.Equal(t, DefaultModel, cfg.GetModel())
	assert.True(t, cfg.IsValid())

	assert.Error(t, cfg.ApplyOverrides(Overrides{Profile: "missing"}))
}

func TestDeleteProfile(t *testing.T) {
	cfg := &Config{
		Profiles: map[string]Profile{
			"a": DefaultProfileValues(),
			"b": DefaultProfileValues(),
		},
		ActiveProfile: "b",
	}
	require.NoError(t, cfg.setCurrentProfile())

	require.NoError(t, cfg.DeleteProfile("b"))
	assert.Equal(t, "a", cfg.ActiveProfile)

	require.NoError(t, cfg.DeleteProfile("a"))
	assert.Equal(t, DefaultProfile, cfg.ActiveProfile)
	assert.Contains(t, cfg.Profiles, DefaultProfile)

	assert.Error(t, cfg.DeleteProfile("nope"))
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, ValidateProfile(Profile{}))
	assert.NoError(t, ValidateProfile(Profile{Generator: GeneratorOpenAI, APIKey: "k"}))
	assert.Error(t, ValidateProfile(Profile{Generator: GeneratorOpenAI}))
	assert.Error(t, ValidateProfile(Profile{Generator: "grpc"}))
}

func TestInvalidWhenOpenAIKeyMissing(t *testing.T) {
	cfg := &Config{
		Profiles:      map[string]Profile{"llm": {Generator: GeneratorOpenAI}},
		ActiveProfile: "llm",
	}
	require.NoError(t, cfg.setCurrentProfile())
	assert.False(t, cfg.IsValid())
}
