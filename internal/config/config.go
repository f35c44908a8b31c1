package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	GeneratorHTTP   = "http"
	GeneratorOpenAI = "openai"

	DefaultBackendURL = "http://localhost:8000"
	DefaultModel      = "gpt-4o-mini"
	DefaultProfile    = "default"
)

// Profile selects where questions are sent
type Profile struct {
	Generator      string `json:"generator"`
	BackendURL     string `json:"backend_url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
	// Fields below are only used by the openai generator
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model,omitempty"`
	Schema  string `json:"schema,omitempty"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	currentProfile *Profile
}

// Overrides are values taken from flags or the environment; empty fields are ignored
type Overrides struct {
	Profile    string
	BackendURL string
}

func DefaultProfileValues() Profile {
	return Profile{
		Generator:  GeneratorHTTP,
		BackendURL: DefaultBackendURL,
	}
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load existing config or create default
	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

// ApplyOverrides switches profile and patches the current profile in memory only
func (c *Config) ApplyOverrides(o Overrides) error {
	if name := strings.TrimSpace(o.Profile); name != "" {
		if _, exists := c.Profiles[name]; !exists {
			return fmt.Errorf("profile '%s' does not exist", name)
		}
		c.ActiveProfile = name
		if err := c.setCurrentProfile(); err != nil {
			return err
		}
	}
	if url := strings.TrimSpace(o.BackendURL); url != "" && c.currentProfile != nil {
		c.currentProfile.BackendURL = url
	}
	return nil
}

func (c *Config) IsValid() bool {
	if c.currentProfile == nil {
		return false
	}
	switch c.GetGenerator() {
	case GeneratorHTTP:
		return c.GetBackendURL() != ""
	case GeneratorOpenAI:
		return c.currentProfile.APIKey != ""
	default:
		return false
	}
}

// Current returns a copy of the resolved active profile
func (c *Config) Current() Profile {
	if c.currentProfile == nil {
		return DefaultProfileValues()
	}
	return *c.currentProfile
}

func (c *Config) GetGenerator() string {
	if c.currentProfile == nil || c.currentProfile.Generator == "" {
		return GeneratorHTTP
	}
	return c.currentProfile.Generator
}

func (c *Config) GetBackendURL() string {
	if c.currentProfile == nil || c.currentProfile.BackendURL == "" {
		return DefaultBackendURL
	}
	return c.currentProfile.BackendURL
}

func (c *Config) GetTimeout() time.Duration {
	if c.currentProfile == nil || c.currentProfile.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.currentProfile.TimeoutSeconds) * time.Second
}

func (c *Config) GetModel() string {
	if c.currentProfile == nil || c.currentProfile.Model == "" {
		return DefaultModel
	}
	return c.currentProfile.Model
}

// Dir returns the directory holding config.json and logs
func Dir() (string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

func getConfigPath() (string, error) {
	var configDir string

	// Use RORISQL_HOME if set, otherwise use user's home directory
	if home := os.Getenv("RORISQL_HOME"); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".rorisql", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			DefaultProfile: DefaultProfileValues(),
		},
		ActiveProfile: DefaultProfile,
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to the first profile in name order so the choice is stable
		names := c.ProfileNames()
		c.ActiveProfile = names[0]
		profile = c.Profiles[names[0]]
	}

	c.currentProfile = &profile
	return nil
}
