package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// config holds the client settings, loaded from a YAML file with
// STOREFRONT_* environment variables taking precedence. All fields are
// optional; a missing config file means defaults plus env.
type config struct {
	// ServerURL is the base URL of the storefront server.
	ServerURL string `yaml:"server_url"`

	// User is the signed-in identity scoping the local collections.
	// Empty means Guest. Updated in place by a successful login.
	User string `yaml:"user"`

	// CSRFToken is attached to every remote call; guest endpoints
	// accept an empty one.
	CSRFToken string `yaml:"csrf_token"`

	// APIToken, when set, authenticates calls via a bearer header and
	// doubles as the identity source if User is empty.
	APIToken string `yaml:"api_token"`

	// DBPath is where the local store database lives.
	DBPath string `yaml:"db_path"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "storefront", "config.yaml")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func loadConfig(path string) (config, error) {
	var cfg config

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fine, env and defaults below
	default:
		return config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.ServerURL = getEnv("STOREFRONT_SERVER_URL", cfg.ServerURL)
	cfg.User = getEnv("STOREFRONT_USER", cfg.User)
	cfg.CSRFToken = getEnv("STOREFRONT_CSRF_TOKEN", cfg.CSRFToken)
	cfg.APIToken = getEnv("STOREFRONT_API_TOKEN", cfg.APIToken)
	cfg.DBPath = getEnv("STOREFRONT_DB_PATH", cfg.DBPath)

	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:8000"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(defaultConfigPath()), "store.db")
	}
	return cfg, nil
}

// saveUser writes the signed-in identity back to the config file, so
// later invocations keep the user's scope the way a browser session
// would. Other fields are preserved.
func saveUser(path, user string) error {
	var cfg config
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.User = user

	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
