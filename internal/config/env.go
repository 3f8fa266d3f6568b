package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Env holds the environment overrides. Empty fields are unset.
type Env struct {
	Token      string `envconfig:"GITHUB_TOKEN"`
	User       string `envconfig:"GITHUB_USER"`
	BaseURL    string `envconfig:"GITHUB_API_URL"`
	AppID      string `envconfig:"GITHUB_APP_ID"`
	AppKeyPath string `envconfig:"GITHUB_APP_PRIVATE_KEY_PATH"`
	Profile    string `envconfig:"OCTOGLUE_PROFILE"`
	Backend    string `envconfig:"OCTOGLUE_BACKEND"`
	Output     string `envconfig:"OCTOGLUE_OUTPUT"`
}

// ReadEnv parses the process environment.
func ReadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("invalid environment: %w", err)
	}
	return env, nil
}

// DotEnvPaths returns the .env files LoadDotEnv reads, highest priority
// first.
func DotEnvPaths() []string {
	paths := []string{".env"}
	if dir, err := userConfigDir(); err == nil && dir != "" {
		paths = append(paths, filepath.Join(dir, serviceName, ".env"))
	}
	return paths
}

// LoadDotEnv loads the files from DotEnvPaths that exist. Variables that
// are already set are never overwritten, so the first file to define a
// key wins over later ones and explicit exports win over both.
func LoadDotEnv() error {
	var existing []string
	for _, path := range DotEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}
