package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	GitHubToken   string
	GitHubBaseURL string

	OpenAIAPIKey string
	LLMBaseURL   string
	LLMModel     string

	// PushRepo is the owner/name identifier delivered by the push event
	// (GITHUB_REPOSITORY). Empty outside push-triggered runs.
	PushRepo     string
	UpdateOnPush bool
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		GitHubToken:   os.Getenv("GH_TOKEN"),
		GitHubBaseURL: os.Getenv("GITHUB_BASE_URL"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		LLMBaseURL:   os.Getenv("LLM_BASE_URL"),
		LLMModel:     os.Getenv("LLM_MODEL"),

		PushRepo:     os.Getenv("GITHUB_REPOSITORY"),
		UpdateOnPush: isTruthy(os.Getenv("UPDATE_ON_PUSH")),
	}

	if cfg.GitHubBaseURL == "" {
		cfg.GitHubBaseURL = "https://api.github.com"
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = "gpt-4o-mini"
	}
	cfg.GitHubBaseURL = strings.TrimSuffix(cfg.GitHubBaseURL, "/")
	cfg.LLMBaseURL = strings.TrimSuffix(cfg.LLMBaseURL, "/")

	return cfg
}

// Validate reports missing credentials. Both tokens are required before any
// network call is made.
func (c *Config) Validate() error {
	if c.GitHubToken == "" || c.OpenAIAPIKey == "" {
		return fmt.Errorf("missing GH_TOKEN or OPENAI_API_KEY")
	}
	return nil
}

// SplitRepo splits an owner/name identifier at the first slash.
func SplitRepo(full string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(full, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("invalid repository identifier %q (want owner/name)", full)
	}
	return owner, name, nil
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		return true
	}
	return false
}
