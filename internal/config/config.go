// Package config assembles server settings from an optional YAML file and
// the process environment. Environment variables win over file values.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the careerforge server.
type Config struct {
	Port         string
	DatabasePath string // SQLite file, used when DatabaseURL is empty
	DatabaseURL  string // postgres:// URL
	JWTSecret    string
	CookieSecure bool
	BcryptCost   int
	LogLevel     slog.Level
	LLM          LLMConfig
	GitHub       GitHubConfig
	Storage      StorageConfig
}

// LLMConfig controls the generative model client.
type LLMConfig struct {
	APIKey      string
	Model       string
	BaseURL     string // empty uses the SDK default
	Timeout     time.Duration
	MaxAttempts int
}

type GitHubConfig struct {
	APIURL string
	Token  string
}

// StorageConfig selects S3-compatible resume storage. An empty Bucket keeps
// resumes in the database.
type StorageConfig struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// Enabled reports whether an object store bucket is configured.
func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

const (
	defaultPort         = "8080"
	defaultDatabasePath = "careerforge.db"
	defaultBcryptCost   = 12
	defaultLLMTimeout   = 60 * time.Second
	defaultMaxAttempts  = 3
	defaultGitHubAPIURL = "https://api.github.com"
	minJWTSecretLength  = 32
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	Port         string `yaml:"port"`
	DatabasePath string `yaml:"database_path"`
	DatabaseURL  string `yaml:"database_url"`
	JWTSecret    string `yaml:"jwt_secret"`
	CookieSecure *bool  `yaml:"cookie_secure"`
	BcryptCost   int    `yaml:"bcrypt_cost"`
	LogLevel     string `yaml:"log_level"`
	LLM          struct {
		APIKey      string `yaml:"api_key"`
		Model       string `yaml:"model"`
		BaseURL     string `yaml:"base_url"`
		Timeout     string `yaml:"timeout"`
		MaxAttempts int    `yaml:"max_attempts"`
	} `yaml:"llm"`
	GitHub struct {
		APIURL string `yaml:"api_url"`
		Token  string `yaml:"token"`
	} `yaml:"github"`
	Storage struct {
		Bucket    string `yaml:"bucket"`
		Endpoint  string `yaml:"endpoint"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
	} `yaml:"storage"`
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	var raw rawConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		// Expand environment variables
		expanded := os.Expand(string(data), func(key string) string {
			v, _ := lookup(key)
			return v
		})

		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg := &Config{
		Port:         firstNonEmpty(raw.Port, defaultPort),
		DatabasePath: firstNonEmpty(raw.DatabasePath, defaultDatabasePath),
		DatabaseURL:  raw.DatabaseURL,
		JWTSecret:    raw.JWTSecret,
		CookieSecure: true,
		BcryptCost:   defaultBcryptCost,
		LogLevel:     slog.LevelInfo,
		LLM: LLMConfig{
			APIKey:      raw.LLM.APIKey,
			Model:       raw.LLM.Model,
			BaseURL:     raw.LLM.BaseURL,
			Timeout:     defaultLLMTimeout,
			MaxAttempts: defaultMaxAttempts,
		},
		GitHub: GitHubConfig{
			APIURL: firstNonEmpty(raw.GitHub.APIURL, defaultGitHubAPIURL),
			Token:  raw.GitHub.Token,
		},
		Storage: StorageConfig{
			Bucket:    raw.Storage.Bucket,
			Endpoint:  raw.Storage.Endpoint,
			Region:    raw.Storage.Region,
			AccessKey: raw.Storage.AccessKey,
			SecretKey: raw.Storage.SecretKey,
		},
	}
	if raw.CookieSecure != nil {
		cfg.CookieSecure = *raw.CookieSecure
	}
	if raw.BcryptCost != 0 {
		cfg.BcryptCost = raw.BcryptCost
	}
	if raw.LLM.MaxAttempts != 0 {
		cfg.LLM.MaxAttempts = raw.LLM.MaxAttempts
	}
	if raw.LLM.Timeout != "" {
		d, err := time.ParseDuration(raw.LLM.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse llm.timeout %q: %w", raw.LLM.Timeout, err)
		}
		cfg.LLM.Timeout = d
	}
	if raw.LogLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw.LogLevel)); err != nil {
			return nil, fmt.Errorf("parse log_level %q: %w", raw.LogLevel, err)
		}
	}

	if err := applyEnv(cfg, lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("PORT", &cfg.Port)
	str("DATABASE_PATH", &cfg.DatabasePath)
	str("DATABASE_URL", &cfg.DatabaseURL)
	str("JWT_SECRET", &cfg.JWTSecret)
	str("GEMINI_API_KEY", &cfg.LLM.APIKey)
	str("GEMINI_MODEL", &cfg.LLM.Model)
	str("GEMINI_BASE_URL", &cfg.LLM.BaseURL)
	str("GITHUB_API_URL", &cfg.GitHub.APIURL)
	str("GITHUB_TOKEN", &cfg.GitHub.Token)
	str("S3_BUCKET", &cfg.Storage.Bucket)
	str("S3_ENDPOINT", &cfg.Storage.Endpoint)
	str("S3_REGION", &cfg.Storage.Region)
	str("S3_ACCESS_KEY", &cfg.Storage.AccessKey)
	str("S3_SECRET_KEY", &cfg.Storage.SecretKey)

	// Default to secure cookies; disable only for local development.
	if v, ok := lookup("COOKIE_SECURE"); ok && v != "" {
		cfg.CookieSecure = v != "false"
	}

	if v, ok := lookup("BCRYPT_COST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = n
	}

	if v, ok := lookup("LLM_MAX_ATTEMPTS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LLM_MAX_ATTEMPTS: %w", err)
		}
		cfg.LLM.MaxAttempts = n
	}

	if v, ok := lookup("LLM_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
		}
		cfg.LLM.Timeout = d
	}

	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}
	return nil
}

// Validate checks the constraints the server relies on at startup.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters for HMAC-SHA256 security", minJWTSecretLength)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %v", c.LLM.Timeout)
	}
	if c.LLM.MaxAttempts < 1 {
		return fmt.Errorf("LLM_MAX_ATTEMPTS must be at least 1, got %d", c.LLM.MaxAttempts)
	}
	if c.Storage.Enabled() && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
		return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required when S3_BUCKET is set")
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
