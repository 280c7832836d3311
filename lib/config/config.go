// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/orghelper/lib/github"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "ORGHELPER_CONFIG"

// Config is the orghelper configuration file.
type Config struct {
	// GitHub configures the API endpoint.
	GitHub GitHubConfig `yaml:"github"`

	// Credential configures where the GitHub credential comes from.
	Credential CredentialConfig `yaml:"credential"`

	// Batch configures the batch runner.
	Batch BatchConfig `yaml:"batch"`

	// Log configures the process logger.
	Log LogConfig `yaml:"log"`
}

// GitHubConfig configures the API endpoint.
type GitHubConfig struct {
	// BaseURL is the API root. GitHub Enterprise Server installations
	// use https://HOST/api/v3.
	// Default: https://api.github.com
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each HTTP request, as a Go duration string.
	// Default: 30s
	Timeout string `yaml:"timeout"`
}

// CredentialConfig selects and locates the GitHub credential. At most
// one source is allowed per secret: inline, file, or the sealed
// document.
type CredentialConfig struct {
	// AuthMethod is "token" or "app". Default: token.
	AuthMethod string `yaml:"auth_method"`

	// AccessToken is an inline personal access token. Prefer
	// AccessTokenFile or SealedFile.
	AccessToken string `yaml:"access_token"`

	// AccessTokenFile is read for the token. "-" reads stdin, or
	// prompts when stdin is a terminal.
	AccessTokenFile string `yaml:"access_token_file"`

	AppID          string `yaml:"app_id"`
	InstallationID string `yaml:"installation_id"`

	// PrivateKey is the inline PEM App key. Escaped "\n" sequences are
	// accepted.
	PrivateKey string `yaml:"private_key"`

	// PrivateKeyFile is read for the App key.
	PrivateKeyFile string `yaml:"private_key_file"`

	// SealedFile is an age-encrypted YAML credential document with the
	// same field names as this section (auth_method, access_token,
	// app_id, installation_id, private_key). Its values replace the
	// ones here.
	SealedFile string `yaml:"sealed_file"`

	// IdentityFile holds the age identity that opens SealedFile.
	IdentityFile string `yaml:"identity_file"`
}

// BatchConfig configures the batch runner.
type BatchConfig struct {
	// ContinueOnFail records failures and keeps going instead of
	// stopping at the first failed record. The --continue-on-fail flag
	// also enables it.
	ContinueOnFail bool `yaml:"continue_on_fail"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	// Level is debug, info, warn, or error. Default: info.
	Level string `yaml:"level"`

	// Format is auto, text, or json. auto picks text on a terminal.
	// Default: auto.
	Format string `yaml:"format"`
}

// Default returns the default configuration. Loaded files are merged
// over it.
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			BaseURL: "https://api.github.com",
			Timeout: "30s",
		},
		Credential: CredentialConfig{
			AuthMethod: string(github.AuthMethodToken),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from the ORGHELPER_CONFIG environment
// variable. There are no fallbacks: if it is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your orghelper.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Unknown keys
// are errors.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in file
// path fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Credential.AccessTokenFile = expandVars(c.Credential.AccessTokenFile, vars)
	c.Credential.PrivateKeyFile = expandVars(c.Credential.PrivateKeyFile, vars)
	c.Credential.SealedFile = expandVars(c.Credential.SealedFile, vars)
	c.Credential.IdentityFile = expandVars(c.Credential.IdentityFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
//
// Presence of the credential values themselves is not checked here:
// the resolver reports a missing App ID, installation ID, key, or token
// for each record it processes.
func (c *Config) Validate() error {
	var errs []error

	if !strings.HasPrefix(c.GitHub.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("github.base_url must use https (got %q)", c.GitHub.BaseURL))
	}
	if _, err := c.GitHub.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "", "auto", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be auto, text, or json (got %q)", c.Log.Format))
	}

	errs = append(errs, c.Credential.validate()...)

	return errors.Join(errs...)
}

func (credential CredentialConfig) validate() []error {
	var errs []error

	method, err := github.ParseAuthMethod(credential.AuthMethod)
	if err != nil {
		errs = append(errs, fmt.Errorf("credential.auth_method: %w", err))
	}

	if credential.SealedFile != "" && credential.IdentityFile == "" {
		errs = append(errs, fmt.Errorf("credential.identity_file is required with credential.sealed_file"))
	}
	if credential.IdentityFile == "-" {
		errs = append(errs, fmt.Errorf("credential.identity_file cannot be stdin"))
	}
	if credential.AccessToken != "" && credential.AccessTokenFile != "" {
		errs = append(errs, fmt.Errorf("credential.access_token and credential.access_token_file are mutually exclusive"))
	}
	if credential.PrivateKey != "" && credential.PrivateKeyFile != "" {
		errs = append(errs, fmt.Errorf("credential.private_key and credential.private_key_file are mutually exclusive"))
	}

	switch method {
	case github.AuthMethodToken:
		if credential.PrivateKey != "" || credential.PrivateKeyFile != "" {
			errs = append(errs, fmt.Errorf("credential.private_key is only used with auth_method %q", github.AuthMethodApp))
		}
	case github.AuthMethodApp:
		if credential.AccessToken != "" || credential.AccessTokenFile != "" {
			errs = append(errs, fmt.Errorf("credential.access_token is only used with auth_method %q", github.AuthMethodToken))
		}
	}

	return errs
}

// TimeoutDuration parses Timeout. Empty means no timeout.
func (g GitHubConfig) TimeoutDuration() (time.Duration, error) {
	if g.Timeout == "" {
		return 0, nil
	}
	duration, err := time.ParseDuration(g.Timeout)
	if err != nil {
		return 0, fmt.Errorf("github.timeout: %w", err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("github.timeout must not be negative (got %s)", g.Timeout)
	}
	return duration, nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log.level must be debug, info, warn, or error (got %q)", l.Level)
	}
}
