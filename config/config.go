// Package config resolves fatvo's settings from flags, the environment, a
// .env file and a secrets.toml file, using viper.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/fatvo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys as they appear in .env and secrets.toml files.
const (
	KeyAPIKey       = "openai_api_key"
	KeyAssistantID  = "openai_assistant_id"
	KeyBaseURL      = "openai_base_url"
	KeyRunTimeout   = "run_timeout"
	KeyPollInterval = "poll_interval"
	KeySessionTTL   = "session_ttl"
	KeyLogLevel     = "log_level"
	KeyLogFile      = "log_file"
)

// Defaults.
const (
	DefaultBaseURL      = "https://api.openai.com/v1"
	DefaultPollInterval = 500 * time.Millisecond
	DefaultSessionTTL   = 24 * time.Hour
	DefaultEnvFile      = ".env"
	DefaultSecretsFile  = ".streamlit/secrets.toml"
)

// Config holds the resolved settings.
type Config struct {
	APIKey       string
	AssistantID  string
	BaseURL      string
	RunTimeout   time.Duration
	PollInterval time.Duration
	SessionTTL   time.Duration
	LogLevel     string
	LogFile      string
	Verify       bool
}

// bindings maps each key to its flag and environment variable.
var bindings = []struct {
	key, flag, env string
}{
	{KeyAPIKey, "api-key", "OPENAI_API_KEY"},
	{KeyAssistantID, "assistant-id", "OPENAI_ASSISTANT_ID"},
	{KeyBaseURL, "base-url", "OPENAI_BASE_URL"},
	{KeyRunTimeout, "run-timeout", "FATVO_RUN_TIMEOUT"},
	{KeyPollInterval, "poll-interval", "FATVO_POLL_INTERVAL"},
	{KeySessionTTL, "session-ttl", "FATVO_SESSION_TTL"},
	{KeyLogLevel, "log-level", "FATVO_LOG_LEVEL"},
	{KeyLogFile, "log-file", "FATVO_LOG_FILE"},
}

// NewFlagSet returns the command-line flags Load understands.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("api-key", "", "OpenAI API key (env OPENAI_API_KEY)")
	fs.String("assistant-id", "", "OpenAI assistant id (env OPENAI_ASSISTANT_ID)")
	fs.String("base-url", DefaultBaseURL, "OpenAI API base URL")
	fs.Duration("run-timeout", fatvo.DefaultRunTimeout, "how long to wait for one answer")
	fs.Duration("poll-interval", DefaultPollInterval, "initial run polling interval")
	fs.Duration("session-ttl", DefaultSessionTTL, "evict sessions idle for longer than this")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("log-file", "", "log file path (default ~/.fatvo/fatvo.log)")
	fs.String("env-file", DefaultEnvFile, "dotenv file with credentials, read if present")
	fs.String("secrets-file", DefaultSecretsFile, "TOML secrets file, read if present")
	fs.Bool("verify", false, "check the credentials against the API before starting")
	return fs
}

// Load resolves the configuration for parsed flags. Sources in precedence
// order: flags, environment, the env file, the secrets file, defaults.
// Missing files are skipped.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyRunTimeout, fatvo.DefaultRunTimeout)
	v.SetDefault(KeyPollInterval, DefaultPollInterval)
	v.SetDefault(KeySessionTTL, DefaultSessionTTL)
	v.SetDefault(KeyLogLevel, "info")

	secrets, _ := fs.GetString("secrets-file")
	if err := readFile(v, secrets, "toml", v.ReadInConfig); err != nil {
		return Config{}, err
	}
	env, _ := fs.GetString("env-file")
	if err := readFile(v, env, "env", v.MergeInConfig); err != nil {
		return Config{}, err
	}

	for _, b := range bindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", b.env, err)
		}
		if f := fs.Lookup(b.flag); f != nil {
			if err := v.BindPFlag(b.key, f); err != nil {
				return Config{}, fmt.Errorf("bind --%s: %w", b.flag, err)
			}
		}
	}

	cfg := Config{
		APIKey:       strings.TrimSpace(v.GetString(KeyAPIKey)),
		AssistantID:  strings.TrimSpace(v.GetString(KeyAssistantID)),
		BaseURL:      v.GetString(KeyBaseURL),
		RunTimeout:   v.GetDuration(KeyRunTimeout),
		PollInterval: v.GetDuration(KeyPollInterval),
		SessionTTL:   v.GetDuration(KeySessionTTL),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFile:      v.GetString(KeyLogFile),
	}
	cfg.Verify, _ = fs.GetBool("verify")
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile()
	}
	return cfg, nil
}

// readFile loads path into v with read when the file exists.
func readFile(v *viper.Viper, path, kind string, read func() error) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType(kind)
	if err := read(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "fatvo.log")
	}
	return filepath.Join(home, ".fatvo", "fatvo.log")
}

// Hint for where credentials are configured, shared by the diagnostics.
const hint = "set it in .env for local runs, or in .streamlit/secrets.toml when hosted"

// Validate checks that the configuration can start the application. Missing
// credentials wrap fatvo.ErrCredentialMissing, malformed ones
// fatvo.ErrCredentialInvalid, anything else fatvo.ErrValidation. All
// problems are reported together.
func (c Config) Validate() error {
	var errs []error
	switch {
	case c.APIKey == "":
		errs = append(errs, fmt.Errorf("OPENAI_API_KEY is not set; %s: %w", hint, fatvo.ErrCredentialMissing))
	case !strings.HasPrefix(c.APIKey, "sk-"):
		errs = append(errs, fmt.Errorf("OPENAI_API_KEY does not look like an OpenAI key (expected an sk- prefix): %w", fatvo.ErrCredentialInvalid))
	}
	switch {
	case c.AssistantID == "":
		errs = append(errs, fmt.Errorf("OPENAI_ASSISTANT_ID is not set; %s: %w", hint, fatvo.ErrCredentialMissing))
	case !strings.HasPrefix(c.AssistantID, "asst_"):
		errs = append(errs, fmt.Errorf("OPENAI_ASSISTANT_ID does not look like an assistant id (expected an asst_ prefix): %w", fatvo.ErrCredentialInvalid))
	}
	if c.RunTimeout <= 0 {
		errs = append(errs, fmt.Errorf("run timeout must be positive, got %s: %w", c.RunTimeout, fatvo.ErrValidation))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval must be positive, got %s: %w", c.PollInterval, fatvo.ErrValidation))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session TTL must be positive, got %s: %w", c.SessionTTL, fatvo.ErrValidation))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, fatvo.ErrValidation)
	}
	return l, nil
}
