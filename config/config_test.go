package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/fatvo"
	"github.com/fwojciec/fatvo/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv hides credentials present in the developer's environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"OPENAI_API_KEY", "OPENAI_ASSISTANT_ID", "OPENAI_BASE_URL",
		"FATVO_RUN_TIMEOUT", "FATVO_POLL_INTERVAL", "FATVO_SESSION_TTL",
		"FATVO_LOG_LEVEL", "FATVO_LOG_FILE",
	} {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// load parses args, pointing both credential files into dir.
func load(t *testing.T, dir string, args ...string) config.Config {
	t.Helper()
	fs := config.NewFlagSet("fatvo")
	base := []string{
		"--env-file", filepath.Join(dir, ".env"),
		"--secrets-file", filepath.Join(dir, ".streamlit", "secrets.toml"),
	}
	require.NoError(t, fs.Parse(append(base, args...)))
	cfg, err := config.Load(fs)
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := load(t, t.TempDir())

	assert.Equal(t, "", cfg.APIKey)
	assert.Equal(t, "", cfg.AssistantID)
	assert.Equal(t, config.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.RunTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "fatvo.log", filepath.Base(cfg.LogFile))
	assert.False(t, cfg.Verify)
}

func TestLoad_SecretsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".streamlit/secrets.toml", `
OPENAI_API_KEY = "sk-secrets"
OPENAI_ASSISTANT_ID = "asst_secrets"
`)

	cfg := load(t, dir)

	assert.Equal(t, "sk-secrets", cfg.APIKey)
	assert.Equal(t, "asst_secrets", cfg.AssistantID)
}

func TestLoad_EnvFileOverridesSecrets(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".streamlit/secrets.toml", `
OPENAI_API_KEY = "sk-secrets"
OPENAI_ASSISTANT_ID = "asst_secrets"
`)
	writeFile(t, dir, ".env", "OPENAI_API_KEY=sk-dotenv\nRUN_TIMEOUT=2m\n")

	cfg := load(t, dir)

	assert.Equal(t, "sk-dotenv", cfg.APIKey)
	assert.Equal(t, "asst_secrets", cfg.AssistantID)
	assert.Equal(t, 2*time.Minute, cfg.RunTimeout)
}

func TestLoad_EnvironmentOverridesFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".env", "OPENAI_API_KEY=sk-dotenv\n")
	t.Setenv("OPENAI_API_KEY", "sk-environ")
	t.Setenv("FATVO_POLL_INTERVAL", "250ms")

	cfg := load(t, dir)

	assert.Equal(t, "sk-environ", cfg.APIKey)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-environ")

	cfg := load(t, t.TempDir(), "--api-key", "sk-flag", "--run-timeout", "30s", "--verify", "--log-level", "debug")

	assert.Equal(t, "sk-flag", cfg.APIKey)
	assert.Equal(t, 30*time.Second, cfg.RunTimeout)
	assert.True(t, cfg.Verify)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_TrimsCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "  sk-padded \n")

	cfg := load(t, t.TempDir())

	assert.Equal(t, "sk-padded", cfg.APIKey)
}

func TestLoad_MalformedSecretsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, ".streamlit/secrets.toml", "OPENAI_API_KEY = \n")

	fs := config.NewFlagSet("fatvo")
	require.NoError(t, fs.Parse([]string{"--secrets-file", path, "--env-file", ""}))
	_, err := config.Load(fs)

	assert.ErrorContains(t, err, "secrets.toml")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := config.Config{
		APIKey:       "sk-test",
		AssistantID:  "asst_test",
		RunTimeout:   90 * time.Second,
		PollInterval: 500 * time.Millisecond,
		SessionTTL:   time.Hour,
		LogLevel:     "info",
	}

	tests := []struct {
		name     string
		mutate   func(*config.Config)
		wantErr  error
		contains string
	}{
		{"valid", func(*config.Config) {}, nil, ""},
		{"missing key", func(c *config.Config) { c.APIKey = "" }, fatvo.ErrCredentialMissing, "OPENAI_API_KEY is not set"},
		{"missing assistant", func(c *config.Config) { c.AssistantID = "" }, fatvo.ErrCredentialMissing, ".streamlit/secrets.toml"},
		{"malformed key", func(c *config.Config) { c.APIKey = "pk-test" }, fatvo.ErrCredentialInvalid, "sk- prefix"},
		{"malformed assistant", func(c *config.Config) { c.AssistantID = "thread_1" }, fatvo.ErrCredentialInvalid, "asst_ prefix"},
		{"zero timeout", func(c *config.Config) { c.RunTimeout = 0 }, fatvo.ErrValidation, "run timeout"},
		{"negative poll", func(c *config.Config) { c.PollInterval = -time.Second }, fatvo.ErrValidation, "poll interval"},
		{"zero ttl", func(c *config.Config) { c.SessionTTL = 0 }, fatvo.ErrValidation, "session TTL"},
		{"bad level", func(c *config.Config) { c.LogLevel = "loud" }, fatvo.ErrValidation, "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorContains(t, err, tt.contains)
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		t.Parallel()
		err := config.Config{LogLevel: "info", RunTimeout: time.Second, PollInterval: time.Second, SessionTTL: time.Hour}.Validate()
		assert.ErrorIs(t, err, fatvo.ErrCredentialMissing)
		assert.ErrorContains(t, err, "OPENAI_API_KEY")
		assert.ErrorContains(t, err, "OPENAI_ASSISTANT_ID")
	})
}

func TestConfig_Level(t *testing.T) {
	t.Parallel()

	level, err := config.Config{LogLevel: "warn"}.Level()
	require.NoError(t, err)
	assert.Equal(t, "WARN", level.String())
}
