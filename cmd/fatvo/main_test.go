package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/fatvo"
	"github.com/fwojciec/fatvo/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolated returns flags that keep run away from real credential files and
// the user's home directory.
func isolated(t *testing.T) []string {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_ASSISTANT_ID", "")
	dir := t.TempDir()
	return []string{
		"--env-file", filepath.Join(dir, ".env"),
		"--secrets-file", filepath.Join(dir, "secrets.toml"),
		"--log-file", filepath.Join(dir, "logs", "fatvo.log"),
	}
}

func TestRun_Help(t *testing.T) {
	assert.NoError(t, run([]string{"--help"}))
}

func TestRun_UnknownFlag(t *testing.T) {
	assert.Error(t, run([]string{"--no-such-flag"}))
}

func TestRun_MissingCredentials(t *testing.T) {
	err := run(isolated(t))

	assert.ErrorIs(t, err, fatvo.ErrCredentialMissing)
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
	assert.ErrorContains(t, err, ".env")
}

func TestRun_MalformedCredentials(t *testing.T) {
	args := append(isolated(t), "--api-key", "not-a-key", "--assistant-id", "asst_1")

	assert.ErrorIs(t, run(args), fatvo.ErrCredentialInvalid)
}

func TestRun_VerifyRejectedKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	t.Cleanup(srv.Close)

	args := append(isolated(t), "--api-key", "sk-revoked", "--assistant-id", "asst_1", "--base-url", srv.URL, "--verify")
	err := run(args)

	assert.ErrorIs(t, err, fatvo.ErrCredentialInvalid)
	assert.ErrorContains(t, err, "verify credentials")
}

func TestOpenLog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "fatvo.log")
	logger, closeLog, err := openLog(config.Config{LogLevel: "debug", LogFile: path})
	require.NoError(t, err)

	logger.Debug("salom", "session_id", "s1")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=salom")
	assert.Contains(t, string(data), "session_id=s1")
}

func TestOpenLog_BadLevel(t *testing.T) {
	t.Parallel()

	_, _, err := openLog(config.Config{LogLevel: "loud", LogFile: filepath.Join(t.TempDir(), "x.log")})
	assert.ErrorIs(t, err, fatvo.ErrValidation)
}
