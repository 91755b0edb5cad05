package fatvo

import (
	"context"
	"errors"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates user input or configuration failed validation.
	ErrValidation = errors.New("validation error")

	// ErrBusy indicates a turn is already in flight for the session.
	ErrBusy = errors.New("session busy: a turn is already running")

	// ErrCredentialMissing indicates a required secret was not configured.
	ErrCredentialMissing = errors.New("credential missing")

	// ErrCredentialInvalid indicates the remote service rejected the
	// credential, or the configured value is malformed.
	ErrCredentialInvalid = errors.New("credential invalid or expired")

	// ErrAssistantNotFound indicates the configured assistant identifier
	// does not exist for the credential.
	ErrAssistantNotFound = errors.New("assistant not found")

	// ErrThreadCreation indicates the remote thread could not be created.
	ErrThreadCreation = errors.New("thread creation failed")

	// ErrConversion indicates a transliteration did not succeed.
	ErrConversion = errors.New("conversion failed")

	// ErrRemote indicates a transient or transport failure talking to the
	// remote assistant.
	ErrRemote = errors.New("remote assistant error")
)

// Failure classifies a failed turn. Diagnostic assistant messages carry it
// so presenters and tests can tell them apart from real answers.
type Failure string

const (
	FailureNone              Failure = ""
	FailureCredentialMissing Failure = "credential_missing"
	FailureCredentialInvalid Failure = "credential_invalid"
	FailureThreadCreation    Failure = "thread_creation_failed"
	FailureRunFailed         Failure = "run_failed"
	FailureRunTimedOut       Failure = "run_timed_out"
	FailureRunRequiresAction Failure = "run_requires_action"
	FailureRemote            Failure = "remote_error"
	FailureCancelled         Failure = "cancelled"
	FailureInternal          Failure = "internal"
)

// FailureOf maps an error returned by a gateway or session call to its
// failure class. Credential errors win over the thread-creation wrapper.
func FailureOf(err error) Failure {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrCredentialMissing):
		return FailureCredentialMissing
	case errors.Is(err, ErrCredentialInvalid), errors.Is(err, ErrAssistantNotFound):
		return FailureCredentialInvalid
	case errors.Is(err, context.Canceled):
		return FailureCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return FailureRunTimedOut
	case errors.Is(err, ErrThreadCreation):
		return FailureThreadCreation
	case errors.Is(err, ErrRemote):
		return FailureRemote
	default:
		return FailureInternal
	}
}

// Fatal reports whether the failure class requires operator action before
// any further remote call can succeed.
func (f Failure) Fatal() bool {
	return f == FailureCredentialMissing || f == FailureCredentialInvalid
}
