package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fwojciec/fatvo"
	oai "github.com/sashabaranov/go-openai"
)

// classify wraps an API error with the matching fatvo sentinel. Rejected
// credentials are never retryable and are reported as such.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, fatvo.ErrRemote), errors.Is(err, fatvo.ErrCredentialInvalid):
		return fmt.Errorf("openai: %s: %w", op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("openai: %s: %w", op, err)
	case unauthorized(err):
		return fmt.Errorf("openai: %s: %w: %w", op, fatvo.ErrCredentialInvalid, err)
	default:
		return fmt.Errorf("openai: %s: %w: %w", op, fatvo.ErrRemote, err)
	}
}

func unauthorized(err error) bool {
	if statusCode(err) == http.StatusUnauthorized {
		return true
	}
	var apiErr *oai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprint(apiErr.Code) == "invalid_api_key"
	}
	return false
}

func statusCode(err error) int {
	var apiErr *oai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *oai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
