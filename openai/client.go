// Package openai implements fatvo.Gateway on the OpenAI Assistants API
// (threads, messages and runs).
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/fatvo"
	"github.com/fwojciec/fatvo/clock"
	oai "github.com/sashabaranov/go-openai"
)

const (
	defaultBaseURL         = "https://api.openai.com/v1"
	defaultPollInterval    = 500 * time.Millisecond
	defaultMaxPollInterval = 5 * time.Second
	pollBackoff            = 1.5
)

// Interface compliance check.
var _ fatvo.Gateway = (*Client)(nil)

// Client implements [fatvo.Gateway] for one configured assistant.
type Client struct {
	api             *oai.Client
	assistantID     string
	baseURL         string
	httpClient      *http.Client
	clock           clock.Clock
	pollInterval    time.Duration
	maxPollInterval time.Duration
	logger          *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL, including the version prefix. Useful
// for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock sets the time source for polling and deadlines.
func WithClock(clk clock.Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// WithPollInterval sets the first pause between run status checks.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// WithMaxPollInterval caps the pause between run status checks.
func WithMaxPollInterval(d time.Duration) Option {
	return func(c *Client) { c.maxPollInterval = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a [Client] for the given API key and assistant identifier.
func New(apiKey, assistantID string, opts ...Option) *Client {
	c := &Client{
		assistantID:     assistantID,
		baseURL:         defaultBaseURL,
		httpClient:      http.DefaultClient,
		clock:           clock.Real(),
		pollInterval:    defaultPollInterval,
		maxPollInterval: defaultMaxPollInterval,
		logger:          slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.pollInterval <= 0 {
		c.pollInterval = defaultPollInterval
	}
	if c.maxPollInterval < c.pollInterval {
		c.maxPollInterval = c.pollInterval
	}

	cfg := oai.DefaultConfig(apiKey)
	cfg.BaseURL = c.baseURL
	cfg.HTTPClient = c.httpClient
	c.api = oai.NewClientWithConfig(cfg)
	return c
}

// CreateThread creates an empty remote thread and returns its identifier.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	th, err := c.api.CreateThread(ctx, oai.ThreadRequest{})
	if err != nil {
		return "", classify("create thread", err)
	}
	c.logger.Debug("thread created", "thread_id", th.ID)
	return th.ID, nil
}

// SubmitAndAwait posts text to the thread, starts a run of the assistant and
// polls it until it reaches a terminal status or timeout elapses. A local
// timeout stops polling; the remote run is left alone and any late result is
// never fetched.
func (c *Client) SubmitAndAwait(ctx context.Context, threadID, text string, timeout time.Duration) (fatvo.Run, error) {
	if timeout <= 0 {
		timeout = fatvo.DefaultRunTimeout
	}
	start := c.clock.Now()
	deadline := start.Add(timeout)

	// Bounds each HTTP call on the wall clock as well.
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := c.api.CreateMessage(callCtx, threadID, oai.MessageRequest{
		Role:    string(oai.ThreadMessageRoleUser),
		Content: text,
	})
	if err != nil {
		return c.failed(ctx, "", "create message", err)
	}

	run, err := c.api.CreateRun(callCtx, threadID, oai.RunRequest{AssistantID: c.assistantID})
	if err != nil {
		return c.failed(ctx, "", "create run", err)
	}
	logger := c.logger.With("thread_id", threadID, "run_id", run.ID)
	logger.Debug("run started")

	wait := c.pollInterval
	for polls := 0; ; polls++ {
		result, done, err := c.settle(callCtx, threadID, run)
		if err != nil {
			return c.failed(ctx, run.ID, "list messages", err)
		}
		if done {
			logger.Info("run finished", "status", result.Status, "polls", polls, "elapsed", c.clock.Now().Sub(start))
			return result, nil
		}

		remaining := deadline.Sub(c.clock.Now())
		if remaining <= 0 {
			logger.Warn("run timed out", "status", run.Status, "polls", polls, "timeout", timeout)
			return fatvo.Run{ID: run.ID, Status: fatvo.RunTimedOut}, nil
		}
		select {
		case <-callCtx.Done():
			return c.failed(ctx, run.ID, "await run", callCtx.Err())
		case <-c.clock.After(min(wait, remaining)):
		}
		wait = min(time.Duration(float64(wait)*pollBackoff), c.maxPollInterval)

		next, err := c.api.RetrieveRun(callCtx, threadID, run.ID)
		if err != nil {
			return c.failed(ctx, run.ID, "retrieve run", err)
		}
		logger.Debug("run polled", "status", next.Status)
		run = next
	}
}

// failed turns a call error into the gateway result. Expiry of the local
// deadline is a timeout status, not an error, unless the caller's own
// context ended.
func (c *Client) failed(ctx context.Context, runID, op string, err error) (fatvo.Run, error) {
	if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		c.logger.Warn("run timed out", "run_id", runID, "op", op)
		return fatvo.Run{ID: runID, Status: fatvo.RunTimedOut}, nil
	}
	if ctx.Err() != nil {
		return fatvo.Run{ID: runID, Status: fatvo.RunRunning}, ctx.Err()
	}
	return fatvo.Run{ID: runID}, classify(op, err)
}

// settle maps a run to its result when the status is terminal.
func (c *Client) settle(ctx context.Context, threadID string, run oai.Run) (fatvo.Run, bool, error) {
	switch run.Status {
	case oai.RunStatusCompleted:
		text, err := c.latestReply(ctx, threadID, run.ID)
		if err != nil {
			return fatvo.Run{}, true, err
		}
		return fatvo.Run{ID: run.ID, Status: fatvo.RunCompleted, Text: text}, true, nil
	case oai.RunStatusFailed:
		detail := string(run.Status)
		if run.LastError != nil && run.LastError.Message != "" {
			detail = run.LastError.Message
		}
		return fatvo.Run{ID: run.ID, Status: fatvo.RunFailed, ErrorDetail: detail}, true, nil
	case oai.RunStatusCancelled, oai.RunStatusIncomplete:
		return fatvo.Run{ID: run.ID, Status: fatvo.RunFailed, ErrorDetail: string(run.Status)}, true, nil
	case oai.RunStatusExpired:
		return fatvo.Run{ID: run.ID, Status: fatvo.RunTimedOut}, true, nil
	case oai.RunStatusRequiresAction:
		return fatvo.Run{ID: run.ID, Status: fatvo.RunRequiresAction}, true, nil
	default:
		return fatvo.Run{}, false, nil
	}
}

// latestReply fetches the newest message the run produced.
func (c *Client) latestReply(ctx context.Context, threadID, runID string) (string, error) {
	limit, order := 1, "desc"
	list, err := c.api.ListMessage(ctx, threadID, &limit, &order, nil, nil, &runID)
	if err != nil {
		return "", err
	}
	for _, m := range list.Messages {
		if m.Role != string(oai.ThreadMessageRoleAssistant) {
			continue
		}
		var parts []string
		for _, content := range m.Content {
			if content.Text != nil && content.Text.Value != "" {
				parts = append(parts, content.Text.Value)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "\n\n"), nil
		}
	}
	return "", fmt.Errorf("run %s completed without a text reply: %w", runID, fatvo.ErrRemote)
}

// Verify checks that the credential is accepted and the assistant exists.
func (c *Client) Verify(ctx context.Context) error {
	_, err := c.api.RetrieveAssistant(ctx, c.assistantID)
	if err == nil {
		return nil
	}
	if statusCode(err) == http.StatusNotFound {
		return fmt.Errorf("openai: assistant %q: %w", c.assistantID, fatvo.ErrAssistantNotFound)
	}
	return classify("retrieve assistant", err)
}
