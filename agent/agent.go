// Package agent runs conversation turns: it converts the question, asks the
// remote assistant, converts the answer back and records both in the
// session.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/fatvo"
	"github.com/fwojciec/fatvo/session"
)

// Agent orchestrates turns between a Transliterator and a Gateway. One Agent
// serves every session; per-session exclusion comes from the session's turn
// lock.
type Agent struct {
	translit fatvo.Transliterator
	gateway  fatvo.Gateway
	timeout  time.Duration
	logger   *slog.Logger

	halted atomic.Value // fatvo.Failure
}

// Option configures an Agent.
type Option func(*Agent)

// WithTimeout sets how long a single run may take.
func WithTimeout(d time.Duration) Option {
	return func(a *Agent) {
		a.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = l
	}
}

// New creates an Agent.
func New(tr fatvo.Transliterator, gw fatvo.Gateway, opts ...Option) *Agent {
	a := &Agent{
		translit: tr,
		gateway:  gw,
		timeout:  fatvo.DefaultRunTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Halted returns the credential failure that stopped remote calls, or
// fatvo.FailureNone.
func (a *Agent) Halted() fatvo.Failure {
	f, _ := a.halted.Load().(fatvo.Failure)
	return f
}

// Turn handles one user question end to end. Every failure past input
// validation is recorded as an assistant diagnostic and reported through p;
// Turn then returns nil. It returns an error only when nothing was recorded:
// invalid input (fatvo.ErrValidation) or a turn already in flight
// (fatvo.ErrBusy).
func (a *Agent) Turn(ctx context.Context, s *session.Manager, input string, p fatvo.Presenter) (err error) {
	text, err := fatvo.ValidateInput(input)
	if err != nil {
		return err
	}
	release, err := s.Acquire()
	if err != nil {
		return err
	}
	defer release()

	t := &turn{Agent: a, s: s, p: p, gen: s.Generation()}
	t.logger = a.logger.With("session_id", s.ID())
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("turn panicked", "panic", r)
			t.diagnose(fatvo.FailureInternal, "")
			err = nil
		}
	}()

	t.run(ctx, text)
	return nil
}

// turn carries the state of one Turn call.
type turn struct {
	*Agent
	s      *session.Manager
	p      fatvo.Presenter
	gen    uint64
	logger *slog.Logger
}

func (t *turn) run(ctx context.Context, text string) {
	start := time.Now()
	question, outcome := t.translit.Convert(text, fatvo.LatinToCyrillic)
	user := fatvo.Message{Role: fatvo.RoleUser, Content: text, Status: outcome.Status()}
	if outcome == fatvo.Converted {
		user.Alternate = question
	}
	if !t.s.AppendTurn(t.gen, user) {
		return
	}
	t.p.RenderMessage(fatvo.RoleUser, text, "")
	if outcome == fatvo.Converted {
		t.p.ShowNotice(fmt.Sprintf(noticeConverted, question))
	} else {
		t.logger.Warn("question not converted")
		t.p.ShowError(noticeQuestionUnconverted)
	}

	if f := t.Halted(); f != fatvo.FailureNone {
		t.logger.Warn("remote calls halted", "failure", f)
		t.diagnose(f, "")
		return
	}

	threadID, err := t.s.GetOrCreateThread(ctx)
	if err != nil {
		t.fail(err)
		return
	}

	result, err := t.gateway.SubmitAndAwait(ctx, threadID, question, t.timeout)
	if err != nil {
		t.fail(err)
		return
	}
	t.logger.Info("run settled", "thread_id", threadID, "run_id", result.ID, "status", result.Status, "elapsed", time.Since(start))

	switch result.Status {
	case fatvo.RunCompleted:
		t.answer(result.Text)
	case fatvo.RunFailed:
		t.diagnose(fatvo.FailureRunFailed, result.ErrorDetail)
	case fatvo.RunRequiresAction:
		t.diagnose(fatvo.FailureRunRequiresAction, "")
	case fatvo.RunTimedOut:
		t.diagnose(fatvo.FailureRunTimedOut, "")
	default:
		t.diagnose(fatvo.FailureInternal, string(result.Status))
	}
}

// answer records the assistant reply in the user's script, keeping the
// Cyrillic original as the caption.
func (t *turn) answer(cyrillic string) {
	latin, outcome := t.translit.Convert(cyrillic, fatvo.CyrillicToLatin)
	msg := fatvo.Message{Role: fatvo.RoleAssistant, Content: latin, Status: outcome.Status()}
	var caption string
	if outcome == fatvo.Converted {
		msg.Alternate = cyrillic
		caption = cyrillic
	}
	if !t.s.AppendTurn(t.gen, msg) {
		t.logger.Info("answer discarded after reset")
		return
	}
	t.p.RenderMessage(fatvo.RoleAssistant, latin, caption)
	if outcome != fatvo.Converted {
		t.logger.Warn("answer not converted")
		t.p.ShowError(noticeAnswerUnconverted)
	}
}

func (t *turn) fail(err error) {
	f := fatvo.FailureOf(err)
	t.logger.Error("turn failed", "failure", f, "error", err)
	if f.Fatal() {
		t.halted.Store(f)
	}
	var detail string
	if f == fatvo.FailureRemote {
		detail = err.Error()
	}
	t.diagnose(f, detail)
}

// diagnose records one assistant-role message describing the failure.
func (t *turn) diagnose(f fatvo.Failure, detail string) {
	text := Diagnostic(f, detail)
	if !t.s.AppendTurn(t.gen, fatvo.Message{Role: fatvo.RoleAssistant, Content: text, Failure: f}) {
		return
	}
	t.p.ShowError(text)
}
