// Package mock provides test doubles for fatvo interfaces using function fields.
package mock

import (
	"context"
	"time"

	"github.com/fwojciec/fatvo"
)

// Interface compliance checks.
var (
	_ fatvo.Gateway        = (*Gateway)(nil)
	_ fatvo.Transliterator = (*Transliterator)(nil)
	_ fatvo.Presenter      = (*Presenter)(nil)
)

// Gateway is a test double for fatvo.Gateway.
// Set the function fields for the methods you need.
type Gateway struct {
	CreateThreadFn   func(ctx context.Context) (string, error)
	SubmitAndAwaitFn func(ctx context.Context, threadID, text string, timeout time.Duration) (fatvo.Run, error)
}

// CreateThread delegates to CreateThreadFn.
func (g *Gateway) CreateThread(ctx context.Context) (string, error) {
	return g.CreateThreadFn(ctx)
}

// SubmitAndAwait delegates to SubmitAndAwaitFn.
func (g *Gateway) SubmitAndAwait(ctx context.Context, threadID, text string, timeout time.Duration) (fatvo.Run, error) {
	return g.SubmitAndAwaitFn(ctx, threadID, text, timeout)
}

// Transliterator is a test double for fatvo.Transliterator.
// Set ConvertFn before calling Convert.
type Transliterator struct {
	ConvertFn func(text string, dir fatvo.Direction) (string, fatvo.Outcome)
}

// Convert delegates to ConvertFn.
func (t *Transliterator) Convert(text string, dir fatvo.Direction) (string, fatvo.Outcome) {
	return t.ConvertFn(text, dir)
}

// Presenter is a test double for fatvo.Presenter. Unset fields are no-ops so
// tests only wire the calls they assert on.
type Presenter struct {
	RenderMessageFn func(role fatvo.Role, content, caption string)
	ShowNoticeFn    func(text string)
	ShowErrorFn     func(text string)
}

// RenderMessage delegates to RenderMessageFn.
func (p *Presenter) RenderMessage(role fatvo.Role, content, caption string) {
	if p.RenderMessageFn != nil {
		p.RenderMessageFn(role, content, caption)
	}
}

// ShowNotice delegates to ShowNoticeFn.
func (p *Presenter) ShowNotice(text string) {
	if p.ShowNoticeFn != nil {
		p.ShowNoticeFn(text)
	}
}

// ShowError delegates to ShowErrorFn.
func (p *Presenter) ShowError(text string) {
	if p.ShowErrorFn != nil {
		p.ShowErrorFn(text)
	}
}
