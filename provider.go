package fatvo

import (
	"context"
	"time"
)

// DefaultRunTimeout bounds how long SubmitAndAwait polls a run.
const DefaultRunTimeout = 90 * time.Second

// Gateway is the adapter boundary to the hosted assistant service.
//
// SubmitAndAwait appends text to the thread, starts a run and polls it until
// a terminal status or until timeout elapses. Status outcomes (completed,
// failed, requires action, timed out) are reported through Run.Status; the
// error return is reserved for failures that prevented a status from being
// observed. Credential rejections return ErrCredentialInvalid immediately,
// without polling.
type Gateway interface {
	CreateThread(ctx context.Context) (string, error)
	SubmitAndAwait(ctx context.Context, threadID, text string, timeout time.Duration) (Run, error)
}
