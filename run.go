package fatvo

// RunStatus is the state of one remote assistant invocation.
type RunStatus string

const (
	RunQueued         RunStatus = "queued"
	RunRunning        RunStatus = "running"
	RunCompleted      RunStatus = "completed"
	RunFailed         RunStatus = "failed"
	RunRequiresAction RunStatus = "requires_action"
	RunTimedOut       RunStatus = "timed_out"
)

// Terminal reports whether polling should stop at this status.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunQueued, RunRunning:
		return false
	default:
		return true
	}
}

// Run is the transient result of one SubmitAndAwait call. It lives for a
// single request-response cycle and is never persisted.
//
// Text is set only when Status is RunCompleted. ErrorDetail carries the
// remote-reported reason for RunFailed.
type Run struct {
	ID          string
	Status      RunStatus
	Text        string
	ErrorDetail string
}
