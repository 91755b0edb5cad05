package fatvo

import "time"

// SessionState is the lifecycle state of a session's remote thread.
type SessionState int

const (
	SessionUninitialized SessionState = iota // No remote thread yet.
	SessionActive                            // Remote thread established.
)

func (s SessionState) String() string {
	switch s {
	case SessionUninitialized:
		return "uninitialized"
	case SessionActive:
		return "active"
	default:
		return "unknown"
	}
}

// Session represents one user's conversation.
type Session struct {
	ID        string
	ThreadID  string // empty until the first outbound exchange
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// State derives the lifecycle state from the thread handle.
func (s Session) State() SessionState {
	if s.ThreadID == "" {
		return SessionUninitialized
	}
	return SessionActive
}
