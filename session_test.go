package fatvo_test

import (
	"testing"
	"time"

	"github.com/fwojciec/fatvo"
	"github.com/stretchr/testify/assert"
)

func TestSession_Fields(t *testing.T) {
	t.Parallel()
	now := time.Now()
	s := fatvo.Session{
		ID:        "sess-123",
		ThreadID:  "thread_abc",
		Messages:  []fatvo.Message{{Role: fatvo.RoleUser, Content: "Salom"}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	assert.Equal(t, "sess-123", s.ID)
	assert.Equal(t, "thread_abc", s.ThreadID)
	assert.Len(t, s.Messages, 1)
	assert.Equal(t, now, s.CreatedAt)
	assert.Equal(t, now, s.UpdatedAt)
}

func TestSession_State(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fatvo.SessionUninitialized, fatvo.Session{}.State())
	assert.Equal(t, fatvo.SessionActive, fatvo.Session{ThreadID: "thread_1"}.State())
	assert.Equal(t, "uninitialized", fatvo.SessionUninitialized.String())
	assert.Equal(t, "active", fatvo.SessionActive.String())
}
