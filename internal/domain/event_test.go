package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewLogEntryFormatsEachEventKind(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 7, 9, 4, 5, 0, time.Local)
	tests := []struct {
		name     string
		event    ChatEvent
		wantLine string
	}{
		{
			name:     "message",
			event:    MessageEvent{Room: "alpha", User: "viewer", Body: "hello there", At: at},
			wantLine: "09:04:05 - viewer: hello there",
		},
		{
			name:     "joined",
			event:    UserJoinedEvent{Room: "alpha", User: "viewer", At: at},
			wantLine: "09:04:05 - User: 'viewer' joined",
		},
		{
			name:     "left",
			event:    UserLeftEvent{Room: "alpha", User: "viewer", At: at},
			wantLine: "09:04:05 - User: 'viewer' left",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			entry := NewLogEntry(tc.event, time.Time{})
			assert.Equal(t, "alpha", entry.Channel)
			assert.Equal(t, at, entry.At)
			assert.Equal(t, tc.wantLine, entry.Line)
		})
	}
}

func TestNewLogEntryFallsBackToReceiveTime(t *testing.T) {
	t.Parallel()

	received := time.Date(2026, 3, 7, 23, 59, 1, 0, time.Local)
	entry := NewLogEntry(MessageEvent{Room: "alpha", User: "a", Body: "b"}, received)

	assert.Equal(t, received, entry.At)
	assert.Equal(t, "23:59:01 - a: b", entry.Line)
}
