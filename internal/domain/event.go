package domain

import (
	"fmt"
	"time"
)

const logLineTimeLayout = "15:04:05"

// ChatEvent is one of MessageEvent, UserJoinedEvent or UserLeftEvent.
type ChatEvent interface {
	Channel() string
	OccurredAt() time.Time
	Text() string

	chatEvent()
}

type MessageEvent struct {
	Room string
	User string
	Body string
	At   time.Time
}

type UserJoinedEvent struct {
	Room string
	User string
	At   time.Time
}

type UserLeftEvent struct {
	Room string
	User string
	At   time.Time
}

func (e MessageEvent) Channel() string       { return e.Room }
func (e MessageEvent) OccurredAt() time.Time { return e.At }
func (e MessageEvent) Text() string          { return fmt.Sprintf("%s: %s", e.User, e.Body) }
func (MessageEvent) chatEvent()              {}

func (e UserJoinedEvent) Channel() string       { return e.Room }
func (e UserJoinedEvent) OccurredAt() time.Time { return e.At }
func (e UserJoinedEvent) Text() string          { return fmt.Sprintf("User: '%s' joined", e.User) }
func (UserJoinedEvent) chatEvent()              {}

func (e UserLeftEvent) Channel() string       { return e.Room }
func (e UserLeftEvent) OccurredAt() time.Time { return e.At }
func (e UserLeftEvent) Text() string          { return fmt.Sprintf("User: '%s' left", e.User) }
func (UserLeftEvent) chatEvent()              {}

// LogEntry is a formatted line bound for a channel's log.
type LogEntry struct {
	Channel string
	At      time.Time
	Line    string
}

// NewLogEntry stamps the event text with its wall-clock time of day. When the
// event carries no timestamp, receivedAt is used.
func NewLogEntry(event ChatEvent, receivedAt time.Time) LogEntry {
	at := event.OccurredAt()
	if at.IsZero() {
		at = receivedAt
	}

	return LogEntry{
		Channel: event.Channel(),
		At:      at,
		Line:    fmt.Sprintf("%s - %s", at.Format(logLineTimeLayout), event.Text()),
	}
}
