package ports

import (
	"context"

	"github.com/bnema/twitch-chat-logger/internal/domain"
)

type EventSink interface {
	Append(ctx context.Context, entry domain.LogEntry) error
}

// SinkFactory opens the sink rooted at a configured log directory.
type SinkFactory func(logDirectory string) EventSink
