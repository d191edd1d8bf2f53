package ports

import (
	"context"

	"github.com/bnema/twitch-chat-logger/internal/domain"
)

type DialRequest struct {
	Login       string
	Credentials domain.Credentials
	// OnRefresh is called whenever the remote endpoint rotates the token pair.
	OnRefresh func(domain.Credentials)
}

// ChatDialer establishes an authenticated chat connection.
type ChatDialer interface {
	Dial(ctx context.Context, req DialRequest) (ChatConn, error)
}

// ChatConn is a live, authenticated chat connection. Events is closed once
// the connection is closed.
type ChatConn interface {
	Join(ctx context.Context, channels ...string) error
	Leave(ctx context.Context, channels ...string) error
	Events() <-chan domain.ChatEvent
	Close() error
}
