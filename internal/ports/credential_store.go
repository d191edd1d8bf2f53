package ports

import (
	"context"

	"github.com/bnema/twitch-chat-logger/internal/domain"
)

// ChannelEdit derives an account's next channel set from its current one.
type ChannelEdit func(current []string) ([]string, error)

// CredentialStore is the durable home of the configured accounts. Every
// mutation is persisted before it returns.
type CredentialStore interface {
	LoadAll(ctx context.Context) (domain.Snapshot, error)
	UpsertAccount(ctx context.Context, id domain.AccountID, login string, credentials domain.Credentials) error
	UpdateCredentials(ctx context.Context, id domain.AccountID, credentials domain.Credentials) error
	RemoveAccount(ctx context.Context, id domain.AccountID) error
	// EditChannels applies edit and persists the result in one
	// read-modify-write, returning the stored channel set.
	EditChannels(ctx context.Context, id domain.AccountID, edit ChannelEdit) ([]string, error)
	SetLogDirectory(ctx context.Context, dir string) error
}
