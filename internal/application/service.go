package application

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bnema/twitch-chat-logger/internal/domain"
	"github.com/bnema/twitch-chat-logger/internal/ports"
)

// Service backs the operator commands. Every change goes through the
// credential store; a running daemon picks it up from the file watcher.
type Service struct {
	store ports.CredentialStore
}

func NewService(store ports.CredentialStore) *Service {
	return &Service{store: store}
}

func (s *Service) Status(ctx context.Context) (FleetStatus, error) {
	snapshot, err := s.store.LoadAll(ctx)
	if err != nil {
		return FleetStatus{}, fmt.Errorf("load accounts: %w", err)
	}

	return summarize(snapshot), nil
}

// AddChannels appends channels to the account's set and returns the result.
func (s *Service) AddChannels(ctx context.Context, id domain.AccountID, channels ...string) ([]string, error) {
	added := domain.NormalizeChannels(channels)
	for _, channel := range added {
		if err := domain.ValidateChannel(channel); err != nil {
			return nil, err
		}
	}

	next, err := s.store.EditChannels(ctx, id, func(current []string) ([]string, error) {
		return append(slices.Clone(current), added...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("save channels: %w", err)
	}

	return next, nil
}

// RemoveChannels drops channels from the account's set and returns the result.
func (s *Service) RemoveChannels(ctx context.Context, id domain.AccountID, channels ...string) ([]string, error) {
	removed := domain.NormalizeChannels(channels)
	next, err := s.store.EditChannels(ctx, id, func(current []string) ([]string, error) {
		return slices.DeleteFunc(slices.Clone(current), func(channel string) bool {
			return slices.Contains(removed, channel)
		}), nil
	})
	if err != nil {
		return nil, fmt.Errorf("save channels: %w", err)
	}

	return next, nil
}

func (s *Service) RemoveAccount(ctx context.Context, id domain.AccountID) error {
	if _, err := s.account(ctx, id); err != nil {
		return err
	}

	if err := s.store.RemoveAccount(ctx, id); err != nil {
		return fmt.Errorf("remove account: %w", err)
	}

	return nil
}

func (s *Service) LogDirectory(ctx context.Context) (string, error) {
	snapshot, err := s.store.LoadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load accounts: %w", err)
	}

	return snapshot.LogDirectory, nil
}

func (s *Service) SetLogDirectory(ctx context.Context, dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return fmt.Errorf("log directory is required")
	}

	if err := s.store.SetLogDirectory(ctx, dir); err != nil {
		return fmt.Errorf("save log directory: %w", err)
	}

	return nil
}

func (s *Service) account(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	snapshot, err := s.store.LoadAll(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("load accounts: %w", err)
	}

	account, ok := snapshot.Find(id)
	if !ok {
		return domain.Account{}, fmt.Errorf("account %s: %w", id, domain.ErrAccountNotFound)
	}

	return account, nil
}
