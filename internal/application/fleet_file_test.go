package application

import (
	"context"
	"path/filepath"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/twitch-chat-logger/internal/adapters/notify"
	tomlrepo "github.com/bnema/twitch-chat-logger/internal/adapters/repo/toml"
	"github.com/bnema/twitch-chat-logger/internal/domain"
	"github.com/bnema/twitch-chat-logger/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	ports.CredentialStore
	loads atomic.Int32
}

func (s *countingStore) LoadAll(ctx context.Context) (domain.Snapshot, error) {
	s.loads.Add(1)
	return s.CredentialStore.LoadAll(ctx)
}

func TestReconcilerRefreshWriteDoesNotDisturbRunningSessions(t *testing.T) {
	ctx := context.Background()
	repo, err := tomlrepo.NewRepository(filepath.Join(t.TempDir(), "accounts.toml"))
	require.NoError(t, err)
	require.NoError(t, repo.UpsertAccount(ctx, "1", "alice", domain.Credentials{AccessToken: "a1", RefreshToken: "r1"}))
	_, err = repo.EditChannels(ctx, "1", func([]string) ([]string, error) {
		return []string{"lobby"}, nil
	})
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	watcher := notify.NewFileWatcher(repo.Path(), nil)
	require.NoError(t, watcher.Start(runCtx))
	defer func() { _ = watcher.Close() }()

	store := &countingStore{CredentialStore: repo}
	fleet := newFakeFleet()
	reconciler := NewReconciler(store, fleet.factory, ReconcilerConfig{
		InitTimeout:     time.Second,
		ShutdownTimeout: time.Second,
	}, nil)
	done := make(chan error, 1)
	go func() {
		done <- reconciler.Run(runCtx, watcher.Changes())
	}()

	require.Eventually(t, func() bool {
		return slices.Equal(reconciler.Members(), []domain.AccountID{"1"})
	}, 2*time.Second, 10*time.Millisecond)
	session := fleet.sessionsFor("1")[0]
	loadsBefore := store.loads.Load()

	session.params.OnRefresh("1", domain.Credentials{AccessToken: "a2", RefreshToken: "r2"})

	require.Eventually(t, func() bool {
		snapshot, err := repo.LoadAll(ctx)
		return err == nil && len(snapshot.Accounts) == 1 && snapshot.Accounts[0].Credentials.AccessToken == "a2"
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return store.loads.Load() > loadsBefore
	}, 2*time.Second, 10*time.Millisecond, "the rewrite should reach the reconciler as a change")

	assert.Never(t, func() bool {
		return len(session.channelUpdates()) > 0 || fleet.created() > 1
	}, 200*time.Millisecond, 10*time.Millisecond)

	_, err = repo.EditChannels(ctx, "1", func(current []string) ([]string, error) {
		return append(current, "news"), nil
	})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([][]string{{"lobby", "news"}}, session.channelUpdates())
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 1, session.shutdownCount())
	assert.Equal(t, 1, fleet.created())
}

func TestServiceConcurrentChannelEditsKeepEveryChannel(t *testing.T) {
	ctx := context.Background()
	repo, err := tomlrepo.NewRepository(filepath.Join(t.TempDir(), "accounts.toml"))
	require.NoError(t, err)
	require.NoError(t, repo.UpsertAccount(ctx, "1", "alice", domain.Credentials{AccessToken: "a1"}))

	service := NewService(repo)
	channels := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta"}

	errs := make(chan error, len(channels))
	for _, channel := range channels {
		go func() {
			_, err := service.AddChannels(ctx, "1", channel)
			errs <- err
		}()
	}
	for range channels {
		require.NoError(t, <-errs)
	}

	status, err := service.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status.Accounts, 1)
	assert.ElementsMatch(t, channels, status.Accounts[0].Channels)
}
