package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bnema/twitch-chat-logger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")
	repo, err := NewRepository(accountsPath)
	require.NoError(t, err)

	return repo, accountsPath
}

func TestRepositoryLoadAllMissingFileReturnsEmptySnapshot(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	snapshot, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Accounts)
	assert.Empty(t, snapshot.LogDirectory)
}

func TestRepositoryUpsertThenLoadRoundTrip(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertAccount(ctx, "u1", "first", domain.Credentials{AccessToken: "a", RefreshToken: "r"}))

	snapshot, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Accounts, 1)

	got := snapshot.Accounts[0]
	assert.Equal(t, domain.AccountID("u1"), got.ID)
	assert.Equal(t, "first", got.Login)
	assert.Equal(t, domain.Credentials{AccessToken: "a", RefreshToken: "r"}, got.Credentials)
	assert.Empty(t, got.Channels)
}

func TestRepositoryUpsertExistingPreservesChannels(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertAccount(ctx, "u1", "first", domain.Credentials{AccessToken: "a", RefreshToken: "r"}))
	replaceChannels(t, repo, "u1", "alpha", "beta")
	require.NoError(t, repo.UpsertAccount(ctx, "u1", "renamed", domain.Credentials{AccessToken: "a2", RefreshToken: "r2"}))

	snapshot, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Accounts, 1)
	assert.Equal(t, "renamed", snapshot.Accounts[0].Login)
	assert.Equal(t, domain.Credentials{AccessToken: "a2", RefreshToken: "r2"}, snapshot.Accounts[0].Credentials)
	assert.Equal(t, []string{"alpha", "beta"}, snapshot.Accounts[0].Channels)
}

func TestRepositoryUpdateCredentialsLeavesLoginAndChannels(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertAccount(ctx, "u1", "first", domain.Credentials{AccessToken: "a", RefreshToken: "r"}))
	replaceChannels(t, repo, "u1", "alpha")
	require.NoError(t, repo.UpdateCredentials(ctx, "u1", domain.Credentials{AccessToken: "new-a", RefreshToken: "new-r"}))

	snapshot, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Accounts, 1)
	assert.Equal(t, "first", snapshot.Accounts[0].Login)
	assert.Equal(t, []string{"alpha"}, snapshot.Accounts[0].Channels)
	assert.Equal(t, domain.Credentials{AccessToken: "new-a", RefreshToken: "new-r"}, snapshot.Accounts[0].Credentials)
}

func TestRepositoryUpdateCredentialsUnknownAccountIsNoop(t *testing.T) {
	t.Parallel()

	repo, accountsPath := newTestRepository(t)

	require.NoError(t, repo.UpdateCredentials(context.Background(), "ghost", domain.Credentials{AccessToken: "a"}))

	_, err := os.Stat(accountsPath)
	assert.True(t, os.IsNotExist(err), "no-op update must not create the file")
}

func TestRepositoryRemoveAccountIsIdempotent(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertAccount(ctx, "u1", "first", domain.Credentials{AccessToken: "a"}))
	require.NoError(t, repo.UpsertAccount(ctx, "u2", "second", domain.Credentials{AccessToken: "b"}))

	require.NoError(t, repo.RemoveAccount(ctx, "u1"))
	require.NoError(t, repo.RemoveAccount(ctx, "u1"))
	require.NoError(t, repo.RemoveAccount(ctx, "never-existed"))

	snapshot, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Accounts, 1)
	assert.Equal(t, domain.AccountID("u2"), snapshot.Accounts[0].ID)
}

func TestRepositoryEditChannelsNormalizesAndRejectsUnknownAccount(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.EditChannels(ctx, "ghost", func([]string) ([]string, error) {
		return []string{"alpha"}, nil
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	require.NoError(t, repo.UpsertAccount(ctx, "u1", "first", domain.Credentials{AccessToken: "a"}))
	stored, err := repo.EditChannels(ctx, "u1", func([]string) ([]string, error) {
		return []string{"#Alpha", "beta", "alpha", ""}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, stored)

	snapshot, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, snapshot.Accounts[0].Channels)

	_, err = repo.EditChannels(ctx, "u1", func(current []string) ([]string, error) {
		return append(current, "../escape"), nil
	})
	require.ErrorIs(t, err, domain.ErrInvalidChannel)

	snapshot, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, snapshot.Accounts[0].Channels)
}

func TestRepositoryEditChannelsSeesCurrentSetAndPropagatesErrors(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertAccount(ctx, "u1", "first", domain.Credentials{AccessToken: "a"}))
	replaceChannels(t, repo, "u1", "alpha", "beta")

	var seen []string
	stored, err := repo.EditChannels(ctx, "u1", func(current []string) ([]string, error) {
		seen = current
		return current[1:], nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, seen)
	assert.Equal(t, []string{"beta"}, stored)

	editErr := errors.New("rejected")
	_, err = repo.EditChannels(ctx, "u1", func([]string) ([]string, error) {
		return nil, editErr
	})
	require.ErrorIs(t, err, editErr)

	snapshot, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, snapshot.Accounts[0].Channels)
}

func TestRepositoryConcurrentChannelEditsDoNotLoseUpdates(t *testing.T) {
	t.Parallel()

	repo, accountsPath := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.UpsertAccount(ctx, "u1", "first", domain.Credentials{AccessToken: "a"}))

	const editors = 16
	var wg sync.WaitGroup
	for i := range editors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			other, err := NewRepository(accountsPath)
			if !assert.NoError(t, err) {
				return
			}
			_, err = other.EditChannels(ctx, "u1", func(current []string) ([]string, error) {
				return append(current, fmt.Sprintf("channel%02d", i)), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snapshot, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Accounts[0].Channels, editors)
}

func TestRepositorySetLogDirectory(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SetLogDirectory(ctx, "/var/log/tcl"))

	snapshot, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/var/log/tcl", snapshot.LogDirectory)
}

func TestRepositoryLoadAllRejectsMalformedFile(t *testing.T) {
	t.Parallel()

	repo, accountsPath := newTestRepository(t)
	require.NoError(t, os.WriteFile(accountsPath, []byte("[[accounts]\nid = "), 0o600))

	_, err := repo.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorContains(t, err, "decode accounts file")
}

func TestRepositoryMutationOnMalformedFileLeavesItUntouched(t *testing.T) {
	t.Parallel()

	repo, accountsPath := newTestRepository(t)
	malformed := []byte("version = \"one\"\n")
	require.NoError(t, os.WriteFile(accountsPath, malformed, 0o600))

	err := repo.UpsertAccount(context.Background(), "u1", "first", domain.Credentials{AccessToken: "a"})
	require.ErrorIs(t, err, domain.ErrStorage)

	data, err := os.ReadFile(accountsPath)
	require.NoError(t, err)
	assert.Equal(t, malformed, data)
}

func TestRepositoryRejectsNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	repo, accountsPath := newTestRepository(t)
	require.NoError(t, os.WriteFile(accountsPath, []byte("version = 99\n"), 0o600))

	_, err := repo.LoadAll(context.Background())
	require.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorContains(t, err, "unsupported accounts schema version 99")
}

func TestRepositoryReadsHandWrittenFile(t *testing.T) {
	t.Parallel()

	repo, accountsPath := newTestRepository(t)
	require.NoError(t, os.WriteFile(accountsPath, []byte(strings.Join([]string{
		"log_directory = \"/srv/logs\"",
		"",
		"[[accounts]]",
		"id = \"12345\"",
		"login = \"somebot\"",
		"access_token = \"at\"",
		"refresh_token = \"rt\"",
		"channels = [\"Alpha\", \"#beta\"]",
		"",
	}, "\n")), 0o600))

	snapshot, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/srv/logs", snapshot.LogDirectory)
	require.Len(t, snapshot.Accounts, 1)
	assert.Equal(t, domain.Account{
		ID:          "12345",
		Login:       "somebot",
		Credentials: domain.Credentials{AccessToken: "at", RefreshToken: "rt"},
		Channels:    []string{"alpha", "beta"},
	}, snapshot.Accounts[0])
}

func TestRepositoryRewritePreservesUnknownTopLevelKeys(t *testing.T) {
	t.Parallel()

	repo, accountsPath := newTestRepository(t)
	require.NoError(t, os.WriteFile(accountsPath, []byte(strings.Join([]string{
		"version = 1",
		"operator = \"alice\"",
		"",
		"[notes]",
		"owner = \"ops\"",
		"",
	}, "\n")), 0o600))

	require.NoError(t, repo.UpsertAccount(context.Background(), "u1", "first", domain.Credentials{AccessToken: "a"}))

	data, err := os.ReadFile(accountsPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "operator = ")
	assert.Contains(t, content, "alice")
	assert.Contains(t, content, "[notes]")
	assert.Contains(t, content, "owner = ")

	snapshot, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Accounts, 1)
}

func TestRepositoryWriteEnforcesPermissions(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "nested", "accounts.toml")
	repo, err := NewRepository(accountsPath)
	require.NoError(t, err)

	require.NoError(t, repo.UpsertAccount(context.Background(), "u1", "first", domain.Credentials{AccessToken: "a"}))

	info, err := os.Stat(accountsPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(accountsFileMode), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(accountsPath))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(accountsDirMode), dirInfo.Mode().Perm())
}

func TestRepositoryConcurrentUpsertsDoNotLoseAccounts(t *testing.T) {
	t.Parallel()

	repo, accountsPath := newTestRepository(t)
	other, err := NewRepository(accountsPath)
	require.NoError(t, err)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := repo
			if i%2 == 1 {
				target = other
			}
			id := domain.AccountID(string(rune('a' + i)))
			assert.NoError(t, target.UpsertAccount(context.Background(), id, "login", domain.Credentials{AccessToken: "a"}))
		}(i)
	}
	wg.Wait()

	snapshot, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.Accounts, writers)
}

func replaceChannels(t *testing.T, repo *Repository, id domain.AccountID, channels ...string) {
	t.Helper()

	_, err := repo.EditChannels(context.Background(), id, func([]string) ([]string, error) {
		return channels, nil
	})
	require.NoError(t, err)
}
