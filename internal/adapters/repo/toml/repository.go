package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/twitch-chat-logger/internal/domain"
	"github.com/bnema/twitch-chat-logger/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	accountsFileMode = 0o600
	accountsDirMode  = 0o700
	tempFilePattern  = ".accounts-*.toml.tmp"
)

// Repository keeps the account fleet configuration in a single TOML file.
// Every mutation rewrites the whole file through a temp file and rename.
type Repository struct {
	accountsPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.CredentialStore = (*Repository)(nil)

func NewRepository(accountsPath string) (*Repository, error) {
	if accountsPath == "" {
		return nil, errors.New("accounts path is empty")
	}
	accountsPath, err := normalizeAccountsPath(accountsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{accountsPath: accountsPath, mu: lockForPath(accountsPath)}, nil
}

func (r *Repository) Path() string {
	return r.accountsPath
}

func (r *Repository) LoadAll(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.readDocument()
	if err != nil {
		return domain.Snapshot{}, err
	}

	accounts := make([]domain.Account, 0, len(doc.file.Accounts))
	for _, entry := range doc.file.Accounts {
		accounts = append(accounts, fromSchema(entry))
	}

	return domain.Snapshot{LogDirectory: doc.file.LogDirectory, Accounts: accounts}, nil
}

func (r *Repository) UpsertAccount(ctx context.Context, id domain.AccountID, login string, credentials domain.Credentials) error {
	return r.mutate(ctx, func(file *fileSchema) bool {
		updated := false
		for i := range file.Accounts {
			if file.Accounts[i].ID != string(id) {
				continue
			}
			file.Accounts[i].Login = login
			file.Accounts[i].AccessToken = credentials.AccessToken
			file.Accounts[i].RefreshToken = credentials.RefreshToken
			updated = true
		}

		if !updated {
			file.Accounts = append(file.Accounts, accountSchema{
				ID:           string(id),
				Login:        login,
				AccessToken:  credentials.AccessToken,
				RefreshToken: credentials.RefreshToken,
				Channels:     []string{},
			})
		}

		return true
	})
}

func (r *Repository) UpdateCredentials(ctx context.Context, id domain.AccountID, credentials domain.Credentials) error {
	return r.mutate(ctx, func(file *fileSchema) bool {
		changed := false
		for i := range file.Accounts {
			if file.Accounts[i].ID != string(id) {
				continue
			}
			file.Accounts[i].AccessToken = credentials.AccessToken
			file.Accounts[i].RefreshToken = credentials.RefreshToken
			changed = true
		}

		return changed
	})
}

func (r *Repository) RemoveAccount(ctx context.Context, id domain.AccountID) error {
	return r.mutate(ctx, func(file *fileSchema) bool {
		kept := file.Accounts[:0]
		for _, entry := range file.Accounts {
			if entry.ID != string(id) {
				kept = append(kept, entry)
			}
		}
		changed := len(kept) != len(file.Accounts)
		file.Accounts = kept

		return changed
	})
}

// EditChannels runs edit against the stored channel set under the write
// lock, so concurrent edits never overwrite each other.
func (r *Repository) EditChannels(ctx context.Context, id domain.AccountID, edit ports.ChannelEdit) ([]string, error) {
	var (
		found   bool
		next    []string
		editErr error
	)
	err := r.mutate(ctx, func(file *fileSchema) bool {
		for i := range file.Accounts {
			if file.Accounts[i].ID != string(id) {
				continue
			}
			found = true

			current := domain.NormalizeChannels(file.Accounts[i].Channels)
			edited, err := edit(current)
			if err != nil {
				editErr = err
				return false
			}
			next = domain.NormalizeChannels(edited)
			for _, channel := range next {
				if err := domain.ValidateChannel(channel); err != nil {
					editErr = err
					return false
				}
			}
			file.Accounts[i].Channels = append([]string{}, next...)
			return true
		}

		return false
	})
	if err != nil {
		return nil, err
	}
	if editErr != nil {
		return nil, editErr
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}

	return next, nil
}

func (r *Repository) SetLogDirectory(ctx context.Context, dir string) error {
	return r.mutate(ctx, func(file *fileSchema) bool {
		if file.LogDirectory == dir {
			return false
		}
		file.LogDirectory = dir
		return true
	})
}

// mutate runs a read-modify-write cycle under the path's write lock. The
// file is rewritten only when apply reports a change.
func (r *Repository) mutate(ctx context.Context, apply func(file *fileSchema) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readDocument()
	if err != nil {
		return err
	}

	if !apply(&doc.file) {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeDocument(doc)
}

func (r *Repository) readDocument() (document, error) {
	data, err := os.ReadFile(r.accountsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := document{}
			doc.file.applyDefaults()
			return doc, nil
		}
		return document{}, storageError("read accounts file", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return document{}, storageError("decode accounts file", err)
	}
	if err := file.validateVersion(); err != nil {
		return document{}, storageError("validate accounts file", err)
	}
	file.applyDefaults()

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return document{}, storageError("decode accounts file", err)
	}

	extra := make(map[string]any)
	for key, value := range raw {
		if !isKnownKey(key) {
			extra[key] = value
		}
	}

	return document{file: file, extra: extra}, nil
}

func (r *Repository) writeDocument(doc document) error {
	doc.file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.accountsPath), accountsDirMode); err != nil {
		return storageError("create accounts directory", err)
	}

	out := make(map[string]any, len(doc.extra)+3)
	for key, value := range doc.extra {
		out[key] = value
	}
	accounts := doc.file.Accounts
	if accounts == nil {
		accounts = []accountSchema{}
	}
	for i := range accounts {
		if accounts[i].Channels == nil {
			accounts[i].Channels = []string{}
		}
	}
	out[keyVersion] = doc.file.Version
	out[keyLogDirectory] = doc.file.LogDirectory
	out[keyAccounts] = accounts

	data, err := toml.Marshal(out)
	if err != nil {
		return storageError("encode accounts file", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.accountsPath), tempFilePattern)
	if err != nil {
		return storageError("create temp accounts file", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return storageError("write temp accounts file", err)
	}

	if err := tempFile.Chmod(accountsFileMode); err != nil {
		_ = tempFile.Close()
		return storageError("chmod temp accounts file", err)
	}

	if err := tempFile.Close(); err != nil {
		return storageError("close temp accounts file", err)
	}

	if err := os.Rename(tempName, r.accountsPath); err != nil {
		return storageError("replace accounts file", err)
	}

	cleanup = false

	return nil
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

func normalizeAccountsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve accounts path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func fromSchema(entry accountSchema) domain.Account {
	return domain.Account{
		ID:    domain.AccountID(entry.ID),
		Login: entry.Login,
		Credentials: domain.Credentials{
			AccessToken:  entry.AccessToken,
			RefreshToken: entry.RefreshToken,
		},
		Channels: domain.NormalizeChannels(entry.Channels),
	}
}
