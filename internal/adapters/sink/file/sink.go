package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/twitch-chat-logger/internal/domain"
	"github.com/bnema/twitch-chat-logger/internal/ports"
)

const (
	logDirMode  = 0o755
	logFileMode = 0o644
)

// Sink appends chat lines to <root>/<channel>/<YYYY>/<MM>/<channel>-<YYYY>-<MM>-<DD>.txt.
// Files and directories are created on first use and never truncated.
type Sink struct {
	root string
	mu   *sync.Mutex
}

var (
	lockRegistryMu sync.Mutex
	rootLockMap    = map[string]*sync.Mutex{}
)

var _ ports.EventSink = (*Sink)(nil)

func NewSink(root string) *Sink {
	root = filepath.Clean(root)
	return &Sink{root: root, mu: lockForRoot(root)}
}

// Factory opens sinks for the log directory named in the configuration.
func Factory() ports.SinkFactory {
	return func(logDirectory string) ports.EventSink {
		return NewSink(logDirectory)
	}
}

func (s *Sink) Append(ctx context.Context, entry domain.LogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.PathFor(entry)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), logDirMode); err != nil {
		return fmt.Errorf("create log directory: %w: %w", domain.ErrSinkWrite, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode)
	if err != nil {
		return fmt.Errorf("open log file %q: %w: %w", path, domain.ErrSinkWrite, err)
	}

	if _, err := f.WriteString(entry.Line + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("append log line to %q: %w: %w", path, domain.ErrSinkWrite, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close log file %q: %w: %w", path, domain.ErrSinkWrite, err)
	}

	return nil
}

// PathFor returns the file an entry is appended to.
func (s *Sink) PathFor(entry domain.LogEntry) (string, error) {
	if err := domain.ValidateChannel(entry.Channel); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSinkWrite, err)
	}

	at := entry.At
	name := fmt.Sprintf("%s-%04d-%02d-%02d.txt", entry.Channel, at.Year(), int(at.Month()), at.Day())

	return filepath.Join(
		s.root,
		entry.Channel,
		fmt.Sprintf("%04d", at.Year()),
		fmt.Sprintf("%02d", int(at.Month())),
		name,
	), nil
}

func lockForRoot(root string) *sync.Mutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := rootLockMap[root]; ok {
		return mu
	}

	mu := &sync.Mutex{}
	rootLockMap[root] = mu
	return mu
}
