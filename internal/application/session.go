package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/twitch-chat-logger/internal/domain"
	"github.com/bnema/twitch-chat-logger/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RefreshFunc receives credentials rotated by the remote endpoint.
type RefreshFunc func(id domain.AccountID, credentials domain.Credentials)

type SessionParams struct {
	Account      domain.Account
	LogDirectory string
	OnRefresh    RefreshFunc
}

// FleetSession is the lifecycle surface the reconciler drives.
type FleetSession interface {
	Initialise(ctx context.Context, params SessionParams) error
	UpdateChannels(ctx context.Context, channels []string) error
	JoinedChannels() []string
	Shutdown(ctx context.Context) error
}

type SessionFactory func() FleetSession

// Session owns one account's chat connection and forwards its events to the
// log sink.
type Session struct {
	instanceID string
	dialer     ports.ChatDialer
	sinks      ports.SinkFactory
	clock      ports.Clock
	logger     *zap.Logger

	mu            sync.Mutex
	state         domain.SessionState
	accountID     domain.AccountID
	conn          ports.ChatConn
	joined        []string
	stopRequested bool
	initDone      chan struct{}
	pumpDone      chan struct{}
}

var _ FleetSession = (*Session)(nil)

func NewSession(dialer ports.ChatDialer, sinks ports.SinkFactory, clock ports.Clock, logger *zap.Logger) *Session {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	instanceID := uuid.NewString()

	return &Session{
		instanceID: instanceID,
		dialer:     dialer,
		sinks:      sinks,
		clock:      clock,
		logger:     logger.With(zap.String("session", instanceID)),
		state:      domain.SessionCreated,
	}
}

// NewSessionFactory builds sessions sharing one dialer, sink factory and logger.
func NewSessionFactory(dialer ports.ChatDialer, sinks ports.SinkFactory, clock ports.Clock, logger *zap.Logger) SessionFactory {
	return func() FleetSession {
		return NewSession(dialer, sinks, clock, logger)
	}
}

func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// JoinedChannels returns the channels the connection is currently joined to.
func (s *Session) JoinedChannels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.joined...)
}

// Initialise connects, authenticates and joins the account's channels. On a
// connection failure the session returns to Created.
func (s *Session) Initialise(ctx context.Context, params SessionParams) error {
	account := params.Account

	s.mu.Lock()
	switch s.state {
	case domain.SessionCreated:
	case domain.SessionStopped:
		s.mu.Unlock()
		return fmt.Errorf("initialise session for %s: %w", account.ID, domain.ErrSessionStopped)
	default:
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("initialise session for %s: already %s", account.ID, state)
	}
	s.state = domain.SessionInitializing
	s.accountID = account.ID
	s.initDone = make(chan struct{})
	initDone := s.initDone
	s.mu.Unlock()
	defer close(initDone)

	logger := s.logger.With(zap.String("account", string(account.ID)), zap.String("login", account.Login))
	logger.Info("initialising chat session", zap.Int("channels", len(account.Channels)))

	conn, err := s.dialer.Dial(ctx, ports.DialRequest{
		Login:       account.Login,
		Credentials: account.Credentials,
		OnRefresh:   s.refreshHandler(account.ID, params.OnRefresh, logger),
	})

	s.mu.Lock()
	if err != nil {
		if s.stopRequested {
			s.state = domain.SessionStopped
		} else {
			s.state = domain.SessionCreated
		}
		s.mu.Unlock()
		return fmt.Errorf("connect chat for %s: %w: %w", account.ID, domain.ErrSessionInit, err)
	}
	if s.stopRequested {
		s.state = domain.SessionStopped
		s.mu.Unlock()
		if closeErr := conn.Close(); closeErr != nil {
			logger.Warn("close connection after shutdown during initialisation", zap.Error(closeErr))
		}
		return fmt.Errorf("initialise session for %s: %w", account.ID, domain.ErrSessionStopped)
	}
	s.conn = conn
	s.state = domain.SessionJoined
	s.pumpDone = make(chan struct{})
	pumpDone := s.pumpDone
	s.mu.Unlock()

	var sink ports.EventSink
	if s.sinks != nil {
		sink = s.sinks(params.LogDirectory)
	}
	go s.pump(conn, sink, logger, pumpDone)

	channels := domain.NormalizeChannels(account.Channels)
	if len(channels) == 0 {
		logger.Info("chat session ready, no channels configured")
		return nil
	}

	if err := conn.Join(ctx, channels...); err != nil {
		logger.Warn("join channels; will retry on next reconciliation", zap.Strings("channels", channels), zap.Error(err))
		return nil
	}

	s.mu.Lock()
	s.joined = channels
	s.mu.Unlock()

	logger.Info("chat session joined", zap.Strings("channels", channels))
	return nil
}

// UpdateChannels joins and leaves only the difference between the joined
// channels and the desired set.
func (s *Session) UpdateChannels(ctx context.Context, channels []string) error {
	desired := domain.NormalizeChannels(channels)

	s.mu.Lock()
	if s.state != domain.SessionJoined {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("update channels in state %s: %w", state, domain.ErrSessionNotJoined)
	}
	conn := s.conn
	current := append([]string(nil), s.joined...)
	s.mu.Unlock()

	join, leave := domain.ChannelDelta(current, desired)
	if len(join) == 0 && len(leave) == 0 {
		return nil
	}

	var errs error
	left := map[string]struct{}{}
	if len(leave) > 0 {
		if err := conn.Leave(ctx, leave...); err != nil {
			errs = errors.Join(errs, fmt.Errorf("leave channels: %w", err))
		} else {
			for _, channel := range leave {
				left[channel] = struct{}{}
			}
		}
	}

	next := make([]string, 0, len(current)+len(join))
	for _, channel := range current {
		if _, ok := left[channel]; !ok {
			next = append(next, channel)
		}
	}

	if len(join) > 0 {
		if err := conn.Join(ctx, join...); err != nil {
			errs = errors.Join(errs, fmt.Errorf("join channels: %w", err))
		} else {
			next = append(next, join...)
		}
	}

	s.mu.Lock()
	s.joined = next
	s.mu.Unlock()

	s.logger.Info("channels updated",
		zap.String("account", string(s.accountID)),
		zap.Strings("joined", join),
		zap.Strings("left", leave),
		zap.Error(errs),
	)

	return errs
}

// Shutdown releases the connection. It is safe to call repeatedly and while
// initialisation is still in flight.
func (s *Session) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case domain.SessionStopped:
		s.mu.Unlock()
		return nil
	case domain.SessionCreated:
		s.state = domain.SessionStopped
		s.mu.Unlock()
		return nil
	case domain.SessionInitializing:
		s.stopRequested = true
		initDone := s.initDone
		s.mu.Unlock()

		select {
		case <-initDone:
			return nil
		case <-ctx.Done():
			return fmt.Errorf("await session initialisation: %w", ctx.Err())
		}
	case domain.SessionShuttingDown:
		pumpDone := s.pumpDone
		s.mu.Unlock()

		return s.awaitPump(ctx, pumpDone)
	}

	s.state = domain.SessionShuttingDown
	conn := s.conn
	pumpDone := s.pumpDone
	s.mu.Unlock()

	s.logger.Info("shutting down chat session", zap.String("account", string(s.accountID)))

	closeErr := conn.Close()
	waitErr := s.awaitPump(ctx, pumpDone)

	s.mu.Lock()
	s.state = domain.SessionStopped
	s.conn = nil
	s.joined = nil
	s.mu.Unlock()

	if closeErr != nil {
		return fmt.Errorf("close chat connection: %w", closeErr)
	}

	return waitErr
}

func (s *Session) awaitPump(ctx context.Context, pumpDone <-chan struct{}) error {
	select {
	case <-pumpDone:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("await event pump: %w", ctx.Err())
	}
}

func (s *Session) pump(conn ports.ChatConn, sink ports.EventSink, logger *zap.Logger, done chan<- struct{}) {
	defer close(done)

	for event := range conn.Events() {
		if sink == nil {
			continue
		}

		entry := domain.NewLogEntry(event, s.clock.Now())
		if err := sink.Append(context.Background(), entry); err != nil {
			logger.Warn("append chat event", zap.String("channel", entry.Channel), zap.Error(err))
		}
	}
}

func (s *Session) refreshHandler(id domain.AccountID, onRefresh RefreshFunc, logger *zap.Logger) func(domain.Credentials) {
	return func(credentials domain.Credentials) {
		state := s.State()
		if state == domain.SessionShuttingDown || state == domain.SessionStopped {
			logger.Debug("dropping credential refresh after shutdown")
			return
		}

		logger.Info("credentials refreshed by remote endpoint")
		if onRefresh != nil {
			onRefresh(id, credentials)
		}
	}
}
