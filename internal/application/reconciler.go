package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/twitch-chat-logger/internal/domain"
	"github.com/bnema/twitch-chat-logger/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrReconcilerRunning = errors.New("reconciler already running")

const (
	DefaultInitTimeout     = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

type ReconcilerConfig struct {
	// InitTimeout bounds Initialise and UpdateChannels calls.
	InitTimeout     time.Duration
	ShutdownTimeout time.Duration
	// ResyncInterval enables a periodic pass when positive.
	ResyncInterval time.Duration
}

// PassResult summarises one reconciliation pass.
type PassResult struct {
	Started []domain.AccountID
	Updated []domain.AccountID
	Stopped []domain.AccountID
	Failed  []domain.AccountID
}

func (p PassResult) empty() bool {
	return len(p.Started) == 0 && len(p.Updated) == 0 && len(p.Stopped) == 0 && len(p.Failed) == 0
}

// Reconciler keeps the set of running sessions equal to the configured
// accounts. Membership is owned by the goroutine running Run.
type Reconciler struct {
	store      ports.CredentialStore
	newSession SessionFactory
	logger     *zap.Logger
	cfg        ReconcilerConfig

	running atomic.Bool
	trigger chan struct{}

	refreshMu      sync.Mutex
	pendingRefresh map[domain.AccountID]domain.Credentials
	refreshSignal  chan struct{}

	membersMu sync.RWMutex
	members   []domain.AccountID

	fleet   map[domain.AccountID]FleetSession
	desired map[domain.AccountID]struct{}
}

func NewReconciler(store ports.CredentialStore, newSession SessionFactory, cfg ReconcilerConfig, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.InitTimeout <= 0 {
		cfg.InitTimeout = DefaultInitTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	return &Reconciler{
		store:          store,
		newSession:     newSession,
		logger:         logger,
		cfg:            cfg,
		trigger:        make(chan struct{}, 1),
		pendingRefresh: map[domain.AccountID]domain.Credentials{},
		refreshSignal:  make(chan struct{}, 1),
		fleet:          map[domain.AccountID]FleetSession{},
		desired:        map[domain.AccountID]struct{}{},
	}
}

// Run reconciles once, then again on every change signal until ctx is
// cancelled. On cancellation every session is shut down and pending
// credential refreshes are persisted before Run returns.
func (r *Reconciler) Run(ctx context.Context, changes <-chan struct{}) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrReconcilerRunning
	}
	defer r.running.Store(false)

	opCtx := context.WithoutCancel(ctx)

	var resync <-chan time.Time
	if r.cfg.ResyncInterval > 0 {
		ticker := time.NewTicker(r.cfg.ResyncInterval)
		defer ticker.Stop()
		resync = ticker.C
	}

	r.logger.Info("reconciler started")
	_, _ = r.pass(opCtx)

	for {
		if ctx.Err() != nil {
			return r.drain(opCtx)
		}

		select {
		case <-ctx.Done():
			return r.drain(opCtx)
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
		case <-r.trigger:
		case <-resync:
		case <-r.refreshSignal:
			r.applyRefreshes(opCtx)
			continue
		}

		changes = r.collectTriggers(changes, resync)
		_, _ = r.pass(opCtx)
	}
}

// collectTriggers consumes every request already pending on any source, so a
// burst across sources during a pass yields a single follow-up pass.
func (r *Reconciler) collectTriggers(changes <-chan struct{}, resync <-chan time.Time) <-chan struct{} {
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				changes = nil
			}
		case <-r.trigger:
		case <-resync:
		default:
			return changes
		}
	}
}

// Reconcile runs a single pass. It is meant for one-shot use and fails while
// Run is active.
func (r *Reconciler) Reconcile(ctx context.Context) (PassResult, error) {
	if !r.running.CompareAndSwap(false, true) {
		return PassResult{}, ErrReconcilerRunning
	}
	defer r.running.Store(false)

	return r.pass(ctx)
}

// Trigger requests a pass. Requests made while a pass is pending collapse
// into one.
func (r *Reconciler) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// HandleGrant persists a freshly authorized account. The session change is
// picked up by the next pass.
func (r *Reconciler) HandleGrant(ctx context.Context, grant domain.Grant) error {
	if err := grant.Validate(); err != nil {
		return err
	}

	if err := r.store.UpsertAccount(ctx, grant.ID, grant.Login, grant.Credentials); err != nil {
		return fmt.Errorf("save authorized account: %w", err)
	}

	r.logger.Info("account authorized", zap.String("account", string(grant.ID)), zap.String("login", grant.Login))
	return nil
}

// Members returns the ids of the running sessions in sorted order.
func (r *Reconciler) Members() []domain.AccountID {
	r.membersMu.RLock()
	defer r.membersMu.RUnlock()

	return slices.Clone(r.members)
}

func (r *Reconciler) pass(ctx context.Context) (PassResult, error) {
	logger := r.logger.With(zap.String("pass", uuid.NewString()))

	snapshot, err := r.store.LoadAll(ctx)
	if err != nil {
		logger.Error("load configuration, fleet left unchanged", zap.Error(err))
		return PassResult{}, fmt.Errorf("load configuration: %w", err)
	}
	if err := snapshot.Validate(); err != nil {
		logger.Error("invalid configuration, fleet left unchanged", zap.Error(err))
		return PassResult{}, fmt.Errorf("validate configuration: %w", err)
	}

	desired := snapshot.Desired()
	result := r.apply(ctx, logger, desired, snapshot.LogDirectory)

	r.desired = make(map[domain.AccountID]struct{}, len(desired))
	for id := range desired {
		r.desired[id] = struct{}{}
	}

	level := zap.InfoLevel
	if result.empty() {
		level = zap.DebugLevel
	}
	logger.Log(level, "reconciliation pass complete",
		zap.Int("members", len(r.fleet)),
		zap.Int("started", len(result.Started)),
		zap.Int("updated", len(result.Updated)),
		zap.Int("stopped", len(result.Stopped)),
		zap.Int("failed", len(result.Failed)),
	)

	r.applyRefreshes(ctx)

	return result, nil
}

// apply drives the fleet towards desired. Operations on different accounts
// run concurrently; membership is only changed here, after they all return.
func (r *Reconciler) apply(ctx context.Context, logger *zap.Logger, desired map[domain.AccountID]domain.Account, logDirectory string) PassResult {
	var (
		mu      sync.Mutex
		result  PassResult
		started = map[domain.AccountID]FleetSession{}
		g       errgroup.Group
	)

	record := func(list *[]domain.AccountID, id domain.AccountID) {
		mu.Lock()
		defer mu.Unlock()
		*list = append(*list, id)
	}

	for id, account := range desired {
		if session, ok := r.fleet[id]; ok {
			if joinedAll(session, account.Channels) {
				continue
			}
			g.Go(func() error {
				if err := r.updateSession(ctx, session, account); err != nil {
					logger.Warn("update channels", zap.String("account", string(id)), zap.Error(err))
					record(&result.Failed, id)
					return nil
				}
				record(&result.Updated, id)
				return nil
			})
			continue
		}

		g.Go(func() error {
			session, err := r.startSession(ctx, account, logDirectory)
			if err != nil {
				logger.Warn("start session, will retry on next pass", zap.String("account", string(id)), zap.Error(err))
				record(&result.Failed, id)
				return nil
			}

			mu.Lock()
			started[id] = session
			mu.Unlock()
			record(&result.Started, id)
			return nil
		})
	}

	for id, session := range r.fleet {
		if _, ok := desired[id]; ok {
			continue
		}

		g.Go(func() error {
			if err := r.stopSession(ctx, session); err != nil {
				logger.Warn("shut down session", zap.String("account", string(id)), zap.Error(err))
			}
			record(&result.Stopped, id)
			return nil
		})
	}

	_ = g.Wait()

	for id, session := range started {
		r.fleet[id] = session
	}
	for _, id := range result.Stopped {
		delete(r.fleet, id)
	}
	r.publishMembers()

	slices.Sort(result.Started)
	slices.Sort(result.Updated)
	slices.Sort(result.Stopped)
	slices.Sort(result.Failed)

	return result
}

func (r *Reconciler) startSession(ctx context.Context, account domain.Account, logDirectory string) (FleetSession, error) {
	session := r.newSession()
	params := SessionParams{
		Account:      account,
		LogDirectory: logDirectory,
		OnRefresh:    r.enqueueRefresh,
	}

	err := runBounded(ctx, r.cfg.InitTimeout, func(ctx context.Context) error {
		return session.Initialise(ctx, params)
	}, func() {
		r.logger.Info("initialisation finished after timeout, shutting session down", zap.String("account", string(account.ID)))
		if err := r.stopSession(context.WithoutCancel(ctx), session); err != nil {
			r.logger.Warn("shut down abandoned session", zap.String("account", string(account.ID)), zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// joinedAll reports whether session is joined to exactly channels, in which
// case the pass leaves it alone.
func joinedAll(session FleetSession, channels []string) bool {
	join, leave := domain.ChannelDelta(session.JoinedChannels(), domain.NormalizeChannels(channels))
	return len(join) == 0 && len(leave) == 0
}

func (r *Reconciler) updateSession(ctx context.Context, session FleetSession, account domain.Account) error {
	return runBounded(ctx, r.cfg.InitTimeout, func(ctx context.Context) error {
		return session.UpdateChannels(ctx, account.Channels)
	}, nil)
}

func (r *Reconciler) stopSession(ctx context.Context, session FleetSession) error {
	return runBounded(ctx, r.cfg.ShutdownTimeout, session.Shutdown, nil)
}

// drain tears down the whole fleet and flushes pending refreshes.
func (r *Reconciler) drain(ctx context.Context) error {
	logger := r.logger.With(zap.String("pass", "shutdown"))
	logger.Info("shutting down fleet", zap.Int("members", len(r.fleet)))

	var errs error
	var g errgroup.Group
	var mu sync.Mutex
	for id, session := range r.fleet {
		g.Go(func() error {
			if err := r.stopSession(ctx, session); err != nil {
				mu.Lock()
				errs = errors.Join(errs, fmt.Errorf("shut down session %s: %w", id, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	clear(r.fleet)
	r.publishMembers()
	r.applyRefreshes(ctx)

	logger.Info("fleet stopped", zap.Error(errs))
	return errs
}

func (r *Reconciler) enqueueRefresh(id domain.AccountID, credentials domain.Credentials) {
	r.refreshMu.Lock()
	r.pendingRefresh[id] = credentials
	r.refreshMu.Unlock()

	select {
	case r.refreshSignal <- struct{}{}:
	default:
	}
}

func (r *Reconciler) applyRefreshes(ctx context.Context) {
	r.refreshMu.Lock()
	pending := r.pendingRefresh
	r.pendingRefresh = map[domain.AccountID]domain.Credentials{}
	r.refreshMu.Unlock()

	for id, credentials := range pending {
		logger := r.logger.With(zap.String("account", string(id)))

		_, member := r.fleet[id]
		_, configured := r.desired[id]
		if !member && !configured {
			logger.Info("discarding credential refresh for account no longer configured")
			continue
		}

		if err := r.store.UpdateCredentials(ctx, id, credentials); err != nil {
			logger.Error("persist refreshed credentials", zap.Error(err))
			r.requeueRefresh(id, credentials)
			continue
		}

		logger.Info("refreshed credentials persisted")
	}
}

// requeueRefresh keeps a failed refresh unless a newer one arrived meanwhile.
func (r *Reconciler) requeueRefresh(id domain.AccountID, credentials domain.Credentials) {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	if _, ok := r.pendingRefresh[id]; !ok {
		r.pendingRefresh[id] = credentials
	}
}

func (r *Reconciler) publishMembers() {
	members := make([]domain.AccountID, 0, len(r.fleet))
	for id := range r.fleet {
		members = append(members, id)
	}
	slices.Sort(members)

	r.membersMu.Lock()
	r.members = members
	r.membersMu.Unlock()
}

// runBounded runs fn with a deadline. When the deadline passes first, fn is
// left running and abandon is called once it returns.
func runBounded(ctx context.Context, timeout time.Duration, fn func(context.Context) error, abandon func()) error {
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	result := make(chan error, 1)
	go func() {
		result <- fn(opCtx)
	}()

	select {
	case err := <-result:
		cancel()
		return err
	case <-opCtx.Done():
		go func() {
			defer cancel()
			<-result
			if abandon != nil {
				abandon()
			}
		}()
		return fmt.Errorf("abandoned after %s: %w", timeout, opCtx.Err())
	}
}
