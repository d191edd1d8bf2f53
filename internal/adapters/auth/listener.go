package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bnema/twitch-chat-logger/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	LoginPath    = "/auth/login"
	CallbackPath = "/auth/callback"

	stateTTL = 10 * time.Minute
)

// GrantHandler receives every successfully authorized account.
type GrantHandler func(ctx context.Context, grant domain.Grant) error

type ListenerConfig struct {
	Addr        string
	OAuth       *oauth2.Config
	ValidateURL string
	HTTPClient  *http.Client
}

// Listener serves the authorization code flow for operators adding or
// re-authorizing accounts while the fleet is running.
type Listener struct {
	cfg     ListenerConfig
	handler GrantHandler
	logger  *zap.Logger
	now     func() time.Time

	mu     sync.Mutex
	states map[string]time.Time

	server    *http.Server
	listener  net.Listener
	closeOnce sync.Once
}

func NewListener(cfg ListenerConfig, handler GrantHandler, logger *zap.Logger) *Listener {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Listener{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		now:     time.Now,
		states:  map[string]time.Time{},
	}
}

func (l *Listener) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+LoginPath, l.handleLogin)
	mux.HandleFunc("GET "+CallbackPath, l.handleCallback)
	return mux
}

// Start binds the listen address and serves in the background.
func (l *Listener) Start() error {
	addr := l.cfg.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen auth server: %w", err)
	}

	l.listener = listener
	l.server = &http.Server{
		Handler:           l.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if serveErr := l.server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			l.logger.Error("auth server stopped", zap.Error(serveErr))
		}
	}()

	l.logger.Info("auth listener ready", zap.String("addr", listener.Addr().String()))
	return nil
}

func (l *Listener) Addr() string {
	if l.listener == nil {
		return ""
	}
	return l.listener.Addr().String()
}

func (l *Listener) Shutdown(ctx context.Context) error {
	var err error
	l.closeOnce.Do(func() {
		if l.server != nil {
			err = l.server.Shutdown(ctx)
		}
	})
	return err
}

// AuthorizationURL issues a fresh state and returns the provider URL the
// operator should open.
func (l *Listener) AuthorizationURL() (string, error) {
	state, err := NewState()
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}

	l.mu.Lock()
	now := l.now()
	for pending, issued := range l.states {
		if now.Sub(issued) > stateTTL {
			delete(l.states, pending)
		}
	}
	l.states[state] = now
	l.mu.Unlock()

	return l.cfg.OAuth.AuthCodeURL(state, oauth2.SetAuthURLParam("force_verify", "true")), nil
}

func (l *Listener) consumeState(state string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	issued, ok := l.states[state]
	if !ok {
		return false
	}
	delete(l.states, state)

	return l.now().Sub(issued) <= stateTTL
}

func (l *Listener) handleLogin(w http.ResponseWriter, r *http.Request) {
	authURL, err := l.AuthorizationURL()
	if err != nil {
		l.logger.Error("build authorization url", zap.Error(err))
		http.Error(w, "could not start authorization", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if !l.consumeState(query.Get("state")) {
		l.logger.Warn("authorization callback with unknown state")
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}
	if oauthError := query.Get("error"); oauthError != "" {
		if description := query.Get("error_description"); description != "" {
			oauthError = oauthError + ": " + description
		}
		l.logger.Warn("authorization denied", zap.String("error", oauthError))
		http.Error(w, "oauth error", http.StatusBadRequest)
		return
	}
	code := query.Get("code")
	if code == "" {
		http.Error(w, "missing code", http.StatusBadRequest)
		return
	}

	grant, err := l.exchange(r.Context(), code)
	if err != nil {
		l.logger.Error("complete authorization", zap.Error(err))
		http.Error(w, "authorization failed", http.StatusBadGateway)
		return
	}

	if err := l.handler(r.Context(), grant); err != nil {
		l.logger.Error("save authorization", zap.String("account", string(grant.ID)), zap.Error(err))
		http.Error(w, "could not save authorization", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Authentication complete. You can close this window."))
}

func (l *Listener) exchange(ctx context.Context, code string) (domain.Grant, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, l.cfg.HTTPClient)

	token, err := l.cfg.OAuth.Exchange(ctx, code)
	if err != nil {
		return domain.Grant{}, fmt.Errorf("exchange code for tokens: %w", err)
	}

	identity, err := ValidateToken(ctx, l.cfg.HTTPClient, l.cfg.ValidateURL, token.AccessToken)
	if err != nil {
		return domain.Grant{}, err
	}

	grant := domain.Grant{
		ID:    domain.AccountID(identity.UserID),
		Login: identity.Login,
		Credentials: domain.Credentials{
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
		},
	}
	if err := grant.Validate(); err != nil {
		return domain.Grant{}, err
	}

	return grant, nil
}
