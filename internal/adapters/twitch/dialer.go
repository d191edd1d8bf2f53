package twitch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/twitch-chat-logger/internal/domain"
	"github.com/bnema/twitch-chat-logger/internal/ports"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	DefaultURL = "wss://irc-ws.chat.twitch.tv:443"

	joinBatchSize         = 20
	loginTimeout          = 15 * time.Second
	writeTimeout          = 10 * time.Second
	readTimeout           = 6 * time.Minute
	eventBuffer           = 256
	defaultReconnectDelay = time.Second
	maxReconnectDelay     = 30 * time.Second
)

var ErrAuthenticationFailed = errors.New("chat login authentication failed")

const capabilities = "CAP REQ :twitch.tv/membership twitch.tv/tags twitch.tv/commands"

// Dialer opens authenticated chat connections over WebSocket. When the server
// rejects the access token it refreshes the pair once through OAuth and
// retries.
type Dialer struct {
	URL            string
	OAuth          *oauth2.Config
	HTTPClient     *http.Client
	WebSocket      *websocket.Dialer
	ReconnectDelay time.Duration
	Logger         *zap.Logger
}

var _ ports.ChatDialer = (*Dialer)(nil)

func NewDialer(url string, oauth *oauth2.Config, logger *zap.Logger) *Dialer {
	if url == "" {
		url = DefaultURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dialer{
		URL:            url,
		OAuth:          oauth,
		ReconnectDelay: defaultReconnectDelay,
		Logger:         logger,
	}
}

func (d *Dialer) Dial(ctx context.Context, req ports.DialRequest) (ports.ChatConn, error) {
	if req.Login == "" {
		return nil, errors.New("login is required")
	}

	ws, credentials, err := d.authenticate(ctx, req.Login, req.Credentials, req.OnRefresh)
	if err != nil {
		return nil, err
	}

	conn := newConn(d, ws, req.Login, credentials, req.OnRefresh)
	go conn.readLoop()

	return conn, nil
}

// authenticate connects and logs in, refreshing the credentials once when the
// server rejects them. It returns the credentials that were accepted.
func (d *Dialer) authenticate(ctx context.Context, login string, credentials domain.Credentials, onRefresh func(domain.Credentials)) (*websocket.Conn, domain.Credentials, error) {
	ws, err := d.connect(ctx, login, credentials.AccessToken)
	if err == nil {
		return ws, credentials, nil
	}
	if !errors.Is(err, ErrAuthenticationFailed) || credentials.RefreshToken == "" || d.OAuth == nil {
		return nil, credentials, err
	}

	d.logger().Info("chat login rejected, refreshing credentials", zap.String("login", login))
	refreshed, refreshErr := d.refresh(ctx, credentials)
	if refreshErr != nil {
		return nil, credentials, errors.Join(err, fmt.Errorf("refresh credentials: %w", refreshErr))
	}
	if onRefresh != nil {
		onRefresh(refreshed)
	}

	ws, err = d.connect(ctx, login, refreshed.AccessToken)
	if err != nil {
		return nil, refreshed, err
	}

	return ws, refreshed, nil
}

func (d *Dialer) connect(ctx context.Context, login, accessToken string) (*websocket.Conn, error) {
	wsDialer := d.WebSocket
	if wsDialer == nil {
		wsDialer = websocket.DefaultDialer
	}

	ws, _, err := wsDialer.DialContext(ctx, d.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial chat server: %w", err)
	}

	if err := d.login(ctx, ws, login, accessToken); err != nil {
		_ = ws.Close()
		return nil, err
	}

	return ws, nil
}

func (d *Dialer) login(ctx context.Context, ws *websocket.Conn, login, accessToken string) error {
	deadline := time.Now().Add(loginTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = ws.SetReadDeadline(deadline)
	_ = ws.SetWriteDeadline(deadline)

	stop := context.AfterFunc(ctx, func() {
		_ = ws.SetReadDeadline(time.Now())
	})
	defer stop()

	for _, line := range []string{
		capabilities,
		"PASS oauth:" + strings.TrimPrefix(accessToken, "oauth:"),
		"NICK " + strings.ToLower(login),
	} {
		if err := ws.WriteMessage(websocket.TextMessage, []byte(line+"\r\n")); err != nil {
			return fmt.Errorf("send login: %w", err)
		}
	}

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("await chat login: %w", ctx.Err())
			}
			return fmt.Errorf("await chat login: %w", err)
		}

		for _, line := range splitLines(string(data)) {
			msg, err := ParseMessage(line)
			if err != nil {
				continue
			}

			switch msg.Command {
			case "001":
				_ = ws.SetReadDeadline(time.Time{})
				_ = ws.SetWriteDeadline(time.Time{})
				return nil
			case "PING":
				if err := ws.WriteMessage(websocket.TextMessage, []byte("PONG :"+msg.Trailing()+"\r\n")); err != nil {
					return fmt.Errorf("answer ping: %w", err)
				}
			case "NOTICE":
				if isAuthFailure(msg.Trailing()) {
					return fmt.Errorf("%w: %s", ErrAuthenticationFailed, msg.Trailing())
				}
			}
		}
	}
}

func (d *Dialer) refresh(ctx context.Context, credentials domain.Credentials) (domain.Credentials, error) {
	if d.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, d.HTTPClient)
	}

	token, err := d.OAuth.TokenSource(ctx, &oauth2.Token{
		AccessToken:  credentials.AccessToken,
		RefreshToken: credentials.RefreshToken,
		Expiry:       time.Unix(1, 0),
	}).Token()
	if err != nil {
		return domain.Credentials{}, err
	}

	refreshed := domain.Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = credentials.RefreshToken
	}

	return refreshed, nil
}

func (d *Dialer) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func isAuthFailure(notice string) bool {
	notice = strings.ToLower(notice)
	return strings.Contains(notice, "login authentication failed") ||
		strings.Contains(notice, "improperly formatted auth") ||
		strings.Contains(notice, "invalid nick")
}
