package twitch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/twitch-chat-logger/internal/domain"
	"github.com/bnema/twitch-chat-logger/internal/ports"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeChatServer speaks just enough of the chat protocol to log a client in.
type fakeChatServer struct {
	t          *testing.T
	server     *httptest.Server
	validToken string

	lines    chan string
	sessions chan *websocket.Conn

	mu     sync.Mutex
	logins int
}

func newFakeChatServer(t *testing.T, validToken string) *fakeChatServer {
	t.Helper()

	fake := &fakeChatServer{
		t:          t,
		validToken: validToken,
		lines:      make(chan string, 64),
		sessions:   make(chan *websocket.Conn, 4),
	}

	upgrader := websocket.Upgrader{}
	fake.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = ws.Close() }()
		fake.serve(ws)
	}))
	t.Cleanup(fake.server.Close)

	return fake
}

func (f *fakeChatServer) url() string {
	return "ws" + strings.TrimPrefix(f.server.URL, "http")
}

func (f *fakeChatServer) serve(ws *websocket.Conn) {
	var pass string
	loggedIn := false

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}

		for _, line := range splitLines(string(data)) {
			if loggedIn {
				f.lines <- line
				continue
			}

			switch {
			case strings.HasPrefix(line, "PASS "):
				pass = strings.TrimPrefix(line, "PASS ")
			case strings.HasPrefix(line, "NICK "):
				if pass != "oauth:"+f.validToken {
					_ = ws.WriteMessage(websocket.TextMessage, []byte(":tmi.twitch.tv NOTICE * :Login authentication failed\r\n"))
					return
				}
				_ = ws.WriteMessage(websocket.TextMessage, []byte(":tmi.twitch.tv 001 alice :Welcome, GLHF!\r\n:tmi.twitch.tv 376 alice :>\r\n"))
				loggedIn = true

				f.mu.Lock()
				f.logins++
				f.mu.Unlock()
				f.sessions <- ws
			}
		}
	}
}

func (f *fakeChatServer) loginCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins
}

func (f *fakeChatServer) nextLine(t *testing.T) string {
	t.Helper()

	select {
	case line := <-f.lines:
		return line
	case <-time.After(2 * time.Second):
		t.Fatal("no line received by chat server")
		return ""
	}
}

func (f *fakeChatServer) nextSession(t *testing.T) *websocket.Conn {
	t.Helper()

	select {
	case ws := <-f.sessions:
		return ws
	case <-time.After(2 * time.Second):
		t.Fatal("no chat session established")
		return nil
	}
}

func send(t *testing.T, ws *websocket.Conn, line string) {
	t.Helper()
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(line+"\r\n")))
}

func nextEvent(t *testing.T, conn ports.ChatConn) domain.ChatEvent {
	t.Helper()

	select {
	case event, ok := <-conn.Events():
		require.True(t, ok, "event stream closed")
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("no chat event received")
		return nil
	}
}

func newTokenServer(t *testing.T, accessToken string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "rt-old", r.PostForm.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"` + accessToken + `","refresh_token":"rt-new","expires_in":14400,"token_type":"bearer"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDialerLogsInAndStreamsEvents(t *testing.T) {
	t.Parallel()

	fake := newFakeChatServer(t, "good")
	dialer := NewDialer(fake.url(), nil, nil)

	conn, err := dialer.Dial(context.Background(), ports.DialRequest{
		Login:       "Alice",
		Credentials: domain.Credentials{AccessToken: "good"},
	})
	require.NoError(t, err)
	server := fake.nextSession(t)

	require.NoError(t, conn.Join(context.Background(), "foo", "bar"))
	assert.Equal(t, "JOIN #foo,#bar", fake.nextLine(t))

	send(t, server, "@display-name=Bob;tmi-sent-ts=1709993109000 :bob!bob@bob.tmi.twitch.tv PRIVMSG #foo :hi all")
	assert.Equal(t, domain.MessageEvent{Room: "foo", User: "bob", Body: "hi all", At: time.UnixMilli(1709993109000)}, nextEvent(t, conn))

	send(t, server, ":carol!carol@carol.tmi.twitch.tv JOIN #bar")
	assert.Equal(t, domain.UserJoinedEvent{Room: "bar", User: "carol"}, nextEvent(t, conn))

	send(t, server, ":carol!carol@carol.tmi.twitch.tv PART #bar")
	assert.Equal(t, domain.UserLeftEvent{Room: "bar", User: "carol"}, nextEvent(t, conn))

	send(t, server, "PING :tmi.twitch.tv")
	assert.Equal(t, "PONG :tmi.twitch.tv", fake.nextLine(t))

	require.NoError(t, conn.Leave(context.Background(), "bar"))
	assert.Equal(t, "PART #bar", fake.nextLine(t))

	require.NoError(t, conn.Close())
	_, open := <-conn.Events()
	assert.False(t, open)

	require.ErrorIs(t, conn.Join(context.Background(), "baz"), errConnClosed)
	require.NoError(t, conn.Close())
}

func TestDialerRejectedWithoutRefreshToken(t *testing.T) {
	t.Parallel()

	fake := newFakeChatServer(t, "good")
	dialer := NewDialer(fake.url(), nil, nil)

	_, err := dialer.Dial(context.Background(), ports.DialRequest{
		Login:       "alice",
		Credentials: domain.Credentials{AccessToken: "stale"},
	})
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Zero(t, fake.loginCount())
}

func TestDialerRefreshesRejectedToken(t *testing.T) {
	t.Parallel()

	fake := newFakeChatServer(t, "fresh")
	tokens := newTokenServer(t, "fresh")
	dialer := NewDialer(fake.url(), &oauth2.Config{
		ClientID:     "client-123",
		ClientSecret: "secret-456",
		Endpoint:     oauth2.Endpoint{TokenURL: tokens.URL, AuthStyle: oauth2.AuthStyleInParams},
	}, nil)
	dialer.HTTPClient = tokens.Client()

	var refreshed []domain.Credentials
	conn, err := dialer.Dial(context.Background(), ports.DialRequest{
		Login:       "alice",
		Credentials: domain.Credentials{AccessToken: "stale", RefreshToken: "rt-old"},
		OnRefresh: func(credentials domain.Credentials) {
			refreshed = append(refreshed, credentials)
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	assert.Equal(t, []domain.Credentials{{AccessToken: "fresh", RefreshToken: "rt-new"}}, refreshed)
	assert.Equal(t, 1, fake.loginCount())
}

func TestDialerHonoursContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDialer("ws://127.0.0.1:1", nil, nil).Dial(ctx, ports.DialRequest{
		Login:       "alice",
		Credentials: domain.Credentials{AccessToken: "good"},
	})
	require.Error(t, err)
}

func TestConnReconnectsAndRejoins(t *testing.T) {
	t.Parallel()

	fake := newFakeChatServer(t, "good")
	dialer := NewDialer(fake.url(), nil, nil)
	dialer.ReconnectDelay = 10 * time.Millisecond

	conn, err := dialer.Dial(context.Background(), ports.DialRequest{
		Login:       "alice",
		Credentials: domain.Credentials{AccessToken: "good"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	first := fake.nextSession(t)
	require.NoError(t, conn.Join(context.Background(), "foo"))
	assert.Equal(t, "JOIN #foo", fake.nextLine(t))

	send(t, first, ":tmi.twitch.tv RECONNECT")

	second := fake.nextSession(t)
	assert.Equal(t, "JOIN #foo", fake.nextLine(t))
	assert.Equal(t, 2, fake.loginCount())

	send(t, second, ":bob!bob@bob.tmi.twitch.tv PRIVMSG #foo :still here")
	event := nextEvent(t, conn)
	assert.Equal(t, "bob: still here", event.Text())
}
