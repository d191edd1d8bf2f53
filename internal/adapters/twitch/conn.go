package twitch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/bnema/twitch-chat-logger/internal/domain"
	"github.com/bnema/twitch-chat-logger/internal/ports"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var (
	errConnClosed      = errors.New("chat connection closed")
	errServerReconnect = errors.New("server requested reconnect")
)

// Conn is a logged-in chat connection. It reconnects on its own when the
// server drops it and rejoins the channels it had joined.
type Conn struct {
	dialer    *Dialer
	login     string
	onRefresh func(domain.Credentials)
	logger    *zap.Logger

	writeMu sync.Mutex

	mu          sync.Mutex
	ws          *websocket.Conn
	credentials domain.Credentials
	channels    []string

	events    chan domain.ChatEvent
	done      chan struct{}
	readDone  chan struct{}
	closeOnce sync.Once
}

var _ ports.ChatConn = (*Conn)(nil)

func newConn(dialer *Dialer, ws *websocket.Conn, login string, credentials domain.Credentials, onRefresh func(domain.Credentials)) *Conn {
	return &Conn{
		dialer:      dialer,
		login:       login,
		onRefresh:   onRefresh,
		logger:      dialer.logger().With(zap.String("login", login)),
		ws:          ws,
		credentials: credentials,
		events:      make(chan domain.ChatEvent, eventBuffer),
		done:        make(chan struct{}),
		readDone:    make(chan struct{}),
	}
}

func (c *Conn) Events() <-chan domain.ChatEvent {
	return c.events
}

func (c *Conn) Join(ctx context.Context, channels ...string) error {
	for _, command := range joinCommands("JOIN", channels, joinBatchSize) {
		if err := c.write(ctx, command); err != nil {
			return fmt.Errorf("join channels: %w", err)
		}
	}

	c.mu.Lock()
	for _, channel := range channels {
		if !slices.Contains(c.channels, channel) {
			c.channels = append(c.channels, channel)
		}
	}
	c.mu.Unlock()

	return nil
}

func (c *Conn) Leave(ctx context.Context, channels ...string) error {
	for _, command := range joinCommands("PART", channels, joinBatchSize) {
		if err := c.write(ctx, command); err != nil {
			return fmt.Errorf("leave channels: %w", err)
		}
	}

	c.mu.Lock()
	c.channels = slices.DeleteFunc(c.channels, func(channel string) bool {
		return slices.Contains(channels, channel)
	})
	c.mu.Unlock()

	return nil
}

// Close ends the connection and waits for the event stream to close.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)

		ws := c.current()
		_ = ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		if closeErr := ws.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
			err = closeErr
		}
	})

	<-c.readDone
	return err
}

func (c *Conn) current() *websocket.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws
}

func (c *Conn) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Conn) write(ctx context.Context, line string) error {
	if c.closed() {
		return errConnClosed
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(writeTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	ws := c.current()
	_ = ws.SetWriteDeadline(deadline)
	return ws.WriteMessage(websocket.TextMessage, []byte(line+"\r\n"))
}

func (c *Conn) readLoop() {
	defer close(c.readDone)
	defer close(c.events)

	delay := c.dialer.ReconnectDelay
	if delay <= 0 {
		delay = defaultReconnectDelay
	}

	for {
		ws := c.current()
		err := c.readFrom(ws)
		if c.closed() {
			return
		}

		c.logger.Warn("chat connection lost, reconnecting", zap.Error(err))
		_ = ws.Close()

		backoff := delay
		for {
			select {
			case <-c.done:
				return
			case <-time.After(backoff):
			}

			if err := c.reconnect(); err != nil {
				c.logger.Warn("reconnect chat", zap.Duration("retry_in", backoff), zap.Error(err))
				backoff = min(backoff*2, maxReconnectDelay)
				continue
			}
			break
		}
	}
}

func (c *Conn) readFrom(ws *websocket.Conn) error {
	for {
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
		_, data, err := ws.ReadMessage()
		if err != nil {
			return err
		}

		for _, line := range splitLines(string(data)) {
			msg, err := ParseMessage(line)
			if err != nil {
				c.logger.Debug("skip malformed line", zap.Error(err))
				continue
			}
			if err := c.handle(msg); err != nil {
				return err
			}
		}
	}
}

func (c *Conn) handle(msg Message) error {
	switch msg.Command {
	case "PING":
		return c.write(context.Background(), "PONG :"+msg.Trailing())
	case "RECONNECT":
		return errServerReconnect
	case "PRIVMSG":
		return c.emit(domain.MessageEvent{
			Room: msg.Channel(),
			User: msg.Nick(),
			Body: msg.Trailing(),
			At:   sentAt(msg),
		})
	case "JOIN":
		return c.emit(domain.UserJoinedEvent{Room: msg.Channel(), User: msg.Nick()})
	case "PART":
		return c.emit(domain.UserLeftEvent{Room: msg.Channel(), User: msg.Nick()})
	case "NOTICE":
		c.logger.Info("chat notice", zap.String("channel", msg.Channel()), zap.String("text", msg.Trailing()))
	}

	return nil
}

func (c *Conn) emit(event domain.ChatEvent) error {
	select {
	case c.events <- event:
		return nil
	case <-c.done:
		return errConnClosed
	}
}

func (c *Conn) reconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*loginTimeout)
	defer cancel()
	go func() {
		select {
		case <-c.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	c.mu.Lock()
	credentials := c.credentials
	c.mu.Unlock()

	ws, accepted, err := c.dialer.authenticate(ctx, c.login, credentials, c.onRefresh)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.ws = ws
	c.credentials = accepted
	channels := slices.Clone(c.channels)
	c.mu.Unlock()

	if c.closed() {
		_ = ws.Close()
		return nil
	}

	for _, command := range joinCommands("JOIN", channels, joinBatchSize) {
		if err := c.write(ctx, command); err != nil {
			_ = ws.Close()
			return fmt.Errorf("rejoin channels: %w", err)
		}
	}

	c.logger.Info("chat reconnected", zap.Strings("channels", channels))
	return nil
}

// sentAt reads the server timestamp of a message, if present.
func sentAt(msg Message) time.Time {
	raw, ok := msg.Tags["tmi-sent-ts"]
	if !ok {
		return time.Time{}
	}

	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.UnixMilli(millis)
}
