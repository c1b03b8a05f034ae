package network

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/logging"
	"github.com/automoto/splashed/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var ErrNotConnected = errors.New("not connected")

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Client streams room events over a websocket.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state     ClientState
	lastError error
	conn      *websocket.Conn
	pending   []messages.Event

	drops   *rate.Limiter
	dropped int
	log     zerolog.Logger
}

func NewClient() *Client {
	every := config.Network.DropLogEvery
	if every <= 0 {
		every = time.Second
	}
	return &Client{
		state: StateDisconnected,
		drops: rate.NewLimiter(rate.Every(every), 1),
		log:   logging.For("client"),
	}
}

// Connect dials wsURL with the session token in a background goroutine.
func (c *Client) Connect(wsURL, token string) error {
	u, err := streamURL(wsURL, token)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.pending = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		c.log.Info().Msg("connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()
	})
	router.On(c.onJoin)
	router.On(c.onQuit)
	router.On(c.onDelta)
	router.On(c.onSnapshot)
	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		c.log.Info().Err(err).Msg("disconnected")
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})
	router.OnError(func(_ *router.NetworkClient, err error) {
		c.log.Warn().Err(err).Msg("stream error")
	})

	go func() {
		transport := transports.NewWsClientTransport(u)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
	return nil
}

func (c *Client) onJoin(_ *router.NetworkClient, msg messages.JoinEventData) {
	c.enqueue(messages.NewJoinEvent(msg))
}

func (c *Client) onQuit(_ *router.NetworkClient, msg messages.QuitEventData) {
	c.enqueue(messages.NewQuitEvent(msg.ID))
}

func (c *Client) onDelta(_ *router.NetworkClient, msg messages.DeltaEventData) {
	c.enqueue(messages.NewDeltaEvent(msg))
}

func (c *Client) onSnapshot(_ *router.NetworkClient, msg messages.SnapshotEventData) {
	c.enqueue(messages.NewSnapshotEvent(msg))
}

func (c *Client) enqueue(ev messages.Event) {
	c.mu.Lock()
	c.pending = append(c.pending, ev)
	c.mu.Unlock()
}

// Drain returns the events received since the last call, oldest first.
func (c *Client) Drain() []messages.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pending
	c.pending = nil
	return out
}

// Send writes an INPUT or RESPAWN event. It never blocks the caller on a
// closed stream: without an open connection the event is dropped.
func (c *Client) Send(ev messages.Event) {
	if err := c.send(ev); err != nil {
		c.drop(ev, err)
	}
}

func (c *Client) send(ev messages.Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	var payload any
	switch ev.Type {
	case messages.EventInput:
		payload = *ev.Input
	case messages.EventRespawn:
		payload = *ev.Respawn
	default:
		return fmt.Errorf("%s is not an outbound event", ev.Type)
	}

	c.mu.RLock()
	conn, state := c.conn, c.state
	c.mu.RUnlock()
	if conn == nil || state != StateConnected {
		return ErrNotConnected
	}

	data, err := router.Serialize(payload)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return conn.Write(ctx, websocket.MessageBinary, data)
}

func (c *Client) drop(ev messages.Event, err error) {
	c.mu.Lock()
	c.dropped++
	n := c.dropped
	c.mu.Unlock()

	if c.drops.Allow() {
		c.log.Debug().Err(err).Stringer("type", ev.Type).Int("dropped", n).Msg("dropping outbound event")
	}
}

// Dropped returns how many outbound events were dropped so far.
func (c *Client) Dropped() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dropped
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) setError(err error) {
	c.log.Error().Err(err).Msg("stream failed")
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

func streamURL(wsURL, token string) (string, error) {
	if token == "" {
		return "", ErrNoToken
	}
	u, err := url.Parse(wsURL)
	if err != nil {
		return "", fmt.Errorf("parse stream url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
