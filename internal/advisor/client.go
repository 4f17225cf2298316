package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds how long the engine waits for an advisory
// answer before it proceeds with the fallback policy.
const DefaultTimeout = 30 * time.Second

// Message types on the advisory WebSocket.
const (
	MessageTypeIntentRequest  = "intent_request"
	MessageTypeIntentResponse = "intent_response"
)

// Message is the envelope for advisory WebSocket traffic.
type Message struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// Client is a WebSocket advisor. One logical request is in flight at a
// time, matching the engine's single-writer model; late answers to an
// abandoned request are dropped by request ID.
type Client struct {
	url       string
	timeout   time.Duration
	clock     quartz.Clock
	logger    *log.Logger
	validator *Validator

	mu    sync.Mutex
	conn  *websocket.Conn
	inbox chan Message
	group *errgroup.Group
}

// ClientOption customises the advisory client.
type ClientOption func(*Client)

// WithTimeout overrides the bounded wait for advisory answers.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithClock substitutes the clock, so tests can drive timeouts.
func WithClock(clock quartz.Clock) ClientOption {
	return func(c *Client) {
		c.clock = clock
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger.WithPrefix("advisor")
	}
}

// NewClient creates an advisory client for the given WebSocket URL.
func NewClient(url string, opts ...ClientOption) (*Client, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}

	c := &Client{
		url:       url,
		timeout:   DefaultTimeout,
		clock:     quartz.NewReal(),
		logger:    log.New(io.Discard),
		validator: validator,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Connect dials the advisor and starts the read loop.
func (c *Client) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.inbox = make(chan Message, 8)
	c.mu.Unlock()

	group, _ := errgroup.WithContext(ctx)
	c.group = group
	group.Go(func() error {
		return c.readLoop(conn)
	})

	c.logger.Info("Connected to advisor", "url", c.url)
	return nil
}

func (c *Client) readLoop(conn *websocket.Conn) error {
	defer close(c.inbox)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("Dropping unparseable advisory frame", "error", err)
			continue
		}
		select {
		case c.inbox <- msg:
		default:
			c.logger.Warn("Advisory inbox full, dropping frame", "type", msg.Type)
		}
	}
}

// Close shuts the connection down and waits for the read loop to
// exit.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	err := conn.Close()
	if c.group != nil {
		_ = c.group.Wait() // read loop error is expected after close
	}
	return err
}

// Intents sends a snapshot to the advisor and waits for a validated
// intent payload within the bounded timeout. On timeout the in-flight
// call is abandoned and ErrTimeout returned; the caller substitutes
// the fallback policy so the round always progresses.
func (c *Client) Intents(ctx context.Context, req IntentRequest) (*IntentResponse, error) {
	c.mu.Lock()
	conn := c.conn
	inbox := c.inbox
	c.mu.Unlock()

	if conn == nil {
		return nil, ErrUnavailable
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling intent request: %w", err)
	}
	id := uuid.NewString()
	msg := Message{
		Type:      MessageTypeIntentRequest,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: id,
	}

	c.mu.Lock()
	err = conn.WriteJSON(msg)
	c.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	timedOut := make(chan struct{})
	timer := c.clock.AfterFunc(c.timeout, func() {
		close(timedOut)
	})
	defer timer.Stop()

	for {
		select {
		case resp, ok := <-inbox:
			if !ok {
				return nil, ErrUnavailable
			}
			if resp.Type != MessageTypeIntentResponse || resp.RequestID != id {
				// Stale answer to an abandoned request.
				c.logger.Debug("Dropping stale advisory response", "requestId", resp.RequestID)
				continue
			}
			return c.validator.Decode(resp.Data, req.BotCount())

		case <-timedOut:
			c.logger.Warn("Advisory call timed out", "timeout", c.timeout)
			return nil, ErrTimeout

		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
