// Package wsengine talks to a minesweeper engine over a websocket connection.
package wsengine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"termsweeper/engine"
)

func init() {
	engine.Register(func(u *url.URL, opts engine.Options) (engine.Engine, error) {
		return New(u.String(), opts.Timeout, zap.L()), nil
	}, "ws", "wss")
}

// Request frame types.
const (
	TypeStart = "start"
	TypeMove  = "move"
)

// Request is a frame sent to the engine. Every request gets exactly one reply frame.
type Request struct {
	Type      string          `json:"type"`
	ClientID  string          `json:"clientId,omitempty"`
	BoardSize int             `json:"boardSize,omitempty"`
	NumMines  int             `json:"numMines,omitempty"`
	Action    *int            `json:"action,omitempty"`
	GameID    json.RawMessage `json:"gameId,omitempty"`
}

// ErrClosed is returned for requests after Close.
var ErrClosed = errors.New("websocket engine closed")

// WSEngine implements engine.Engine over one lazily dialed websocket.
// Requests are serialized so each reply frame matches its request.
type WSEngine struct {
	url      string
	timeout  time.Duration
	dialer   *websocket.Dialer
	clientID string
	log      *zap.Logger

	// mu serializes round trips. connMu guards conn and closed, and is never
	// held across network I/O, so Close can interrupt a blocked read.
	mu     sync.Mutex
	connMu sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// New creates an engine for the given ws:// or wss:// URL.
func New(rawURL string, timeout time.Duration, log *zap.Logger) *WSEngine {
	if log == nil {
		log = zap.NewNop()
	}
	return &WSEngine{
		url:     rawURL,
		timeout: timeout,
		dialer:  websocket.DefaultDialer,
		log:     log,
	}
}

// Start sends a start frame.
func (e *WSEngine) Start(ctx context.Context, cfg engine.GameConfig) ([]byte, error) {
	e.mu.Lock()
	e.clientID = cfg.ClientID
	e.mu.Unlock()
	return e.roundTrip(ctx, Request{
		Type:      TypeStart,
		BoardSize: cfg.BoardSize,
		NumMines:  cfg.NumMines,
	})
}

// Move sends a move frame.
func (e *WSEngine) Move(ctx context.Context, action int, gameID json.RawMessage) ([]byte, error) {
	return e.roundTrip(ctx, Request{Type: TypeMove, Action: &action, GameID: gameID})
}

// Close sends a close frame and closes the connection. A request blocked on
// its reply fails with an error.
func (e *WSEngine) Close() error {
	e.connMu.Lock()
	conn := e.conn
	e.conn = nil
	e.closed = true
	e.connMu.Unlock()
	if conn == nil {
		return nil
	}
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return conn.Close()
}

func (e *WSEngine) roundTrip(ctx context.Context, req Request) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	req.ClientID = e.clientID
	conn, err := e.connect(ctx)
	if err != nil {
		return nil, err
	}

	var deadline time.Time
	if e.timeout > 0 {
		deadline = time.Now().Add(e.timeout)
	}
	conn.SetWriteDeadline(deadline)
	conn.SetReadDeadline(deadline)

	// Unblock the read when the context ends first.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.SetReadDeadline(time.Now())
		case <-stop:
		}
	}()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s frame: %w", req.Type, err)
	}
	e.log.Debug("engine frame", zap.String("type", req.Type), zap.ByteString("body", payload))
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		e.drop(conn)
		return nil, fmt.Errorf("failed to send %s frame: %w", req.Type, err)
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		e.drop(conn)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("engine %s: %w", req.Type, ctxErr)
		}
		return nil, fmt.Errorf("failed to read %s reply: %w", req.Type, err)
	}
	return data, nil
}

// connect returns the live connection, dialing if there is none.
// Must be called while holding mu.
func (e *WSEngine) connect(ctx context.Context) (*websocket.Conn, error) {
	e.connMu.Lock()
	conn, closed := e.conn, e.closed
	e.connMu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	if conn != nil {
		return conn, nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	conn, resp, err := e.dialer.DialContext(ctx, e.url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to engine: %w", err)
	}

	e.connMu.Lock()
	defer e.connMu.Unlock()
	if e.closed {
		conn.Close()
		return nil, ErrClosed
	}
	e.conn = conn
	return conn, nil
}

// drop discards conn after a transport error so the next request redials.
func (e *WSEngine) drop(conn *websocket.Conn) {
	e.connMu.Lock()
	if e.conn == conn {
		e.conn = nil
	}
	e.connMu.Unlock()
	conn.Close()
}
