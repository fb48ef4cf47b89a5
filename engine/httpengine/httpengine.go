// Package httpengine talks to a minesweeper engine over JSON HTTP endpoints.
package httpengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"termsweeper/engine"
)

const maxReplySize = 1 << 20

func init() {
	engine.Register(func(u *url.URL, opts engine.Options) (engine.Engine, error) {
		return New(u.String(), opts.Timeout, zap.L()), nil
	}, "http", "https")
}

// StatusError is returned when the engine answers with a non-2xx status.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("engine %s: HTTP %d: %s", e.Endpoint, e.Code, e.Body)
}

// HTTPEngine implements engine.Engine with POST /start and POST /move.
type HTTPEngine struct {
	base     string
	client   *http.Client
	clientID string
	log      *zap.Logger
}

// New creates an engine rooted at baseURL, e.g. http://localhost:5000.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *HTTPEngine {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPEngine{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

type startRequest struct {
	BoardSize int `json:"boardSize"`
	NumMines  int `json:"numMines"`
}

type moveRequest struct {
	Action int             `json:"action"`
	GameID json.RawMessage `json:"gameId,omitempty"`
}

// Start posts the board size and mine count to /start.
func (e *HTTPEngine) Start(ctx context.Context, cfg engine.GameConfig) ([]byte, error) {
	e.clientID = cfg.ClientID
	return e.post(ctx, "start", startRequest{BoardSize: cfg.BoardSize, NumMines: cfg.NumMines})
}

// Move posts the action code to /move.
func (e *HTTPEngine) Move(ctx context.Context, action int, gameID json.RawMessage) ([]byte, error) {
	return e.post(ctx, "move", moveRequest{Action: action, GameID: gameID})
}

// Close releases idle connections.
func (e *HTTPEngine) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

func (e *HTTPEngine) post(ctx context.Context, endpoint string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.base+"/"+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.clientID != "" {
		req.Header.Set("X-Client-Session", e.clientID)
	}

	e.log.Debug("engine request", zap.String("endpoint", endpoint), zap.ByteString("body", payload))
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("engine %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s reply: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	e.log.Debug("engine reply", zap.String("endpoint", endpoint), zap.Int("bytes", len(data)))
	return data, nil
}
