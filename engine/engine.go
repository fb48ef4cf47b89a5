// Package engine defines the interface for remote minesweeper engines.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// Engine is the remote, server-authoritative game engine.
// Replies are returned undecoded; package reply is the only place that
// understands their shape.
type Engine interface {
	// Start initializes a fresh game and returns the raw start reply.
	Start(ctx context.Context, cfg GameConfig) ([]byte, error)

	// Move submits a reveal action. gameID is the id from the start reply,
	// sent back verbatim; it is nil for engines that keep a single game per
	// connection.
	Move(ctx context.Context, action int, gameID json.RawMessage) ([]byte, error)

	// Close releases the transport.
	Close() error
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	BoardSize int    // Cells per side
	NumMines  int    // Number of mines placed by the engine
	ClientID  string // Client session id, sent along for server side logs
}

// Options configures the transport created by New.
type Options struct {
	URL     string
	Timeout time.Duration
}

// Factory builds an engine for one URL scheme.
type Factory func(u *url.URL, opts Options) (Engine, error)

var factories = map[string]Factory{}

// Register makes a transport available to New for the given URL schemes.
func Register(f Factory, schemes ...string) {
	for _, s := range schemes {
		factories[s] = f
	}
}

// New creates an engine for opts.URL, picking the transport by URL scheme.
func New(opts Options) (Engine, error) {
	u, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid engine url %q: %w", opts.URL, err)
	}
	f, ok := factories[u.Scheme]
	if !ok {
		return nil, fmt.Errorf("unsupported engine url scheme %q", u.Scheme)
	}
	return f(u, opts)
}
