// Package session reconciles the engine's authoritative board with the
// client's flag overlay and gates input on the game phase.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"termsweeper/engine"
	"termsweeper/reply"
	"termsweeper/types"
)

// ErrCellFlagged is returned when revealing a flagged cell. Unflag it first.
var ErrCellFlagged = errors.New("cell is flagged")

// Session is one game against the engine. A new game is a new Session.
//
// Methods are safe to call from the UI goroutine while a Reveal runs on
// another goroutine; at most one Reveal is in flight at a time.
type Session struct {
	ID uuid.UUID

	eng    engine.Engine
	cfg    engine.GameConfig
	gameID json.RawMessage
	log    *zap.Logger
	encode func(row, col, size int) int

	cells  [][]types.Cell
	flags  *FlagOverlay
	phase  PhaseController
	banner types.Banner
	status string

	onChange func()

	mu sync.Mutex
}

// Start asks the engine for a new game and builds the initial board.
func Start(ctx context.Context, eng engine.Engine, cfg engine.GameConfig, log *zap.Logger) (*Session, error) {
	if cfg.BoardSize < 1 {
		return nil, fmt.Errorf("invalid board size %d", cfg.BoardSize)
	}
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	cfg.ClientID = id.String()
	log = log.With(zap.String("session", cfg.ClientID))

	data, err := eng.Start(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	r, err := reply.DecodeStart(data)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	cells, err := reply.InitialBoard(r, cfg.BoardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	log.Info("game started",
		zap.Int("board_size", cfg.BoardSize),
		zap.Int("mines", cfg.NumMines),
		zap.ByteString("game_id", r.GameID))

	return &Session{
		ID:     id,
		eng:    eng,
		cfg:    cfg,
		gameID: r.GameID,
		log:    log,
		encode: engine.EncodeMove,
		cells:  cells,
		flags:  NewFlagOverlay(cfg.BoardSize),
	}, nil
}

// OnChange registers a callback run after a move resolves, outside the session lock.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Reveal submits a reveal of (row, col) and applies the engine's reply.
// It blocks for the duration of the engine call. On any error the board,
// the overlay and the phase are left as they were.
func (s *Session) Reveal(ctx context.Context, row, col int) error {
	pos := types.BoardPos{Row: row, Col: col}

	s.mu.Lock()
	if err := s.phase.BeginMove(); err != nil {
		s.mu.Unlock()
		return err
	}
	if !s.inside(pos) {
		s.phase.AbortMove()
		s.mu.Unlock()
		return fmt.Errorf("cell %s is outside the board", pos)
	}
	if s.flags.IsFlagged(pos) && s.cells[row][col].IsHidden() {
		s.phase.AbortMove()
		s.mu.Unlock()
		return ErrCellFlagged
	}
	action := s.encode(row, col, s.cfg.BoardSize)
	gameID := s.gameID
	s.mu.Unlock()

	log := s.log.With(zap.Int("row", row), zap.Int("col", col), zap.Int("action", action))
	log.Debug("submitting move")

	data, err := s.eng.Move(ctx, action, gameID)
	if err != nil {
		log.Warn("move failed", zap.Error(err))
		s.abort(fmt.Sprintf("Engine error: %v", err))
		return fmt.Errorf("move %s: %w", pos, err)
	}

	it, err := interpret(data, pos, s.cfg.BoardSize)
	if err != nil {
		log.Warn("ignoring engine reply", zap.Error(err), zap.ByteString("reply", data))
		s.abort("")
		return fmt.Errorf("move %s: %w", pos, err)
	}

	s.mu.Lock()
	s.phase.FinishMove(it.Outcome)
	if it.Cells != nil {
		s.cells = it.Cells
	}
	s.banner = it.Banner
	s.status = ""
	phase := s.phase.Phase()
	fn := s.onChange
	s.mu.Unlock()

	log.Info("move applied", zap.Stringer("outcome", it.Outcome), zap.Stringer("phase", phase))
	if fn != nil {
		fn()
	}
	return nil
}

func interpret(data []byte, pos types.BoardPos, size int) (*reply.Interpretation, error) {
	r, err := reply.DecodeMove(data)
	if err != nil {
		return nil, err
	}
	return reply.Interpret(r, pos, size)
}

func (s *Session) abort(status string) {
	s.mu.Lock()
	s.phase.AbortMove()
	if status != "" {
		s.status = status
	}
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// ToggleFlag flips the flag at (row, col). It does nothing and returns false
// once the game is over or when the cell is no longer hidden.
func (s *Session) ToggleFlag(row, col int) bool {
	pos := types.BoardPos{Row: row, Col: col}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.phase.AcceptsFlags() || !s.inside(pos) || !s.cells[row][col].IsHidden() {
		return false
	}
	s.flags.Toggle(pos)
	return true
}

// IsFlagged reports the overlay value at (row, col), rendered or not.
func (s *Session) IsFlagged(row, col int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags.IsFlagged(types.BoardPos{Row: row, Col: col})
}

// FlagsUsed returns the flag count shown to the player.
func (s *Session) FlagsUsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags.Count()
}

// Cell returns the engine reported display value at (row, col).
func (s *Session) Cell(row, col int) types.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells[row][col]
}

// Glyph returns the rendered glyph at (row, col).
func (s *Session) Glyph(row, col int) types.Glyph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Render(s.cells[row][col], s.flags.IsFlagged(types.BoardPos{Row: row, Col: col}))
}

// Phase returns the game phase.
func (s *Session) Phase() types.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase.Phase()
}

// Pending reports whether a move is in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase.Pending()
}

// Banner returns the outcome banner of the last applied reply.
func (s *Session) Banner() types.Banner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.banner
}

// Config returns the game configuration the session was started with.
func (s *Session) Config() engine.GameConfig {
	return s.cfg
}

// Size returns the board size.
func (s *Session) Size() int {
	return s.cfg.BoardSize
}

// Settings describes the board for the status panel.
func (s *Session) Settings() string {
	return fmt.Sprintf("size %d minesweeper board with %d mines", s.cfg.BoardSize, s.cfg.NumMines)
}

// Snapshot renders the whole session.
func (s *Session) Snapshot() *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	dimmed := s.phase.Phase().Terminal()
	return &View{
		Cells:     renderBoard(s.cells, s.flags, dimmed),
		FlagsUsed: s.flags.Count(),
		Banner:    s.banner,
		Phase:     s.phase.Phase(),
		Pending:   s.phase.Pending(),
		Size:      s.cfg.BoardSize,
		NumMines:  s.cfg.NumMines,
		Status:    s.status,
	}
}

// Close releases the engine transport.
func (s *Session) Close() error {
	return s.eng.Close()
}

func (s *Session) inside(pos types.BoardPos) bool {
	n := len(s.cells)
	return pos.Row >= 0 && pos.Row < n && pos.Col >= 0 && pos.Col < n
}
