// Package reply normalizes the engine's replies into the canonical board model.
//
// Engines in the wild disagree on reply shape: some tag the outcome with
// info.result and move the full board to actual_board when the game ends,
// older ones send done/reward flags next to a single board, and hidden cells
// are either the number 9 or a named marker. This package is the only place
// that knows about those differences.
package reply

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedReply is wrapped by every error caused by an unexpected reply shape.
var ErrMalformedReply = errors.New("malformed engine reply")

// Wire values of a cell.
const (
	wireMine   = -1
	wireHidden = 9
)

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedReply, fmt.Sprintf(format, args...))
}

// wireCell is one board entry, sent either as a number or as a string.
type wireCell int

var hiddenMarkers = map[string]bool{
	"unrevealed": true,
	"hidden":     true,
	"covered":    true,
	"u":          true,
	"#":          true,
}

func (c *wireCell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if hiddenMarkers[s] {
			*c = wireHidden
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return malformed("unknown cell marker %q", s)
		}
		*c = wireCell(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return malformed("cell value %s", data)
	}
	if f != float64(int(f)) {
		return malformed("non-integer cell value %s", data)
	}
	*c = wireCell(int(f))
	return nil
}

type wireGrid [][]wireCell

// MoveReply is the decoded reply to a move. It is one of *TaggedReply or *LegacyReply.
type MoveReply interface {
	convention() string
}

// TaggedReply carries the outcome in info.result.
// On win or lose the full board is in ActualBoard.
type TaggedReply struct {
	Result      string
	Board       wireGrid
	ActualBoard wireGrid
}

func (*TaggedReply) convention() string { return "tagged" }

// LegacyReply signals the outcome with done (or terminated) and reward.
type LegacyReply struct {
	Board  wireGrid
	Done   bool
	Reward float64
}

func (*LegacyReply) convention() string { return "legacy" }

// moveWire holds the union of the fields any engine variant sends.
type moveWire struct {
	Board       wireGrid `json:"board"`
	ActualBoard wireGrid `json:"actual_board"`
	Info        *struct {
		Result string `json:"result"`
	} `json:"info"`
	Done       *bool    `json:"done"`
	Terminated *bool    `json:"terminated"`
	Reward     *float64 `json:"reward"`
}

// DecodeMove decodes a raw move reply into its convention variant.
func DecodeMove(data []byte) (MoveReply, error) {
	var w moveWire
	if err := json.Unmarshal(data, &w); err != nil {
		if errors.Is(err, ErrMalformedReply) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	switch {
	case w.Info != nil:
		return &TaggedReply{
			Result:      strings.ToLower(strings.TrimSpace(w.Info.Result)),
			Board:       w.Board,
			ActualBoard: w.ActualBoard,
		}, nil
	case w.Done != nil || w.Terminated != nil || w.Reward != nil:
		r := &LegacyReply{Board: w.Board}
		if w.Done != nil {
			r.Done = *w.Done
		} else if w.Terminated != nil {
			r.Done = *w.Terminated
		}
		if w.Reward != nil {
			r.Reward = *w.Reward
		}
		return r, nil
	case w.Board != nil:
		// No outcome tag means the game goes on.
		return &TaggedReply{Board: w.Board}, nil
	}
	return nil, malformed("no board and no outcome field (info, done, terminated or reward)")
}

// StartReply is the decoded reply to a start request.
type StartReply struct {
	Board wireGrid
	// GameID is the engine's game id as sent, nil when absent. It is echoed
	// back on every move without being interpreted.
	GameID json.RawMessage
}

// DecodeStart decodes a raw start reply.
func DecodeStart(data []byte) (*StartReply, error) {
	var w struct {
		Board   wireGrid        `json:"board"`
		GameID  json.RawMessage `json:"gameId"`
		GameID2 json.RawMessage `json:"game_id"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		if errors.Is(err, ErrMalformedReply) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	raw := w.GameID
	if len(raw) == 0 {
		raw = w.GameID2
	}
	if string(raw) == "null" {
		raw = nil
	}
	return &StartReply{Board: w.Board, GameID: raw}, nil
}
