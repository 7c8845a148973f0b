package domain

import (
	"errors"
	"fmt"
)

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// DefaultSize is the side length of a classic board.
const DefaultSize = 3

// Board is an N×N board stored row-major.
type Board []Cell

// NewBoard returns an all-Empty board with side length n.
func NewBoard(n int) Board {
	return make(Board, n*n)
}

// Clone returns an independent copy of b.
func (b Board) Clone() Board {
	return append(Board(nil), b...)
}

// Full reports whether no Empty cell remains.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Coords is a 0-indexed board position. Start marks the history entry
// that has no move (the initial board).
type Coords struct {
	Row   int
	Col   int
	Start bool
}

// CoordsOf maps a row-major index to coordinates on an n×n board.
func CoordsOf(index, n int) Coords {
	return Coords{Row: index / n, Col: index % n}
}

// HistoryEntry is one snapshot in the move history.
type HistoryEntry struct {
	Board      Board
	Move       Coords
	MoveNumber int
}

// History is ordered by MoveNumber; entry 0 is always the empty board.
type History []HistoryEntry

// Errors returned by domain operations. Playing an occupied cell or playing
// after a win is not an error; those intents are ignored.
var (
	ErrInvalidSize       = errors.New("invalid board size")
	ErrInvalidIndex      = errors.New("cell index out of range")
	ErrInvalidMoveNumber = errors.New("move number out of range")
)

// Engine owns a single GameState and applies intents to it.
// The zero value is ready to use and starts a classic 3x3 game.
// It is not safe for concurrent use.
type Engine struct {
	state GameState
}

// New returns an engine for a classic 3x3 game.
func New() *Engine {
	s, _ := NewState(DefaultSize)
	return &Engine{state: s}
}

// NewSized returns an engine for an n×n game.
func NewSized(n int) (*Engine, error) {
	s, err := NewState(n)
	if err != nil {
		return nil, err
	}
	return &Engine{state: s}, nil
}

// FromState wraps an existing state.
func FromState(s GameState) *Engine {
	return &Engine{state: s}
}

// ensure starts a default game when the engine holds no history.
func (e *Engine) ensure() {
	if len(e.state.History) == 0 {
		e.state, _ = NewState(DefaultSize)
	}
}

// PlayCell places the active player's mark at index. Occupied cells and
// finished games are silently ignored.
func (e *Engine) PlayCell(index int) error {
	e.ensure()
	next, err := Play(e.state, index)
	if err != nil {
		return err
	}
	e.state = next
	return nil
}

// JumpTo moves the current step to move. Jumping to 0 restarts the game.
func (e *Engine) JumpTo(move int) error {
	e.ensure()
	next, err := JumpTo(e.state, move)
	if err != nil {
		return err
	}
	e.state = next
	return nil
}

// ToggleSort flips the move list ordering.
func (e *Engine) ToggleSort() {
	e.ensure()
	e.state = ToggleSort(e.state)
}

// State returns the current game state.
func (e *Engine) State() GameState {
	e.ensure()
	return e.state
}

// View derives everything a presentation layer needs to render.
func (e *Engine) View() View {
	e.ensure()
	return DeriveView(e.state)
}

func (e *Engine) String() string {
	e.ensure()
	return fmt.Sprintf("engine(size=%d step=%d moves=%d)", e.state.Size, e.state.CurrentStep, len(e.state.History)-1)
}
