package domain

import "fmt"

// GameState is an immutable value: transitions return a new state and never
// write into the history of the one they were given.
type GameState struct {
	Size           int
	History        History
	CurrentStep    int
	SortDescending bool
}

// NewState returns a fresh game on an n×n board.
func NewState(n int) (GameState, error) {
	if n < 1 {
		return GameState{}, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	return GameState{
		Size:    n,
		History: History{{Board: NewBoard(n), Move: Coords{Start: true}}},
	}, nil
}

// Current returns the entry at CurrentStep.
func Current(s GameState) HistoryEntry {
	return s.History[s.CurrentStep]
}

// NextPlayer returns the mark that moves from CurrentStep. X moves on even steps.
func NextPlayer(s GameState) Cell {
	if s.CurrentStep%2 == 0 {
		return X
	}
	return O
}

// IsTerminal reports whether the current board has a winner or is full.
func IsTerminal(s GameState) bool {
	b := Current(s).Board
	if w, _ := DetectWinner(b); w != Empty {
		return true
	}
	return b.Full()
}

// Play applies a cell click. An index outside the board is an error; an
// occupied cell or an already won board returns s unchanged.
func Play(s GameState, index int) (GameState, error) {
	cells := s.Size * s.Size
	if index < 0 || index >= cells {
		return s, fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidIndex, index, cells)
	}
	cur := Current(s)
	if cur.Board[index] != Empty {
		return s, nil
	}
	if w, _ := DetectWinner(cur.Board); w != Empty {
		return s, nil
	}

	board := cur.Board.Clone()
	board[index] = NextPlayer(s)

	// Copy the kept prefix so the caller's history is never aliased.
	step := s.CurrentStep + 1
	history := make(History, step, step+1)
	copy(history, s.History[:step])
	history = append(history, HistoryEntry{
		Board:      board,
		Move:       CoordsOf(index, s.Size),
		MoveNumber: step,
	})

	s.History = history
	s.CurrentStep = step
	return s, nil
}

// JumpTo moves to an earlier or later recorded step without discarding
// history. Move 0 replaces the whole state with a fresh game.
func JumpTo(s GameState, move int) (GameState, error) {
	if move < 0 || move >= len(s.History) {
		return s, fmt.Errorf("%w: %d not in [0,%d]", ErrInvalidMoveNumber, move, len(s.History)-1)
	}
	if move == 0 {
		return NewState(s.Size)
	}
	s.CurrentStep = move
	return s, nil
}

// ToggleSort flips the move list ordering; history is untouched.
func ToggleSort(s GameState) GameState {
	s.SortDescending = !s.SortDescending
	return s
}
