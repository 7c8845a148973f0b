package domain

import "fmt"

// MoveItem is one row of the move list.
type MoveItem struct {
	Label      string
	MoveNumber int
	IsCurrent  bool
}

// View is the read side handed to presentation layers. It is recomputed from
// GameState on every call and shares no memory with it.
type View struct {
	Size           int
	Board          Board
	Status         string
	Winner         Cell
	WinningLine    []int
	Moves          []MoveItem
	SortDescending bool
	CurrentStep    int
	NextPlayer     Cell
	Terminal       bool
}

// DeriveStatus renders the status line for the current step.
func DeriveStatus(s GameState) string {
	cur := Current(s)
	if w, _ := DetectWinner(cur.Board); w != Empty {
		return "Winner: " + w.String()
	}
	if cur.MoveNumber == s.Size*s.Size {
		return "Draw"
	}
	return "Next player: " + NextPlayer(s).String()
}

// MoveLabel renders the move list label for a history entry. Coordinates are
// shown 1-indexed.
func MoveLabel(e HistoryEntry) string {
	if e.Move.Start {
		return "Go to game start"
	}
	return fmt.Sprintf("Move %d (row %d, col %d)", e.MoveNumber, e.Move.Row+1, e.Move.Col+1)
}

// DeriveMoveList lists every history entry, ascending by move number unless
// SortDescending is set.
func DeriveMoveList(s GameState) []MoveItem {
	items := make([]MoveItem, len(s.History))
	for i, e := range s.History {
		pos := i
		if s.SortDescending {
			pos = len(s.History) - 1 - i
		}
		items[pos] = MoveItem{
			Label:      MoveLabel(e),
			MoveNumber: e.MoveNumber,
			IsCurrent:  i == s.CurrentStep,
		}
	}
	return items
}

// DeriveView collects all view-facing values for s.
func DeriveView(s GameState) View {
	cur := Current(s)
	winner, line := DetectWinner(cur.Board)
	return View{
		Size:           s.Size,
		Board:          cur.Board.Clone(),
		Status:         DeriveStatus(s),
		Winner:         winner,
		WinningLine:    line,
		Moves:          DeriveMoveList(s),
		SortDescending: s.SortDescending,
		CurrentStep:    s.CurrentStep,
		NextPlayer:     NextPlayer(s),
		Terminal:       winner != Empty || cur.Board.Full(),
	}
}

// IsWinningCell reports whether index is part of the view's winning line.
func (v View) IsWinningCell(index int) bool {
	for _, i := range v.WinningLine {
		if i == index {
			return true
		}
	}
	return false
}
