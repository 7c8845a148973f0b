package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to apply a sequence of cell plays
func playCells(t *testing.T, e *Engine, cells ...int) {
	t.Helper()
	for i, c := range cells {
		require.NoError(t, e.PlayCell(c), "move %d (cell %d)", i, c)
	}
}

var classicLines = [][]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func TestNewGameInitialState(t *testing.T) {
	e := New()
	s := e.State()

	require.Len(t, s.History, 1)
	assert.Equal(t, 0, s.CurrentStep)
	assert.False(t, s.SortDescending)
	assert.True(t, s.History[0].Move.Start)
	assert.Equal(t, 0, s.History[0].MoveNumber)
	for i, c := range s.History[0].Board {
		assert.Equal(t, Empty, c, "cell %d", i)
	}
	assert.Equal(t, "Next player: X", e.View().Status)
}

func TestZeroEngineStartsClassicGame(t *testing.T) {
	var e Engine
	v := e.View()
	assert.Equal(t, DefaultSize, v.Size)
	assert.Len(t, v.Board, DefaultSize*DefaultSize)
	assert.Equal(t, "Next player: X", v.Status)

	var p Engine
	require.NoError(t, p.PlayCell(4))
	assert.Equal(t, X, p.State().History[1].Board[4])

	var j Engine
	assert.ErrorIs(t, j.JumpTo(1), ErrInvalidMoveNumber)
	assert.Len(t, j.State().History, 1)
}

func TestNewSizedRejectsBadSize(t *testing.T) {
	_, err := NewSized(0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	e, err := NewSized(4)
	require.NoError(t, err)
	assert.Len(t, e.View().Board, 16)
}

func TestPlayOutOfBounds(t *testing.T) {
	e := New()
	for _, idx := range []int{-1, 9, 42} {
		err := e.PlayCell(idx)
		assert.ErrorIs(t, err, ErrInvalidIndex, "index %d", idx)
	}
	assert.Len(t, e.State().History, 1)
}

func TestHistoryGrowsByOnePerPlay(t *testing.T) {
	e := New()
	for i, c := range []int{4, 0, 8, 2, 6} {
		before := len(e.State().History)
		require.NoError(t, e.PlayCell(c))
		assert.Equal(t, before+1, len(e.State().History), "after play %d", i)
		assert.Equal(t, i+1, e.State().CurrentStep)
	}
}

func TestPlayersAlternate(t *testing.T) {
	e := New()
	playCells(t, e, 0, 1, 2, 4, 3, 5)
	s := e.State()
	for k := 1; k < len(s.History); k++ {
		prev, cur := s.History[k-1].Board, s.History[k].Board
		changed := 0
		for i := range cur {
			if prev[i] != cur[i] {
				changed++
				assert.Equal(t, Empty, prev[i])
				want := O
				if k%2 == 1 {
					want = X
				}
				assert.Equal(t, want, cur[i], "step %d", k)
			}
		}
		assert.Equal(t, 1, changed, "step %d must change exactly one cell", k)
	}
}

func TestPlayOccupiedIsNoop(t *testing.T) {
	e := New()
	playCells(t, e, 0)
	before := e.State()

	require.NoError(t, e.PlayCell(0))

	after := e.State()
	assert.Equal(t, before.CurrentStep, after.CurrentStep)
	assert.Equal(t, before.History, after.History)
}

func TestGameOverBlocksFurtherMoves(t *testing.T) {
	e := New()
	// X wins quickly on top row
	playCells(t, e, 0, 3, 1, 4, 2)
	require.Equal(t, "Winner: X", e.View().Status)
	before := e.State()

	require.NoError(t, e.PlayCell(8))

	assert.Equal(t, before, e.State())
}

func TestWinConditionsForX(t *testing.T) {
	for _, line := range classicLines {
		e := New()
		fillers := cellsOff(line)
		// X, O, X, O, X with X on the line
		playCells(t, e, line[0], fillers[0], line[1], fillers[1], line[2])

		v := e.View()
		assert.Equal(t, X, v.Winner, "line %v", line)
		assert.Equal(t, line, v.WinningLine)
		assert.Equal(t, 5, v.CurrentStep)
		assert.True(t, v.Terminal)
	}
}

func TestWinConditionsForO(t *testing.T) {
	for _, line := range classicLines {
		e := New()
		fillers := cellsOff(line)
		// X fillers must not complete a line of their own before O does.
		xs := pickNonWinning(fillers)
		playCells(t, e, xs[0], line[0], xs[1], line[1], xs[2], line[2])

		v := e.View()
		assert.Equal(t, O, v.Winner, "line %v", line)
		assert.Equal(t, line, v.WinningLine)
		assert.Equal(t, 6, v.CurrentStep)
	}
}

func TestDrawNoWinner(t *testing.T) {
	e := New()
	// Final board: X O X / X O O / O X X
	playCells(t, e, 0, 1, 2, 4, 3, 5, 7, 6, 8)

	v := e.View()
	assert.Equal(t, Empty, v.Winner)
	assert.Empty(t, v.WinningLine)
	assert.Equal(t, "Draw", v.Status)
	assert.True(t, v.Terminal)
}

func TestJumpBackDoesNotDiscardFuture(t *testing.T) {
	e := New()
	playCells(t, e, 4, 0, 8)

	require.NoError(t, e.JumpTo(1))
	assert.Equal(t, 1, e.State().CurrentStep)
	assert.Len(t, e.State().History, 4)
	assert.Equal(t, "Next player: O", e.View().Status)

	require.NoError(t, e.JumpTo(3))
	assert.Equal(t, X, e.View().Board[8])
}

func TestPlayAfterJumpTruncatesFuture(t *testing.T) {
	e := New()
	playCells(t, e, 4, 0, 8)
	require.NoError(t, e.JumpTo(1))

	require.NoError(t, e.PlayCell(2))

	s := e.State()
	require.Len(t, s.History, 3)
	assert.Equal(t, 2, s.CurrentStep)
	assert.Equal(t, O, s.History[2].Board[2])
	assert.Equal(t, Empty, s.History[2].Board[0])
	assert.Equal(t, 2, s.History[2].MoveNumber)
}

func TestJumpToZeroRestarts(t *testing.T) {
	e := New()
	playCells(t, e, 0)
	e.ToggleSort()

	require.NoError(t, e.JumpTo(0))

	s := e.State()
	assert.Len(t, s.History, 1)
	assert.Equal(t, 0, s.CurrentStep)
	assert.False(t, s.SortDescending)
	for _, c := range e.View().Board {
		assert.Equal(t, Empty, c)
	}

	// The same cell is playable again on the reset board.
	require.NoError(t, e.PlayCell(0))
	assert.Len(t, e.State().History, 2)
	assert.Equal(t, X, e.View().Board[0])
}

func TestJumpOutOfRange(t *testing.T) {
	e := New()
	playCells(t, e, 4)
	before := e.State()

	assert.ErrorIs(t, e.JumpTo(-1), ErrInvalidMoveNumber)
	assert.ErrorIs(t, e.JumpTo(2), ErrInvalidMoveNumber)
	assert.Equal(t, before, e.State())
}

func TestToggleSortLeavesHistory(t *testing.T) {
	e := New()
	playCells(t, e, 4, 0)
	before := e.State()

	e.ToggleSort()

	after := e.State()
	assert.True(t, after.SortDescending)
	assert.Equal(t, before.History, after.History)
	assert.Equal(t, before.CurrentStep, after.CurrentStep)
}

// cellsOff returns classic-board cells not on line, in ascending order.
func cellsOff(line []int) []int {
	on := map[int]bool{}
	for _, i := range line {
		on[i] = true
	}
	var out []int
	for i := 0; i < 9; i++ {
		if !on[i] {
			out = append(out, i)
		}
	}
	return out
}

// pickNonWinning picks three cells from candidates that do not form a line.
func pickNonWinning(candidates []int) []int {
	for a := 0; a < len(candidates); a++ {
		for b := a + 1; b < len(candidates); b++ {
			for c := b + 1; c < len(candidates); c++ {
				board := NewBoard(3)
				board[candidates[a]], board[candidates[b]], board[candidates[c]] = X, X, X
				if w, _ := DetectWinner(board); w == Empty {
					return []int{candidates[a], candidates[b], candidates[c]}
				}
			}
		}
	}
	return nil
}
