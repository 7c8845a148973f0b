package domain

import "math"

// Lines enumerates every winning line of an n×n board: rows top to bottom,
// columns left to right, the main diagonal, then the anti-diagonal.
func Lines(n int) [][]int {
	lines := make([][]int, 0, 2*n+2)
	for r := 0; r < n; r++ {
		ln := make([]int, n)
		for c := 0; c < n; c++ {
			ln[c] = r*n + c
		}
		lines = append(lines, ln)
	}
	for c := 0; c < n; c++ {
		ln := make([]int, n)
		for r := 0; r < n; r++ {
			ln[r] = r*n + c
		}
		lines = append(lines, ln)
	}
	diag := make([]int, n)
	anti := make([]int, n)
	for i := 0; i < n; i++ {
		diag[i] = i*n + i
		anti[i] = i*n + (n - 1 - i)
	}
	return append(lines, diag, anti)
}

// DetectWinner returns the mark filling the first complete line and that
// line's indices, or Empty and nil when no line is complete. The side length
// is taken from len(b), which must be a perfect square.
func DetectWinner(b Board) (Cell, []int) {
	n := int(math.Sqrt(float64(len(b))))
	if n == 0 || n*n != len(b) {
		return Empty, nil
	}
	for _, ln := range Lines(n) {
		first := b[ln[0]]
		if first == Empty {
			continue
		}
		won := true
		for _, idx := range ln[1:] {
			if b[idx] != first {
				won = false
				break
			}
		}
		if won {
			return first, append([]int(nil), ln...)
		}
	}
	return Empty, nil
}
