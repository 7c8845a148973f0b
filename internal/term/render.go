// Package term renders engine view state to a terminal and drives a
// line-oriented game loop.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
)

// Renderer writes views to one output. Colours follow the output's profile;
// the Ascii profile produces plain text.
type Renderer struct {
	out *termenv.Output
}

// NewRenderer returns a renderer for w. Options are passed to termenv.
func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

// Render writes the board, status and move list.
func (r *Renderer) Render(v domain.View) error {
	var sb strings.Builder
	width := len(fmt.Sprint(len(v.Board) - 1))

	for row := 0; row < v.Size; row++ {
		cells := make([]string, v.Size)
		for col := 0; col < v.Size; col++ {
			i := row*v.Size + col
			cells[col] = r.cell(v, i, width)
		}
		sb.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if row < v.Size-1 {
			sb.WriteString(strings.Repeat("-", v.Size*(width+3)-1) + "\n")
		}
	}

	sb.WriteString("\n" + r.out.String(v.Status).Bold().String() + "\n\n")

	for _, m := range v.Moves {
		line := fmt.Sprintf("%2d. %s", m.MoveNumber, m.Label)
		if m.IsCurrent {
			line = r.out.String("> " + line).Bold().String()
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}

	_, err := io.WriteString(r.out, sb.String())
	return err
}

// cell shows the mark, or the index so the player knows what to type.
func (r *Renderer) cell(v domain.View, i, width int) string {
	c := v.Board[i]
	if c == domain.Empty {
		return r.out.String(fmt.Sprintf("%*d", width, i)).Faint().String()
	}
	s := r.out.String(fmt.Sprintf("%*s", width, c.String()))
	switch c {
	case domain.X:
		s = s.Foreground(r.out.Color("4"))
	case domain.O:
		s = s.Foreground(r.out.Color("1"))
	}
	if v.IsWinningCell(i) {
		s = s.Bold().Reverse()
	}
	return s.String()
}
