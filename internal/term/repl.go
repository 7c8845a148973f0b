package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
)

const helpText = `commands:
  play <cell>   place the next mark on a cell index
  <cell>        same as play <cell>
  jump <move>   go to a move from the list (0 restarts)
  sort          reverse the move list order
  restart       start a new game
  help          show this text
  quit          leave
`

// ErrUnknownCommand is returned for input the loop cannot parse.
var ErrUnknownCommand = errors.New("unknown command")

// REPL reads commands from in and re-renders the engine after each one.
type REPL struct {
	engine *domain.Engine
	render *Renderer
	out    io.Writer
	log    *slog.Logger
}

// NewREPL wires an engine to a renderer writing to out.
func NewREPL(engine *domain.Engine, render *Renderer, out io.Writer, log *slog.Logger) *REPL {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &REPL{engine: engine, render: render, out: out, log: log.With("component", "term")}
}

// Run processes lines until quit, EOF or ctx is done. Cancelling ctx returns
// immediately even while waiting for input; the pending read is abandoned.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	if err := r.render.Render(r.engine.View()); err != nil {
		return err
	}
	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(in, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(r.out, "> ")
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-readErr
			}
			line = strings.TrimSpace(l)
		}
		if line == "" {
			continue
		}
		quit, err := r.exec(line)
		if quit {
			return nil
		}
		if err != nil {
			r.log.Debug("command failed", "line", line, "error", err)
			fmt.Fprintf(r.out, "error: %v\n", err)
			continue
		}
		if err = r.render.Render(r.engine.View()); err != nil {
			return err
		}
	}
}

// readLines scans in on its own goroutine. lines is closed at EOF after the
// scanner error (nil on clean EOF) is sent on the returned error channel.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
		close(lines)
	}()
	return lines, errc
}

func (r *REPL) exec(line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprint(r.out, helpText)
		return false, nil
	case "sort":
		r.engine.ToggleSort()
		return false, nil
	case "restart":
		return false, r.engine.JumpTo(0)
	case "play", "jump":
		if len(fields) != 2 {
			return false, fmt.Errorf("%w: %s needs one number", ErrUnknownCommand, fields[0])
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a number", ErrUnknownCommand, fields[1])
		}
		if fields[0] == "play" {
			return false, r.engine.PlayCell(n)
		}
		return false, r.engine.JumpTo(n)
	default:
		if n, err := strconv.Atoi(fields[0]); err == nil && len(fields) == 1 {
			return false, r.engine.PlayCell(n)
		}
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
}
