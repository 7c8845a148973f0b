package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/config"
	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
	"github.com/jaminalder/timetravel-tic-tac-toe/internal/logger"
	"github.com/jaminalder/timetravel-tic-tac-toe/internal/term"
)

// main - plays one game on the terminal. Logs go to stderr.
func main() {
	baseDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get current directory: %v\n", err)
		os.Exit(1)
	}
	conf, err := config.Load(filepath.Join(baseDir, "config.yml"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(os.Stderr, conf.LogLevel)

	engine, err := domain.NewSized(conf.BoardSize)
	if err != nil {
		log.Error("create engine", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repl := term.NewREPL(engine, term.NewRenderer(os.Stdout), os.Stdout, log)
	if err = repl.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		log.Error("terminal game stopped", "error", err)
		os.Exit(1)
	}
}
