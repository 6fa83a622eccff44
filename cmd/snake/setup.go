package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// newLogger builds the prefixed logger at the level given by --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	}), nil
}

// newFileLogger logs to ~/.snake/snake.log, since the full-screen TUI owns
// the terminal. It falls back to discarding output.
func newFileLogger() (*log.Logger, func(), error) {
	noop := func() {}

	home, err := os.UserHomeDir()
	if err != nil {
		l, lerr := newLogger(io.Discard, "snake")
		return l, noop, lerr
	}
	dir := filepath.Join(home, ".snake")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		l, lerr := newLogger(io.Discard, "snake")
		return l, noop, lerr
	}

	f, err := os.OpenFile(filepath.Join(dir, "snake.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		l, lerr := newLogger(io.Discard, "snake")
		return l, noop, lerr
	}

	l, err := newLogger(f, "snake")
	if err != nil {
		f.Close()
		return nil, noop, err
	}
	return l, func() { f.Close() }, nil
}

// openStore opens the results database. A failure is reported as a warning
// and the game runs without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return nil
	}
	return store
}

// saverFor keeps a nil store from turning into a non-nil interface.
func saverFor(store *storage.Store) tui.ResultSaver {
	if store == nil {
		return nil
	}
	return store
}

// runtimeConfig sizes the round to the terminal and attributes results to
// the local user.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.Seed = flagSeed
	if u, err := user.Current(); err == nil {
		cfg.Player = u.Username
	}
	return cfg
}
