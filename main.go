package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"tetris/terminal"
	"tetris/tetris"

	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[24;0H\n\r\033[?25h"

	minWidth  = 42
	minHeight = 24
)

func main() {
	level := flag.Int("level", 1, "starting level, from 1 to 20")
	seed := flag.Uint64("seed", 0, "seed of the piece sequence, random when 0")
	noGhost := flag.Bool("no-ghost", false, "disable the ghost piece")
	logFile := flag.String("log", "", "write JSON logs to this file")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	if err := run(*level, *seed, *noGhost, *logFile, *debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(level int, seed uint64, noGhost bool, logFile string, debug bool) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdout is not a terminal")
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("unable to read the terminal size: %w", err)
	}
	if w < minWidth || h < minHeight {
		return fmt.Errorf("terminal is %dx%d, at least %dx%d is needed", w, h, minWidth, minHeight)
	}

	logger, closeLog, err := newLogger(logFile, debug)
	if err != nil {
		return err
	}
	defer closeLog()

	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Info("starting", slog.Uint64("seed", seed), slog.Int("level", level))
	rng := rand.New(rand.NewPCG(seed, seed))

	t, err := terminal.New(&terminal.Options{
		Logger:  logger,
		NoGhost: noGhost,
		NewGame: func() *tetris.Game {
			e := tetris.NewEngine(rng)
			e.SetLevel(level)
			return tetris.NewGame(e, &tetris.Options{Logger: logger})
		},
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := t.Close(); err != nil {
			logger.Error("unable to close the keyboard", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)
	return t.Start(ctx)
}

func newLogger(path string, debug bool) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open log file: %w", err)
	}
	lvl := slog.LevelInfo
	if debug {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl})), func() { f.Close() }, nil
}
