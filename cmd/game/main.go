package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/roids/internal/config"
	"github.com/tomz197/roids/internal/draw"
	"github.com/tomz197/roids/internal/logging"
	"github.com/tomz197/roids/internal/loop"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Resolve(config.Terminal())
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	// Log lines on the game's own terminal would tear the frame.
	if cfg.Log.Output == "stderr" && term.IsTerminal(int(os.Stderr.Fd())) {
		cfg.Log.Output = filepath.Join(os.TempDir(), "roids.log")
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	log.Info("game started", zap.String("seed", cfg.Game.Seed), zap.Int("fps", cfg.Game.TickRate))

	err = loop.RunTerminal(ctx, bufio.NewReader(os.Stdin), os.Stdout, draw.DefaultTermSizeFunc, cfg, log)
	stop()
	_ = term.Restore(fd, oldState)

	if err != nil {
		log.Error("game error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("game ended")
}
