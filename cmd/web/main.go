package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/roids/internal/config"
	"github.com/tomz197/roids/internal/logging"
	"github.com/tomz197/roids/internal/web"
)

const shutdownTimeout = 5 * time.Second

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Resolve(config.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, log); err != nil {
		log.Error("server error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	mux, play := web.NewMux(cfg, cfg.Server.DisplayHost, log)
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.WebHost, cfg.Server.WebPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting web server", zap.String("addr", "http://"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down web server", zap.Int("sessions", play.Active()))
		// Hijacked WebSocket connections are not closed by Shutdown.
		play.CloseAll()

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Wrap(srv.Shutdown(sctx), "shutdown")
	})
	return g.Wait()
}
