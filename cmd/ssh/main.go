package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tomz197/roids/internal/config"
	"github.com/tomz197/roids/internal/draw"
	roidslog "github.com/tomz197/roids/internal/logging"
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
	log, err := roidslog.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	srv := cfg.Server
	log.Info("ssh config",
		zap.String("host", srv.SSHHost),
		zap.String("port", srv.SSHPort),
		zap.String("host_key", srv.HostKeyPath))

	games := &gameHandler{cfg: cfg, log: log}
	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(srv.SSHHost, srv.SSHPort)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if srv.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(srv.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("failed to create server", zap.Error(err))
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting ssh server", zap.String("addr", net.JoinHostPort(srv.SSHHost, srv.SSHPort)))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-done
	log.Info("shutting down server")
	games.stopAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}

// gameHandler runs one independent game per SSH session.
type gameHandler struct {
	cfg config.Config
	log *zap.Logger

	mu       sync.Mutex
	sessions map[string]context.CancelFunc
}

func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		id := uuid.New().String()
		log := g.log.With(zap.String("session", id), zap.String("user", sess.User()))
		log.Info("game session started",
			zap.String("terminal", pty.Term),
			zap.Int("width", pty.Window.Width),
			zap.Int("height", pty.Window.Height))

		size := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				size.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		g.track(id, cancel)
		defer g.untrack(id)
		defer cancel()

		start := time.Now()
		err := loop.RunTerminal(ctx, bufio.NewReader(sess), sess, size.getSize, g.cfg, log)
		if err != nil {
			log.Warn("game error", zap.Error(err))
		}
		log.Info("game session ended", zap.Duration("played", time.Since(start)))
		next(sess)
	}
}

func (g *gameHandler) track(id string, cancel context.CancelFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sessions == nil {
		g.sessions = make(map[string]context.CancelFunc)
	}
	g.sessions[id] = cancel
}

func (g *gameHandler) untrack(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, id)
}

// stopAll ends every running game so sessions restore their terminals.
func (g *gameHandler) stopAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.log.Info("stopping games", zap.Int("sessions", len(g.sessions)))
	for _, cancel := range g.sessions {
		cancel()
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
