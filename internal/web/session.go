// Package web serves the game to browsers: a canvas page plus a WebSocket
// carrying key events in and frames out.
package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/tomz197/roids/internal/config"
	"github.com/tomz197/roids/internal/input"
	"github.com/tomz197/roids/internal/loop"
	"github.com/tomz197/roids/internal/sim"
)

const (
	writeTimeout = 2 * time.Second
	maxKeyFrame  = 256
)

// KeyMessage is a key event sent by the page.
type KeyMessage struct {
	Key  string `msgpack:"k"` // left, right, thrust or fire
	Down bool   `msgpack:"d"`
}

var keyNames = map[string]input.Key{
	"left":   input.KeyLeft,
	"right":  input.KeyRight,
	"thrust": input.KeyThrust,
	"fire":   input.KeyFire,
}

// Event converts the message into a key event.
func (m KeyMessage) Event() (input.Event, bool) {
	key, ok := keyNames[m.Key]
	if !ok {
		return input.Event{}, false
	}
	return input.Event{Key: key, Pressed: m.Down}, true
}

// PlayHandler upgrades requests to WebSocket and runs one independent game
// per connection.
type PlayHandler struct {
	cfg      config.Config
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]context.CancelFunc
}

// NewPlayHandler creates a handler for validated configuration cfg.
func NewPlayHandler(cfg config.Config, log *zap.Logger) *PlayHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlayHandler{
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
		},
		sessions: make(map[string]context.CancelFunc),
	}
}

// ServeHTTP runs a game for the lifetime of the connection.
func (h *PlayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	id := uuid.New().String()
	log := h.log.With(zap.String("session", id), zap.String("remote", r.RemoteAddr))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	h.track(id, cancel)
	defer h.untrack(id)

	log.Info("web session started")
	start := time.Now()
	err = h.play(ctx, conn, log)
	if err != nil {
		log.Info("web session ended", zap.Duration("played", time.Since(start)), zap.Error(err))
	} else {
		log.Info("web session ended", zap.Duration("played", time.Since(start)))
	}
}

func (h *PlayHandler) play(ctx context.Context, conn *websocket.Conn, log *zap.Logger) error {
	world, err := sim.NewWorld(h.cfg.Tuning(), h.cfg.Rand(), log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	controls := input.NewControls()
	go func() {
		defer cancel()
		readKeys(conn, controls, log)
	}()

	return loop.NewDriver(world, controls, &socketRenderer{conn: conn}, log).Run(ctx)
}

// readKeys applies key messages until the connection fails or closes.
func readKeys(conn *websocket.Conn, controls *input.Controls, log *zap.Logger) {
	conn.SetReadLimit(maxKeyFrame)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg KeyMessage
		if err := msgpack.Unmarshal(data, &msg); err != nil {
			log.Debug("bad key message", zap.Error(err))
			continue
		}
		if ev, ok := msg.Event(); ok {
			controls.Apply(ev)
		}
	}
}

// socketRenderer sends each frame as one binary msgpack message.
type socketRenderer struct {
	conn *websocket.Conn
}

func (s *socketRenderer) Render(frame sim.Snapshot) error {
	data, err := msgpack.Marshal(&frame)
	if err != nil {
		return errors.Wrap(err, "encode frame")
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return errors.Wrap(err, "send frame")
	}
	return nil
}

func (h *PlayHandler) track(id string, cancel context.CancelFunc) {
	h.mu.Lock()
	h.sessions[id] = cancel
	h.mu.Unlock()
}

func (h *PlayHandler) untrack(id string) {
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()
}

// Active returns the number of running sessions.
func (h *PlayHandler) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// CloseAll ends every running session.
func (h *PlayHandler) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, cancel := range h.sessions {
		cancel()
	}
}
