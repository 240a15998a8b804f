package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cory-johannsen/abyss/internal/config"
	"github.com/cory-johannsen/abyss/internal/game/command"
	"github.com/cory-johannsen/abyss/internal/game/event"
	"github.com/cory-johannsen/abyss/internal/game/match"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server hosts one match behind an HTTP listener. Clients connect to /ws,
// receive a state snapshot, then the live event stream; command envelopes
// they send are validated by the match and answered with result frames.
//
// The match itself is single-threaded; all submissions are serialized here.
type Server struct {
	cfg    config.ServerConfig
	logger *zap.Logger
	hub    *Hub
	http   *http.Server

	mu sync.Mutex
	m  *match.Match
}

// New wires a Server around m.
//
// Precondition: m and logger must be non-nil.
func New(cfg config.ServerConfig, m *match.Match, logger *zap.Logger) *Server {
	if m == nil {
		panic("server: nil match")
	}
	if logger == nil {
		panic("server: nil logger")
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		hub:    NewHub(),
		m:      m,
	}

	// Every simulation event goes straight to the hub. Publication happens
	// inside Submit while s.mu is held, so ordering matches the match's
	// event order.
	m.Events().Subscribe(func(ev event.Event) {
		cp := ev
		s.hub.Broadcast(Frame{Kind: FrameEvent, Event: &cp})
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.http = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Hub exposes the broadcast hub, mainly for tests and diagnostics.
func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := newClient(s, conn)

	// Snapshot first so the client can interpret the event stream. Queuing
	// it and registering under the match lock keeps a concurrently
	// dispatched command's events from landing ahead of the snapshot:
	// broadcasts happen inside dispatch, which holds the same lock.
	s.mu.Lock()
	c.send <- Frame{Kind: FrameSnapshot, Snapshot: s.snapshotLocked()}
	s.hub.register(c)
	s.mu.Unlock()
	s.logger.Info("client connected", zap.String("remote", conn.RemoteAddr().String()))

	go c.writePump()
	go c.readPump()
}

// dispatch translates an envelope into a command and submits it.
func (s *Server) dispatch(env Envelope) Frame {
	var cmd command.Command
	switch env.Type {
	case "move":
		cmd = command.Move{EntityID: env.EntityID, Target: env.Target}
	case "attack":
		cmd = command.Attack{AttackerID: env.EntityID, TargetID: env.TargetID}
	case "end_turn":
		cmd = command.EndTurn{EntityID: env.EntityID}
	default:
		return Frame{Kind: FrameError, Message: fmt.Sprintf("unknown command type %q", env.Type)}
	}

	s.mu.Lock()
	res := s.m.Submit(cmd)
	s.mu.Unlock()

	return Frame{Kind: FrameResult, OK: res.OK, Reason: res.Reason}
}

func (s *Server) snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// snapshotLocked builds the state snapshot. Callers must hold s.mu.
func (s *Server) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		MatchID: s.m.ID(),
		Turn:    s.m.Turn(),
		Over:    s.m.Over(),
		Winner:  s.m.Winner(),
	}
	if s.m.Started() {
		snap.Phase = s.m.Phase().String()
	}
	if active := s.m.ActiveEntity(); active != nil {
		snap.ActiveID = active.ID()
	}
	for _, e := range s.m.Entities() {
		snap.Entities = append(snap.Entities, EntityState{
			ID:        e.ID(),
			Name:      e.Name(),
			Kind:      e.Kind().String(),
			Position:  e.Position(),
			CurrentHP: e.CurrentHP(),
			MaxHP:     e.MaxHP(),
			Alive:     e.IsAlive(),
		})
	}
	return snap
}

// Run starts the listener and blocks until ctx is cancelled or a
// termination signal arrives, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr()))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		s.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		s.logger.Error("listener failed", zap.Error(err))
		return err
	case <-ctx.Done():
		s.logger.Info("context cancelled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("shutdown incomplete", zap.Error(err))
	}
	s.hub.closeAll()

	s.logger.Info("shutdown complete", zap.Duration("uptime", time.Since(start)))
	return nil
}
