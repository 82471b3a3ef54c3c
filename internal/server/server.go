// Package server exposes finished matches and standings over a read-only
// JSON API, and streams live match events to websocket clients.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/lox/llmholdem/internal/bot"
	"github.com/lox/llmholdem/internal/game"
	"github.com/lox/llmholdem/internal/randutil"
	"github.com/lox/llmholdem/internal/store"
)

const shutdownTimeout = 5 * time.Second

// RandomGameSeats are the players seated by the random-game endpoint
var RandomGameSeats = []string{"Alice", "Bob", "Carol", "Dave"}

// Options configures a Server
type Options struct {
	Store  store.Store
	Logger *log.Logger
	// Bus carries events of matches played elsewhere in the process to the
	// websocket feed. Random games publish on it too.
	Bus *game.SimpleEventBus
	// Config is used for random games; zero means game.DefaultConfig
	Config *game.Config
	// Seed makes random games reproducible; nil draws one from the clock
	Seed *int64
}

// Server serves the HTTP API and the live event feed
type Server struct {
	store    store.Store
	bus      *game.SimpleEventBus
	hub      *Hub
	logger   *log.Logger
	cfg      game.Config
	seed     int64
	upgrader websocket.Upgrader
	router   chi.Router

	mu     sync.Mutex
	played int
}

// New builds a server and subscribes its hub to the event bus
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore(nil)
	}
	if opts.Bus == nil {
		opts.Bus = game.NewEventBus()
	}
	cfg := game.DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	_, seed := randutil.Resolve(opts.Seed)

	logger := opts.Logger.WithPrefix("server")
	s := &Server{
		store:  opts.Store,
		bus:    opts.Bus,
		hub:    NewHub(logger),
		logger: logger,
		cfg:    cfg,
		seed:   seed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // read-only feed, any origin may watch
			},
		},
	}
	s.bus.Subscribe(s.hub)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/standings", s.handleStandings)
		r.Get("/matches", s.handleListMatches)
		r.Get("/matches/{id}", s.handleGetMatch)
		r.Get("/random-game", s.handleRandomGame)
	})
	r.Get("/ws", s.handleWebSocket)
	return r
}

// Handler returns the HTTP handler, e.g. for httptest
func (s *Server) Handler() http.Handler { return s.router }

// Hub returns the websocket hub
func (s *Server) Hub() *Hub { return s.hub }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and disconnects websocket clients.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	c := NewConnection(conn, s.logger)
	s.hub.Register(c)
	c.Start()
}

// PlayRandomGame plays a match between random bots, records it in the
// store and returns its final snapshot.
func (s *Server) PlayRandomGame(ctx context.Context) (game.Snapshot, error) {
	s.mu.Lock()
	n := s.played
	s.played++
	s.mu.Unlock()

	seed := randutil.Derive(s.seed, n)
	seats := make([]game.Seat, len(RandomGameSeats))
	for i, name := range RandomGameSeats {
		agent, err := bot.New("random", bot.Options{
			RNG:    randutil.New(randutil.Derive(seed, i+1)),
			Logger: s.logger,
		})
		if err != nil {
			return game.Snapshot{}, err
		}
		seats[i] = game.Seat{Name: name, Agent: agent}
	}

	g, err := game.NewGame(seats, s.cfg,
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(s.logger),
		game.WithEventBus(s.bus))
	if err != nil {
		return game.Snapshot{}, err
	}
	if _, err := g.Play(ctx); err != nil {
		return game.Snapshot{}, fmt.Errorf("play random game: %w", err)
	}

	snap := g.Snapshot()
	if err := s.store.SaveMatch(ctx, snap); err != nil {
		return snap, fmt.Errorf("save match %s: %w", snap.ID, err)
	}
	s.logger.Info("Random game played", "match", snap.ID, "seed", seed, "rounds", snap.Statistics.NumRounds)
	return snap, nil
}
