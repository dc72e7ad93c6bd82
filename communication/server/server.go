package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mcts/communication"
	"mcts/meta"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const wsIdlePingInterval = 30 * time.Second

// Server exposes a read-only JSON view of a running or finished search.
type Server struct {
	search   communication.Inspector
	interval time.Duration
	router   chi.Router
	upgrader websocket.Upgrader

	closing   chan struct{}
	closeOnce sync.Once
}

// New returns a server over search. interval paces the status websocket.
func New(search communication.Inspector, interval time.Duration) *Server {
	if interval <= 0 {
		interval = meta.PROGRESS_INTERVAL
	}
	s := &Server{
		search:   search,
		interval: interval,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		closing:  make(chan struct{}),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/status", s.handleStatus)
	r.Get("/api/nodes/{id}", s.handleNode)
	r.Get("/api/root/children", s.handleRootChildren)
	r.Post("/api/finish", s.handleFinish)
	r.Get("/ws", s.handleWS)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()
	log.Info().Msgf("inspector listening on %s", addr)

	select {
	case err := <-serverErrCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("inspector: %w", err)
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("inspector shutdown: %w", err)
	}
	return nil
}

// Close ends every open status stream. It is idempotent.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.closing)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, communication.StatusOf(s.search))
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid node id"})
		return
	}
	node, ok := s.search.Node(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("node %d not found", id)})
		return
	}
	writeJSON(w, http.StatusOK, communication.ViewOf(node))
}

func (s *Server) handleRootChildren(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, communication.ChildrenOf(s.search.Root()))
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	s.search.Finish()
	writeJSON(w, http.StatusOK, communication.StatusOf(s.search))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Reading is only needed to notice the client going away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.streamStatus(conn, gone); err != nil {
		log.Debug().Err(err).Msg("status stream ended")
	}
}

// streamStatus writes the status whenever it changes until the search finishes, sending a ping
// after wsIdlePingInterval without writes.
func (s *Server) streamStatus(conn *websocket.Conn, gone <-chan struct{}) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	last := communication.StatusOf(s.search)
	if err := conn.WriteJSON(communication.Message{Type: communication.MessageStatus, Payload: &last}); err != nil {
		return err
	}
	lastWrite := time.Now()

	for !last.Finished {
		select {
		case <-gone:
			return nil
		case <-s.closing:
			return nil
		case <-ticker.C:
		}

		status := communication.StatusOf(s.search)
		if status == last {
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteJSON(communication.Message{Type: communication.MessagePing}); err != nil {
				return err
			}
			lastWrite = time.Now()
			continue
		}
		if err := conn.WriteJSON(communication.Message{Type: communication.MessageStatus, Payload: &status}); err != nil {
			return err
		}
		last = status
		lastWrite = time.Now()
	}

	return conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "search finished"))
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("inspector request")
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
