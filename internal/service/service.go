// Package service exposes the equity engine over WebSocket for the
// capture/display tooling around it: an equity_request carries the
// recognized card notation, progress frames stream while the simulation
// runs, and a single equity_result closes the exchange. The engine
// itself stays free of any transport dependency.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/equity"
)

// Server serves equity computations over WebSocket
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	logger   *log.Logger
	defaults equity.Config
	httpSrv  *http.Server
}

// NewServer creates a new equity WebSocket server. defaults provides the
// simulation settings a request may omit.
func NewServer(addr string, defaults equity.Config, logger *log.Logger) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Desktop tooling connects from a local process
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:   logger.WithPrefix("service"),
		defaults: defaults,
	}
}

// Handler returns the HTTP handler, exposed separately so tests can run
// the service on an httptest server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start starts the WebSocket server and blocks until it stops
func (s *Server) Start() error {
	s.httpSrv = &http.Server{Addr: s.addr, Handler: s.Handler()}
	s.logger.Info("Starting equity service", "addr", s.addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down, waiting for in-flight requests
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	s.logger.Info("Client connected", "remote", conn.RemoteAddr())

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Error("Read failed", "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.writeError(conn, fmt.Sprintf("malformed message: %v", err))
			continue
		}

		switch env.Type {
		case MessageTypeEquityRequest:
			var req EquityRequest
			if err := json.Unmarshal(data, &req); err != nil {
				s.writeError(conn, fmt.Sprintf("malformed equity_request: %v", err))
				continue
			}
			s.handleEquityRequest(conn, req)
		default:
			s.writeError(conn, fmt.Sprintf("unknown message type %q", env.Type))
		}
	}
}

// handleEquityRequest validates the request, runs the simulation and
// streams progress while it is in flight. Validation failures are
// reported as error messages and keep the connection open.
func (s *Server) handleEquityRequest(conn *websocket.Conn, req EquityRequest) {
	hero, err := parseTokens(req.Hero)
	if err != nil {
		s.writeError(conn, fmt.Sprintf("hero: %v", err))
		return
	}
	board, err := parseTokens(req.Board)
	if err != nil {
		s.writeError(conn, fmt.Sprintf("board: %v", err))
		return
	}

	cfg := s.defaults
	cfg.Opponents = req.Opponents
	if req.Iterations > 0 {
		cfg.Iterations = req.Iterations
	}
	if cfg.Iterations == 0 {
		cfg.Iterations = equity.DefaultIterations
	}
	if req.Seed != nil {
		cfg.Seed = req.Seed
	}
	if req.TimeBudget != "" {
		budget, err := time.ParseDuration(req.TimeBudget)
		if err != nil {
			s.writeError(conn, fmt.Sprintf("invalid time_budget: %v", err))
			return
		}
		cfg.TimeBudget = budget
	}
	cfg.Logger = s.logger

	// Progress frames at roughly every tenth of the run
	step := cfg.Iterations / 10
	if step == 0 {
		step = cfg.Iterations
	}
	lastSent := 0
	cfg.Progress = func(completed, total int) {
		if completed-lastSent < step && completed != total {
			return
		}
		lastSent = completed
		_ = conn.WriteJSON(Progress{
			Type:      MessageTypeProgress,
			Completed: completed,
			Total:     total,
		})
	}

	start := time.Now()
	result, err := equity.Simulate(hero, board, cfg)
	if err != nil {
		s.writeError(conn, err.Error())
		return
	}

	s.logger.Debug("equity computed",
		"hero", req.Hero,
		"equity", result.EquityPct,
		"iterations", result.Iterations,
		"elapsed", time.Since(start))

	_ = conn.WriteJSON(EquityResult{
		Type:          MessageTypeEquityResult,
		WinPct:        result.WinPct,
		TiePct:        result.TiePct,
		LossPct:       result.LossPct,
		EquityPct:     result.EquityPct,
		Iterations:    result.Iterations,
		MarginOfError: result.MarginOfError,
		Degraded:      result.Degraded,
		ElapsedMs:     time.Since(start).Milliseconds(),
	})
}

func (s *Server) writeError(conn *websocket.Conn, msg string) {
	_ = conn.WriteJSON(ErrorMessage{Type: MessageTypeError, Message: msg})
}

// parseTokens converts recognized card tokens into Card values, rejecting
// anything malformed before it can reach the engine.
func parseTokens(tokens []string) ([]deck.Card, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	cards := make([]deck.Card, 0, len(tokens))
	for _, tok := range tokens {
		card, err := deck.ParseCard(tok)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
