// Package server exposes the projection engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rpgo/withdrawal-simulator/internal/calculation"
	"github.com/rpgo/withdrawal-simulator/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// maxBodyBytes bounds the assumptions payload.
	maxBodyBytes = 1 << 20

	defaultWriteTimeout    = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxYears        = 200
)

// Options configures a Server.
type Options struct {
	Addr             string
	AllowedOrigin    string
	StrictValidation bool
	ShutdownTimeout  time.Duration
	WriteTimeout     time.Duration
	// MaxYears bounds the projection horizon of a request even when strict
	// validation is off.
	MaxYears int
}

// Server serves projections.
type Server struct {
	opts   Options
	engine *calculation.CalculationEngine
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Server. A nil logger disables logging.
func New(opts Options, engine *calculation.CalculationEngine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if opts.AllowedOrigin == "" {
		opts.AllowedOrigin = "*"
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.MaxYears <= 0 {
		opts.MaxYears = defaultMaxYears
	}
	return &Server{opts: opts, engine: engine, logger: logger, now: time.Now}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/heartbeat", s.handleHeartbeat)
	mux.HandleFunc("/balances", s.handleBalances)
	return s.logRequests(s.cors(mux))
}

func (s *Server) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, fmt.Sprintf("401k simulator is running (%s)", s.now().Format(time.RFC1123)))
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var a domain.Assumptions
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decode assumptions: %v", err))
		return
	}
	if s.opts.StrictValidation {
		if err := calculation.ValidateAssumptions(a); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}
	if years := a.Years(); years > s.opts.MaxYears {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("projection spans %d years, limit is %d", years, s.opts.MaxYears))
		return
	}

	result := s.engine.Project(a)
	body, err := json.Marshal(result)
	if err != nil {
		// Non-finite values cannot be represented in JSON.
		s.logger.Warn("projection not encodable", zap.Error(err), zap.Any("assumptions", a))
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("projection produced values that cannot be encoded: %v", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Run listens on the configured address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) httpServer() *http.Server {
	return &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.opts.WriteTimeout,
	}
}

// Serve handles connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := s.httpServer()
	timeout := s.opts.ShutdownTimeout

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server is listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed+", "+http.MethodOptions)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
