package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const maxRequestBody = 1 << 20

// NewStandardRPCServer creates a server without methods. Use AddTokenMethods
// or AddCustomMethod to register them.
func NewStandardRPCServer(logger *zerolog.Logger) *StandardRPCServer {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &StandardRPCServer{
		logger:        logger,
		customMethods: make(map[string]MethodHandler),
	}
}

// AddCustomMethod allows adding custom RPC methods
func (s *StandardRPCServer) AddCustomMethod(method string, handler MethodHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customMethods[method] = handler
}

// Methods lists registered method names.
func (s *StandardRPCServer) Methods() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.customMethods))
	for name := range s.customMethods {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Handler returns the HTTP routes: POST /rpc, GET /health and GET /metrics.
func (s *StandardRPCServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/rpc", s.handleRPC)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// StartHTTPServer serves the JSON-RPC API until ctx is cancelled, then shuts
// the listener down gracefully.
func (s *StandardRPCServer) StartHTTPServer(ctx context.Context, cfg ServerConfig) error {
	server := &http.Server{
		Addr:         cfg.Address,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().
		Str("address", cfg.Address).
		Strs("methods", s.Methods()).
		Msg("Starting RPC server")

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("rpc shutdown: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.logger.Info().Msg("RPC server stopped")

	return nil
}

func (s *StandardRPCServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{"status": healthStatusHealthy}); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// handleRPC handles incoming JSON-RPC requests
func (s *StandardRPCServer) handleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	var req rawRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		s.writeResponse(w, newErrorResponse(&Error{Code: codeParseError, Message: "Parse error"}, nil))

		return
	}

	id := requestID(req.ID)

	if req.JSONRPC != jsonRPCVersion || req.Method == "" {
		s.writeResponse(w, newErrorResponse(&Error{Code: codeInvalidRequest, Message: "Invalid Request"}, id))

		return
	}

	start := time.Now()
	result, err := s.handleMethod(r.Context(), req.Method, req.Params)
	observeRequest(req.Method, start, err)

	if err != nil {
		s.logger.Debug().Err(err).Str("method", req.Method).Msg("RPC call failed")
		s.writeResponse(w, newErrorResponse(&Error{Code: errorCode(err), Message: err.Error()}, id))

		return
	}

	s.writeResponse(w, JSONRPCResponse{
		JSONRPC: jsonRPCVersion,
		Result:  result,
		ID:      id,
	})
}

// handleMethod routes method calls to registered handlers
func (s *StandardRPCServer) handleMethod(ctx context.Context, method string, params []any) (any, error) {
	s.mu.RLock()
	handler, exists := s.customMethods[method]
	s.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, method)
	}

	return handler(ctx, params)
}

func (s *StandardRPCServer) writeResponse(w http.ResponseWriter, response JSONRPCResponse) {
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode RPC response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
