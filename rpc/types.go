package rpc

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// JSONRPCRequest represents a standard JSON-RPC 2.0 request
type JSONRPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      any    `json:"id"`
}

// JSONRPCResponse represents a standard JSON-RPC 2.0 response
type JSONRPCResponse struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
	ID      any    `json:"id"`
}

// Error represents a JSON-RPC error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

// MethodHandler serves one JSON-RPC method.
type MethodHandler func(ctx context.Context, params []any) (any, error)

// StandardRPCServer serves call data decoding over JSON-RPC.
type StandardRPCServer struct {
	logger *zerolog.Logger

	mu            sync.RWMutex
	customMethods map[string]MethodHandler
}

// rawRequest keeps the id undecoded so it is echoed back verbatim.
type rawRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  []any           `json:"params"`
	ID      json.RawMessage `json:"id"`
}
