package rpc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

const (
	healthStatusHealthy = "healthy"
	jsonRPCVersion      = "2.0"
)

// newErrorResponse creates a standard JSON-RPC error response
func newErrorResponse(err *Error, id any) JSONRPCResponse {
	return JSONRPCResponse{
		JSONRPC: jsonRPCVersion,
		Error:   err,
		ID:      id,
	}
}

// requestID returns the request id ready to be echoed, nil when absent.
func requestID(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}

	return raw
}

func invalidParams(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidParams, err)
}

// parseCallData accepts a string or null. Null is absent call data.
func parseCallData(v any) (string, error) {
	switch data := v.(type) {
	case nil:
		return "", nil
	case string:
		return data, nil
	default:
		return "", invalidParams(ErrDataMustBeString)
	}
}

// parseNonce normalizes numeric and string inputs from JSON-RPC into an
// unsigned nonce. JSON unmarshaling produces float64 for numbers and
// string for hex values like "0x0a".
func parseNonce(v any) (uint64, error) {
	switch value := v.(type) {
	case float64:
		if value < 0 || math.Trunc(value) != value || value >= math.MaxUint64 {
			return 0, invalidParams(ErrInvalidNonce)
		}

		return uint64(value), nil
	case string:
		s := strings.TrimSpace(value)
		if s == "" {
			return 0, invalidParams(ErrInvalidNonce)
		}

		base := 10

		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
			base = 16
		}

		parsed, err := strconv.ParseUint(s, base, 64)
		if err != nil {
			return 0, invalidParams(ErrInvalidNonce)
		}

		return parsed, nil
	default:
		return 0, invalidParams(ErrInvalidNonce)
	}
}
