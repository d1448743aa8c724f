package rpc

import "errors"

var (
	ErrMethodNotFound      = errors.New("method not found")
	ErrWrongParamsCount    = errors.New("wrong number of parameters")
	ErrInvalidParams       = errors.New("invalid params")
	ErrDataMustBeString    = errors.New("call data parameter must be a string or null")
	ErrListMustBeArray     = errors.New("call data list parameter must be an array")
	ErrTokenIDMustBeString = errors.New("token id parameter must be a string")
	ErrAmountMustBeString  = errors.New("amount parameter must be a decimal string")
	ErrInvalidNonce        = errors.New("nonce must be an unsigned integer")
	ErrTooManyItems        = errors.New("too many call data items")
	ErrEncodeFailed        = errors.New("failed to encode transfer")
)

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// errorCode maps a handler error onto a JSON-RPC error code.
func errorCode(err error) int {
	switch {
	case errors.Is(err, ErrMethodNotFound):
		return codeMethodNotFound
	case errors.Is(err, ErrInvalidParams):
		return codeInvalidParams
	default:
		return codeInternalError
	}
}
