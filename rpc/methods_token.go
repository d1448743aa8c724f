package rpc

import (
	"context"
	"fmt"

	"github.com/0xAtelerix/esdt/library/esdt"
)

// MaxBatchSize bounds decodeTokenTransfers input.
const MaxBatchSize = 1000

// TokenMethods provides RPC methods to decode and build token transfer call data.
type TokenMethods struct {
	decoder *esdt.Decoder
}

// NewTokenMethods creates a new TokenMethods instance.
func NewTokenMethods(decoder *esdt.Decoder) *TokenMethods {
	return &TokenMethods{decoder: decoder}
}

// DecodeTokenTransfer decodes one call data string.
// Params: [data] - data may be null
// Returns: {tokenId, amount}, both empty when data is not a token transfer
func (m *TokenMethods) DecodeTokenTransfer(_ context.Context, params []any) (any, error) {
	if len(params) != 1 {
		return nil, invalidParams(ErrWrongParamsCount)
	}

	data, err := parseCallData(params[0])
	if err != nil {
		return nil, err
	}

	return m.decode(data), nil
}

// DecodeTokenTransfers decodes a list of call data strings.
// Params: [[data, ...]]
// Returns: [{tokenId, amount}, ...] in input order
func (m *TokenMethods) DecodeTokenTransfers(ctx context.Context, params []any) (any, error) {
	if len(params) != 1 {
		return nil, invalidParams(ErrWrongParamsCount)
	}

	items, ok := params[0].([]any)
	if !ok {
		return nil, invalidParams(ErrListMustBeArray)
	}

	if len(items) > MaxBatchSize {
		return nil, invalidParams(fmt.Errorf("%w: %d > %d", ErrTooManyItems, len(items), MaxBatchSize))
	}

	out := make([]esdt.TokenAmount, 0, len(items))

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := parseCallData(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		out = append(out, m.decode(data))
	}

	return out, nil
}

// EncodeTokenTransfer builds fungible transfer call data.
// Params: [tokenId, amount] - amount as a base-10 string
// Returns: call data string
func (*TokenMethods) EncodeTokenTransfer(_ context.Context, params []any) (any, error) {
	if len(params) != 2 {
		return nil, invalidParams(ErrWrongParamsCount)
	}

	tokenID, ok := params[0].(string)
	if !ok {
		return nil, invalidParams(ErrTokenIDMustBeString)
	}

	amount, ok := params[1].(string)
	if !ok {
		return nil, invalidParams(ErrAmountMustBeString)
	}

	value, err := esdt.ParseAmount(amount)
	if err != nil {
		return nil, invalidParams(err)
	}

	data, err := esdt.EncodeTransfer(tokenID, value)
	if err != nil {
		return nil, invalidParams(fmt.Errorf("%w: %w", ErrEncodeFailed, err))
	}

	return data, nil
}

// EncodeNFTTransfer builds non-fungible transfer call data.
// Params: [tokenId, nonce, amount] - nonce as number or "0x" hex string
// Returns: call data string
func (*TokenMethods) EncodeNFTTransfer(_ context.Context, params []any) (any, error) {
	if len(params) != 3 {
		return nil, invalidParams(ErrWrongParamsCount)
	}

	tokenID, ok := params[0].(string)
	if !ok {
		return nil, invalidParams(ErrTokenIDMustBeString)
	}

	nonce, err := parseNonce(params[1])
	if err != nil {
		return nil, err
	}

	amount, ok := params[2].(string)
	if !ok {
		return nil, invalidParams(ErrAmountMustBeString)
	}

	value, err := esdt.ParseAmount(amount)
	if err != nil {
		return nil, invalidParams(err)
	}

	data, err := esdt.EncodeNFTTransfer(tokenID, nonce, value)
	if err != nil {
		return nil, invalidParams(fmt.Errorf("%w: %w", ErrEncodeFailed, err))
	}

	return data, nil
}

func (m *TokenMethods) decode(data string) esdt.TokenAmount {
	out, kind := m.decoder.DecodeKind(data)
	observeDecode(kind)

	return out
}

// AddTokenMethods adds all token transfer methods to the RPC server
func AddTokenMethods(server *StandardRPCServer, decoder *esdt.Decoder) {
	methods := NewTokenMethods(decoder)

	server.AddCustomMethod("decodeTokenTransfer", methods.DecodeTokenTransfer)
	server.AddCustomMethod("decodeTokenTransfers", methods.DecodeTokenTransfers)
	server.AddCustomMethod("encodeTokenTransfer", methods.EncodeTokenTransfer)
	server.AddCustomMethod("encodeNFTTransfer", methods.EncodeNFTTransfer)
}
