package esdt

import (
	"encoding/hex"
	"math/big"
	"strings"
)

// EncodeTransfer builds fungible transfer call data:
// ESDTTransfer@<hex token id>@<hex amount>.
func EncodeTransfer(tokenID string, amount *big.Int) (string, error) {
	encAmount, err := encodeAmount(amount)
	if err != nil {
		return "", err
	}

	if tokenID == "" {
		return "", ErrEmptyTokenID
	}

	return join(MarkerTransfer, hex.EncodeToString([]byte(tokenID)), encAmount), nil
}

// EncodeNFTTransfer builds non-fungible transfer call data:
// ESDTNFTTransfer@<hex token id>@<hex nonce>@<hex amount>.
func EncodeNFTTransfer(tokenID string, nonce uint64, amount *big.Int) (string, error) {
	encAmount, err := encodeAmount(amount)
	if err != nil {
		return "", err
	}

	if tokenID == "" {
		return "", ErrEmptyTokenID
	}

	encNonce := encodeUint(new(big.Int).SetUint64(nonce))

	return join(MarkerNFTTransfer, hex.EncodeToString([]byte(tokenID)), encNonce, encAmount), nil
}

// ParseAmount parses a base-10 unsigned integer amount.
func ParseAmount(s string) (*big.Int, error) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return nil, ErrInvalidAmount
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, ErrInvalidAmount
	}

	return v, nil
}

func encodeAmount(amount *big.Int) (string, error) {
	if amount == nil {
		return "", ErrNilAmount
	}

	if amount.Sign() < 0 {
		return "", ErrNegativeAmount
	}

	return encodeUint(amount), nil
}

// encodeUint renders v as big-endian bytes in hex, zero included as "00".
func encodeUint(v *big.Int) string {
	if v.Sign() == 0 {
		return "00"
	}

	return hex.EncodeToString(v.Bytes())
}

func join(fields ...string) string {
	return strings.Join(fields, fieldSeparator)
}
