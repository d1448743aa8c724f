package esdt

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/rs/zerolog"
)

// TokenAmount is the token identifier and base-10 amount carried by a
// transfer call. Both fields are empty when no transfer was recognized.
type TokenAmount struct {
	TokenID string `json:"tokenId" cbor:"tokenId"`
	Amount  string `json:"amount"  cbor:"amount"`
}

func (t TokenAmount) IsEmpty() bool {
	return t.TokenID == "" && t.Amount == ""
}

// Decode extracts the token identifier and amount from transaction call data
// such as "ESDTTransfer@5745474c44@0de0b6b3a7640000". An empty string stands
// for absent data. Any input that is not a well-formed transfer yields the
// empty TokenAmount.
func Decode(data string) TokenAmount {
	out, _, err := decode(data)
	if err != nil {
		return TokenAmount{}
	}

	return out
}

// DecodePtr is Decode for optional call data.
func DecodePtr(data *string) TokenAmount {
	if data == nil {
		return TokenAmount{}
	}

	return Decode(*data)
}

// Decoder decodes call data and logs why an input was rejected.
type Decoder struct {
	logger *zerolog.Logger
}

func NewDecoder(logger *zerolog.Logger) *Decoder {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Decoder{logger: logger}
}

func (d *Decoder) Decode(data string) TokenAmount {
	out, _ := d.DecodeKind(data)

	return out
}

// DecodeKind is Decode that also reports the transfer kind of a decoded
// result. The kind is None whenever the result is empty.
func (d *Decoder) DecodeKind(data string) (TokenAmount, TransferKind) {
	out, kind, err := decode(data)
	if err != nil {
		d.logger.Debug().
			Err(err).
			Stringer("kind", kind).
			Int("data_length", len(data)).
			Msg("call data is not a token transfer")

		return TokenAmount{}, None
	}

	return out, kind
}

func decode(data string) (TokenAmount, TransferKind, error) {
	kind := Classify(data)

	idx, ok := amountField(kind)
	if !ok {
		return TokenAmount{}, kind, errNoMarker
	}

	fields := strings.Split(data, fieldSeparator)

	if len(fields) <= tokenIDField {
		return TokenAmount{}, kind, fmt.Errorf("%w: token id at %d", errMissingField, tokenIDField)
	}

	tokenID, err := decodeTokenID(fields[tokenIDField])
	if err != nil {
		return TokenAmount{}, kind, err
	}

	if len(fields) <= idx {
		return TokenAmount{}, kind, fmt.Errorf("%w: amount at %d", errMissingField, idx)
	}

	amount, err := decodeAmount(fields[idx])
	if err != nil {
		return TokenAmount{}, kind, err
	}

	return TokenAmount{TokenID: tokenID, Amount: amount.String()}, kind, nil
}

func decodeTokenID(field string) (string, error) {
	raw, err := hex.DecodeString(field)
	if err != nil {
		return "", fmt.Errorf("%w: token id: %w", errMalformedHex, err)
	}

	if len(raw) == 0 {
		return "", errEmptyTokenID
	}

	// 7-bit ASCII, matching how the wallet tooling renders identifiers
	for i := range raw {
		raw[i] &= 0x7f
	}

	return string(raw), nil
}

func decodeAmount(field string) (*big.Int, error) {
	digits := strings.TrimPrefix(field, "0x")

	// SetString would accept a sign
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return nil, fmt.Errorf("%w: %q", errAmountParse, field)
	}

	amount, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errAmountParse, field)
	}

	return amount, nil
}
