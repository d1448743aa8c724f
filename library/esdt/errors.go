package esdt

import (
	"github.com/0xAtelerix/esdt/library/errors"
)

// Decode failures. They never leave the package through Decode; the Decoder
// only reports them in debug logs.
const (
	errNoMarker     = errors.SDKError("no transfer marker")
	errMissingField = errors.SDKError("missing call data field")
	errMalformedHex = errors.SDKError("malformed hex field")
	errEmptyTokenID = errors.SDKError("empty token identifier")
	errAmountParse  = errors.SDKError("amount is not a base-16 integer")
)

const (
	ErrEmptyTokenID    = errors.SDKError("token identifier must not be empty")
	ErrNilAmount       = errors.SDKError("amount must be non-nil")
	ErrNegativeAmount  = errors.SDKError("amount must not be negative")
	ErrInvalidAmount   = errors.SDKError("amount must be a base-10 unsigned integer")
	ErrTooManyDecimals = errors.SDKError("too many decimals")
)
