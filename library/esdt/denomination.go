package esdt

import (
	"strings"
)

// MaxDecimals bounds the number of decimals an ESDT token can declare.
const MaxDecimals = 18

// FormatAmount renders a base-unit amount, as returned in TokenAmount.Amount,
// in whole token units. Trailing fractional zeros are dropped:
// FormatAmount("1500000000000000000", 18) == "1.5".
func FormatAmount(amount string, decimals uint8) (string, error) {
	if decimals > MaxDecimals {
		return "", ErrTooManyDecimals
	}

	v, err := ParseAmount(amount)
	if err != nil {
		return "", err
	}

	digits := v.String()
	if decimals == 0 {
		return digits, nil
	}

	d := int(decimals)
	if len(digits) <= d {
		digits = strings.Repeat("0", d-len(digits)+1) + digits
	}

	whole := digits[:len(digits)-d]
	frac := strings.TrimRight(digits[len(digits)-d:], "0")

	if frac == "" {
		return whole, nil
	}

	return whole + "." + frac, nil
}
