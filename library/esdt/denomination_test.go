package esdt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount   string
		decimals uint8
		want     string
	}{
		{"1000000000000000000", 18, "1"},
		{"1500000000000000000", 18, "1.5"},
		{"1", 18, "0.000000000000000001"},
		{"0", 18, "0"},
		{"123456", 0, "123456"},
		{"123456", 2, "1234.56"},
		{"100", 2, "1"},
		{"5", 1, "0.5"},
		{"18446744073709551616", 6, "18446744073709.551616"},
	}

	for _, tc := range cases {
		got, err := FormatAmount(tc.amount, tc.decimals)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "%s/%d", tc.amount, tc.decimals)
	}
}

func TestFormatAmountErrors(t *testing.T) {
	t.Parallel()

	_, err := FormatAmount("1", MaxDecimals+1)
	require.ErrorIs(t, err, ErrTooManyDecimals)

	_, err = FormatAmount("", 6)
	require.ErrorIs(t, err, ErrInvalidAmount)
}
