package randompkg

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAccountNumber(t *testing.T) {
	t.Parallel()

	n := AccountNumber()
	require.Len(t, n, 10)
	require.Regexp(t, `^[0-9]{10}$`, n)
}

func TestMoneyAmountBetween(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		got := decimal.RequireFromString(MoneyAmountBetween(10, 20))
		require.True(t, got.GreaterThanOrEqual(decimal.NewFromInt(10)), got.String())
		require.True(t, got.LessThanOrEqual(decimal.NewFromInt(20)), got.String())
		require.LessOrEqual(t, -got.Exponent(), int32(2))
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	require.Len(t, String(12), 12)
	require.Regexp(t, `^[a-z]+$`, String(12))
}
