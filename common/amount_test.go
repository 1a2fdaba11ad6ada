package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubAmount(t *testing.T) {
	const msg = "insufficient balance"

	require.Equal(t, 0, SubAmount(10, 10, msg))
	require.Equal(t, 7, SubAmount(10, 3, msg))
	require.PanicsWithValue(t, msg, func() { SubAmount(3, 10, msg) })
	require.PanicsWithValue(t, ErrNegativeAmount, func() { SubAmount(10, -1, msg) })
	require.PanicsWithValue(t, ErrNegativeAmount, func() { SubAmount(-1, 0, msg) })
}

func TestAddAmount(t *testing.T) {
	require.Equal(t, 300_000_000, AddAmount(280_000_000, 20_000_000))
	require.PanicsWithValue(t, ErrNegativeAmount, func() { AddAmount(1, -1) })
}

func TestStorageCost(t *testing.T) {
	for _, tc := range []struct {
		size, months, rate int
		expected           int
	}{
		{size: 0, months: 12, rate: 1, expected: 0},
		{size: 1, months: 12, rate: 1, expected: 12},
		{size: Megabyte, months: 12, rate: 1, expected: 12},
		{size: Megabyte + 1, months: 12, rate: 1, expected: 24},
		{size: 9 * Megabyte, months: 12, rate: 2, expected: 216},
		{size: 100_000, months: 1, rate: 1, expected: 1},
		{size: 720 * Megabyte, months: 0, rate: 1, expected: 0},
	} {
		require.Equal(t, tc.expected, StorageCost(tc.size, tc.months, tc.rate), tc)
	}

	require.PanicsWithValue(t, ErrNegativeAmount, func() { StorageCost(-1, 1, 1) })
	require.PanicsWithValue(t, ErrNegativeAmount, func() { StorageCost(1, -1, 1) })
}
