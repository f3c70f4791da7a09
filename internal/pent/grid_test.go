package pent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGridSeedRoundTrip(t *testing.T) {
	t.Parallel()

	grid := GridParams{Width: 6, Height: 5}
	require.Equal(t, "6x5", grid.Seed())

	parsed, err := ParseSeed("6x5")
	require.NoError(t, err)
	require.Equal(t, grid, *parsed)
}

func TestInBounds(t *testing.T) {
	t.Parallel()

	grid := GridParams{Width: 6, Height: 5}
	tests := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{4, 5, true},
		{-1, 0, false},
		{0, -1, false},
		{5, 0, false},
		{0, 6, false},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, grid.InBounds(tc.row, tc.col),
			"(%d, %d)", tc.row, tc.col)
	}
}

func TestParseSeedRejectsGarbage(t *testing.T) {
	t.Parallel()

	tests := []string{"", "6", "6:5", "0x5", "-1x5", "9x9"}
	for _, seed := range tests {
		t.Run(seed, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseSeed(seed); err == nil {
				t.Errorf("expected %q to be rejected", seed)
			}
		})
	}
}
