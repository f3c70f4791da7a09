package pent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombinations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []int
		k     int
		count int
	}{
		{"5 choose 2", []int{1, 2, 3, 4, 5}, 2, 10},
		{"3 choose 0", []int{1, 2, 3}, 0, 1},
		{"3 choose 3", []int{1, 2, 3}, 3, 1},
		{"2 choose 3", []int{1, 2}, 3, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			count := 0
			for pick := range combinations(test.items, test.k) {
				require.Len(t, pick, test.k)
				count++
			}
			require.Equal(t, test.count, count)
		})
	}
}

func requireValidSolution(t *testing.T, grid GridParams, pieces []*Piece, solution *Solution) {
	t.Helper()

	used := make(map[string]int)
	for layer := range solution.Layers {
		moves := solution.Layers[layer]
		require.Len(t, moves, len(pieces)/2)
		var board Mask
		for _, move := range moves {
			require.True(t, move.Fits(board), "layer %d has overlapping placements", layer)
			board |= move.Mask
			used[move.Piece.Name]++
		}
		require.Equal(t, grid.FullMask(), board, "layer %d does not cover the grid", layer)
		require.Equal(t, board, solution.LayerMask(layer))
	}
	require.Len(t, used, len(pieces))
	for name, n := range used {
		require.Equal(t, 1, n, "piece %s placed %d times", name, n)
	}
}

func TestSolveDefaultBox(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	t.Parallel()

	pieces, err := DefaultPieces(testGrid)
	require.NoError(t, err)

	solution, err := NewSolver(testGrid, pieces, nil).Solve(context.Background())
	require.NoError(t, err)
	requireValidSolution(t, testGrid, pieces, solution)
}

func TestSolveIsDeterministicUnderSeed(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	t.Parallel()

	pieces, err := DefaultPieces(testGrid)
	require.NoError(t, err)

	options := &Options{Shuffle: true, Seed: 42}
	first, err := NewSolver(testGrid, pieces, options).Solve(context.Background())
	require.NoError(t, err)
	second, err := NewSolver(testGrid, pieces, options).Solve(context.Background())
	require.NoError(t, err)

	for layer := range first.Layers {
		require.Equal(t, len(first.Layers[layer]), len(second.Layers[layer]))
		for i := range first.Layers[layer] {
			require.Equal(t, first.Layers[layer][i].Mask, second.Layers[layer][i].Mask)
		}
	}
}

func TestSolveParallel(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	t.Parallel()

	pieces, err := DefaultPieces(testGrid)
	require.NoError(t, err)

	options := &Options{Parallel: 4}
	solution, err := NewSolver(testGrid, pieces, options).Solve(context.Background())
	require.NoError(t, err)
	requireValidSolution(t, testGrid, pieces, solution)
}

func TestSolveUnpackableSets(t *testing.T) {
	t.Parallel()

	pieces, err := DefaultPieces(testGrid)
	require.NoError(t, err)

	tests := []struct {
		name   string
		pieces []*Piece
	}{
		{"too few pieces", pieces[:4]},
		{"odd piece count", pieces[:5]},
		{"empty set", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewSolver(testGrid, test.pieces, nil).Solve(context.Background())
			require.ErrorIs(t, err, ErrNoSolution)
		})
	}
}

func TestSolveHonorsCancellation(t *testing.T) {
	t.Parallel()

	pieces, err := DefaultPieces(testGrid)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewSolver(testGrid, pieces, nil).Solve(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSolutionRendering(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	t.Parallel()

	pieces, err := DefaultPieces(testGrid)
	require.NoError(t, err)

	solution, err := NewSolver(testGrid, pieces, nil).Solve(context.Background())
	require.NoError(t, err)

	for layer := range solution.Layers {
		art := solution.LayerArt(layer)
		require.Len(t, art, testGrid.Height)
		for _, row := range art {
			require.Len(t, row, testGrid.Width)
			require.NotContains(t, row, " ")
		}
	}
}
