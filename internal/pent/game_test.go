package pent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func pieceByName(pieces []*Piece, name string) *Piece {
	for _, piece := range pieces {
		if piece.Name == name {
			return piece
		}
	}
	return nil
}

func TestGameReplaySolutionWins(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	t.Parallel()

	pieces, err := DefaultPieces(testGrid)
	require.NoError(t, err)

	solution, err := NewSolver(testGrid, pieces, nil).Solve(context.Background())
	require.NoError(t, err)

	game := NewGameState(testGrid)
	for layer := range solution.Layers {
		for _, move := range solution.Layers[layer] {
			index := move.Piece.PlacementAt(move.Mask)
			require.NotEqual(t, -1, index)
			require.NoError(t, game.Place(move.Piece, layer, index, pieces))
		}
	}

	require.True(t, game.Won)
	require.False(t, game.UsedSolve)
	require.ErrorIs(t, game.Remove("plus"), ErrGameOver)
}

func TestGamePlaceRejections(t *testing.T) {
	t.Parallel()

	pieces, err := DefaultPieces(testGrid)
	require.NoError(t, err)

	game := NewGameState(testGrid)
	plus := pieceByName(pieces, "plus")
	require.NoError(t, game.Place(plus, 0, 0, pieces))

	require.ErrorIs(t, game.Place(plus, 1, 0, pieces), ErrPieceUsed)
	require.ErrorIs(t, game.Place(nil, 0, 0, pieces), ErrUnknownPiece)
	require.ErrorIs(t, game.Place(pieceByName(pieces, "L"), 2, 0, pieces), ErrBadLayer)
	require.ErrorIs(t, game.Place(pieceByName(pieces, "L"), 0, -1, pieces), ErrBadPlacement)

	// any placement sharing a cell with the plus must be refused on its
	// layer, and the very same placement must still fit on the other one
	mask := game.Moves[0].Mask
	ell := pieceByName(pieces, "L")
	colliding := -1
	for index, move := range ell.Placements() {
		if !move.Fits(mask) {
			colliding = index
			break
		}
	}
	require.NotEqual(t, -1, colliding)
	require.ErrorIs(t, game.Place(ell, 0, colliding, pieces), ErrOverlap)
	require.NoError(t, game.Place(ell, 1, colliding, pieces))
}

func TestGameRemove(t *testing.T) {
	t.Parallel()

	pieces, err := DefaultPieces(testGrid)
	require.NoError(t, err)

	game := NewGameState(testGrid)
	plus := pieceByName(pieces, "plus")
	require.NoError(t, game.Place(plus, 0, 3, pieces))
	require.NoError(t, game.Remove("plus"))
	require.Empty(t, game.Moves)
	require.ErrorIs(t, game.Remove("plus"), ErrUnknownPiece)

	// freed pieces can go back in
	require.NoError(t, game.Place(plus, 0, 3, pieces))
}

func TestGameRemoveAt(t *testing.T) {
	t.Parallel()

	pieces, err := DefaultPieces(testGrid)
	require.NoError(t, err)

	game := NewGameState(testGrid)
	plus := pieceByName(pieces, "plus")
	require.NoError(t, game.Place(plus, 0, 0, pieces))

	// pick any cell the plus occupies
	mask := game.Moves[0].Mask
	bit := 0
	for mask&(1<<bit) == 0 {
		bit++
	}
	row, col := bit/testGrid.Width, bit%testGrid.Width

	require.ErrorIs(t, game.RemoveAt(2, row, col), ErrBadLayer)
	require.ErrorIs(t, game.RemoveAt(0, -1, col), ErrBadCell)
	require.ErrorIs(t, game.RemoveAt(0, row, testGrid.Width), ErrBadCell)
	require.ErrorIs(t, game.RemoveAt(1, row, col), ErrUnknownPiece)

	require.NoError(t, game.RemoveAt(0, row, col))
	require.Empty(t, game.Moves)
	require.ErrorIs(t, game.RemoveAt(0, row, col), ErrUnknownPiece)
}

func TestGameSolveFromPartialPosition(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	t.Parallel()

	pieces, err := DefaultPieces(testGrid)
	require.NoError(t, err)

	// start from a position known to be completable
	solution, err := NewSolver(testGrid, pieces, nil).Solve(context.Background())
	require.NoError(t, err)
	seed := solution.Layers[0][0]

	game := NewGameState(testGrid)
	require.NoError(t, game.Place(seed.Piece, 0, seed.Piece.PlacementAt(seed.Mask), pieces))

	require.NoError(t, game.Solve(context.Background(), pieces))
	require.True(t, game.UsedSolve)
	require.True(t, game.Won)
	require.Len(t, game.Moves, len(pieces))

	require.Equal(t, testGrid.FullMask(), game.LayerMask(0))
	require.Equal(t, testGrid.FullMask(), game.LayerMask(1))
}

func TestGameStateRoundTrip(t *testing.T) {
	t.Parallel()

	pieces, err := DefaultPieces(testGrid)
	require.NoError(t, err)

	game := NewGameState(testGrid)
	require.NoError(t, game.Place(pieceByName(pieces, "w"), 1, 5, pieces))

	buf, err := game.Bytes()
	require.NoError(t, err)
	decoded, err := DecodeGameState(buf)
	require.NoError(t, err)

	require.Equal(t, game.GridParams, decoded.GridParams)
	require.Equal(t, game.Moves, decoded.Moves)
	require.False(t, decoded.Over())
}

func TestGameForfeit(t *testing.T) {
	t.Parallel()

	game := NewGameState(testGrid)
	game.Forfeit()
	require.True(t, game.GaveUp)
	require.ErrorIs(t, game.Remove("plus"), ErrGameOver)
}
