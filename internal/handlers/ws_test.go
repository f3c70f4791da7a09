package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pentbox/pentbox/internal/pent"
)

func TestExecuteCommands(t *testing.T) {
	t.Parallel()

	grid := pent.GridParams{Width: 6, Height: 5}
	pieces, err := pent.DefaultPieces(grid)
	require.NoError(t, err)

	game := pent.NewGameState(grid)
	ctx := context.Background()

	require.Error(t, execute(ctx, game, pieces, ""))
	require.Error(t, execute(ctx, game, pieces, "q"))
	require.Error(t, execute(ctx, game, pieces, "p plus 0"))
	require.Error(t, execute(ctx, game, pieces, "p plus zero 0"))
	require.Error(t, execute(ctx, game, pieces, "c 0 two 4"))

	require.NoError(t, execute(ctx, game, pieces, "g"))
	require.NoError(t, execute(ctx, game, pieces, "p plus 0 0"))
	require.Len(t, game.Moves, 1)

	// clear by cell: some cell of the committed mask, then an empty one
	mask := game.Moves[0].Mask
	bit := 0
	for mask&(1<<bit) == 0 {
		bit++
	}
	row, col := bit/grid.Width, bit%grid.Width
	require.ErrorIs(t,
		execute(ctx, game, pieces, "c 1 0 0"), pent.ErrUnknownPiece)
	require.NoError(t, execute(ctx, game, pieces,
		fmt.Sprintf("c 0 %d %d", row, col)))
	require.Empty(t, game.Moves)

	require.NoError(t, execute(ctx, game, pieces, "f"))
	require.True(t, game.GaveUp)
	require.ErrorIs(t, execute(ctx, game, pieces, "r plus"), pent.ErrGameOver)
}
