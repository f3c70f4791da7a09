package pent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testGrid = GridParams{Width: 6, Height: 5}

func TestPlacementInvariants(t *testing.T) {
	t.Parallel()

	pieces, err := DefaultPieces(testGrid)
	require.NoError(t, err)
	require.Len(t, pieces, 12)

	for _, piece := range pieces {
		t.Run(piece.Name, func(t *testing.T) {
			t.Parallel()
			seen := make(map[Mask]struct{})
			for _, move := range piece.Placements() {
				if got := move.Mask.OnesCount(); got != piece.CellCount() {
					t.Errorf("placement %b has %d set bits, want %d", move.Mask, got, piece.CellCount())
				}
				if move.Mask>>testGrid.Cells() != 0 {
					t.Errorf("placement %b has bits beyond cell %d", move.Mask, testGrid.Cells()-1)
				}
				if _, dup := seen[move.Mask]; dup {
					t.Errorf("duplicate placement %b", move.Mask)
				}
				seen[move.Mask] = struct{}{}
			}
		})
	}
}

func TestPlacementCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		art   Shape
		count int
	}{
		// a 1x5 bar: 2 horizontal positions in each of 5 rows, plus
		// 1 vertical position in each of 6 columns
		{"i", Shape{"-----"}, 16},
		// the plus is symmetric under all 8 transforms, leaving only
		// its 4x3 grid of translations
		{"plus", Shape{" | ", "-|-", " | "}, 12},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			piece, err := NewPiece(test.name, testGrid, test.art)
			require.NoError(t, err)
			require.Len(t, piece.Placements(), test.count)
		})
	}
}

func TestFitsAndCombined(t *testing.T) {
	t.Parallel()

	piece, err := NewPiece("i", testGrid, Shape{"-----"})
	require.NoError(t, err)

	moves := piece.Placements()
	for _, a := range moves {
		for _, b := range moves {
			if a.Fits(b.Mask) != b.Fits(a.Mask) {
				t.Fatalf("fits is not symmetric for %b and %b", a.Mask, b.Mask)
			}
			if a.Fits(b.Mask) {
				combined := a.Combined(b)
				want := a.Mask.OnesCount() + b.Mask.OnesCount()
				if combined.Mask.OnesCount() != want {
					t.Fatalf("combined %b and %b lost cells", a.Mask, b.Mask)
				}
			}
		}
	}
}

func TestNewPieceValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		grid GridParams
		art  Shape
	}{
		{"empty art", testGrid, Shape{}},
		{"ragged art", testGrid, Shape{"--", "-"}},
		{"blank art", testGrid, Shape{"  ", "  "}},
		{"too large", GridParams{Width: 2, Height: 2}, Shape{"-----"}},
		{"bad grid", GridParams{Width: 0, Height: 5}, Shape{"-"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewPiece("bad", test.grid, test.art); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestPlacementArtRoundTrip(t *testing.T) {
	t.Parallel()

	piece, err := NewPiece("w", testGrid, Shape{"-+ ", " ++", "  |"})
	require.NoError(t, err)

	for _, move := range piece.Placements() {
		art := move.Art(testGrid, 'w')
		require.Equal(t, move.Mask, maskOf(art), "art round trip for %b", move.Mask)
	}
}
