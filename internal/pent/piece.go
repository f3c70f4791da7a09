package pent

import (
	"fmt"
)

// Piece is a named shape together with every distinct way it can be laid
// into the grid (its moves). The move set is computed once at
// construction and never changes.
type Piece struct {
	Name string

	grid       GridParams
	art        Shape
	placements []Placement
}

// NewPiece validates the glyph art and eagerly enumerates the piece's
// placements: every rotation, mirror and translation that stays inside
// the grid, deduplicated by mask. Symmetric shapes collapse to fewer
// than eight orientations.
func NewPiece(name string, grid GridParams, art Shape) (*Piece, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("piece must have a name")
	}
	if !art.rectangular() {
		return nil, fmt.Errorf("piece %q: art rows must be non-empty and of equal length", name)
	}
	cells := art.cellCount()
	if cells == 0 {
		return nil, fmt.Errorf("piece %q: art has no filled cells", name)
	}
	if cells > grid.Cells() {
		return nil, fmt.Errorf("piece %q: %d cells cannot fit a %s grid", name, cells, grid.Seed())
	}

	p := &Piece{Name: name, grid: grid, art: art}

	seen := make(map[Mask]struct{})
	for _, rotation := range art.rotations() {
		for _, flip := range rotation.flips() {
			for _, field := range flip.translations(grid.Width, grid.Height) {
				mask := maskOf(field)
				if _, ok := seen[mask]; ok {
					continue
				}
				seen[mask] = struct{}{}
				p.placements = append(p.placements, Placement{Piece: p, Mask: mask})
			}
		}
	}
	if len(p.placements) == 0 {
		return nil, fmt.Errorf("piece %q does not fit a %s grid in any orientation", name, grid.Seed())
	}

	return p, nil
}

// Placements returns the piece's move set. Callers must not modify it.
func (p *Piece) Placements() []Placement {
	return p.placements
}

func (p *Piece) CellCount() int {
	return p.art.cellCount()
}

func (p *Piece) Art() Shape {
	return p.art
}

// Glyph is the single character the piece is drawn with in a solved
// layer.
func (p *Piece) Glyph() byte {
	return p.Name[0]
}

// PlacementAt finds the index of a placement with the given mask within
// the piece's move set, or -1.
func (p *Piece) PlacementAt(mask Mask) int {
	for i, move := range p.placements {
		if move.Mask == mask {
			return i
		}
	}
	return -1
}

// DefaultPieces is the wooden set shipped with the 6x5x2 box: twelve
// five-cell pieces, six per layer.
func DefaultPieces(grid GridParams) ([]*Piece, error) {
	defs := []struct {
		name string
		art  Shape
	}{
		{"plus", Shape{" | ", "-|-", " | "}},
		{"L", Shape{"|  ", "|  ", "+--"}},
		{"u", Shape{"---", "| |"}},
		{"q", Shape{"++", "++", " |"}},
		{"f", Shape{" | ", "-+-", "  |"}},
		{"z", Shape{"--+ ", "  +-"}},
		{"p", Shape{"-+--", " |  "}},
		{"t", Shape{"-+-", " | ", " | "}},
		{"w", Shape{"-+ ", " ++", "  |"}},
		{"2", Shape{"+  ", "+-+", "  |"}},
		{"r", Shape{"+---", "|   "}},
		{"i", Shape{"-----"}},
	}

	pieces := make([]*Piece, 0, len(defs))
	for _, def := range defs {
		piece, err := NewPiece(def.name, grid, def.art)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, piece)
	}
	return pieces, nil
}
