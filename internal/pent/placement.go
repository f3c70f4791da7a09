package pent

import (
	"math/bits"
	"strings"
)

// MaskBits caps the supported board size: a board state is one machine word.
const MaskBits = 64

// Mask is a board state: one bit per cell, bit row*Width + col, set when
// the cell is occupied.
type Mask uint64

func (m Mask) OnesCount() int {
	return bits.OnesCount64(uint64(m))
}

func (m Mask) Overlaps(other Mask) bool {
	return m&other != 0
}

// maskOf converts a full-field drawing to a board mask.
func maskOf(field Shape) Mask {
	var m Mask
	i := 0
	for _, row := range field {
		for _, c := range row {
			if c != ' ' {
				m |= 1 << i
			}
			i++
		}
	}
	return m
}

// Placement is one piece fixed at a specific orientation and position,
// as a mask over the whole board. Placements are compared by mask alone;
// the piece reference is carried for display.
type Placement struct {
	Piece *Piece
	Mask  Mask
}

// Fits reports whether this placement and a board state (or another
// placement's mask) can coexist without sharing a cell.
func (p Placement) Fits(board Mask) bool {
	return p.Mask&board == 0
}

// Combined is the board state after making both moves. The piece
// reference of the receiver is kept for display only; a combined mask no
// longer describes a single piece.
func (p Placement) Combined(other Placement) Placement {
	return Placement{Piece: p.Piece, Mask: p.Mask | other.Mask}
}

// Art is the inverse of maskOf: the placement drawn on a full-size field
// with the given glyph. Used only for output.
func (p Placement) Art(g GridParams, glyph byte) Shape {
	out := make(Shape, g.Height)
	for row := range g.Height {
		var b strings.Builder
		for col := range g.Width {
			if p.Mask&(1<<(row*g.Width+col)) != 0 {
				b.WriteByte(glyph)
			} else {
				b.WriteByte(' ')
			}
		}
		out[row] = b.String()
	}
	return out
}
