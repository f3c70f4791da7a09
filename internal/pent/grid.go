package pent

import (
	"fmt"
	"log/slog"
)

var Log *slog.Logger = slog.Default()

// GridParams describe one layer of the box: a Width x Height field of
// cells indexed row-major, cell (row, col) -> bit row*Width + col.
type GridParams struct {
	Width, Height int
}

func (p GridParams) Cells() int {
	return p.Width * p.Height
}

func (p GridParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.Cells() > MaskBits {
		return fmt.Errorf("grid of %d cells exceeds the %d-bit board mask", p.Cells(), MaskBits)
	}
	return nil
}

// FullMask has every cell bit of the grid set.
func (p GridParams) FullMask() Mask {
	return ^Mask(0) >> (MaskBits - p.Cells())
}

func (p GridParams) InBounds(row, col int) bool {
	return 0 <= row && row < p.Height && 0 <= col && col < p.Width
}

// Seed is the short textual form used to group highscores, e.g. "6x5".
func (p GridParams) Seed() string {
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}

func ParseSeed(seed string) (*GridParams, error) {
	p := &GridParams{}
	n, err := fmt.Sscanf(seed, "%dx%d", &p.Width, &p.Height)
	if n != 2 || err != nil {
		return nil, fmt.Errorf(`invalid grid seed (seed = %q, n = %d, err = %w)`, seed, n, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
