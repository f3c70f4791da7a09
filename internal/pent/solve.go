package pent

import (
	"context"
	"errors"
	"iter"
	"math/rand/v2"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrNoSolution reports exhaustion of the search space. It is a plain
// negative result, not a fault.
var ErrNoSolution = errors.New("puzzle has no solution")

type Options struct {
	Shuffle  bool   // Shuffle randomizes the order pieces are tried in
	Seed     uint64 // Seed makes a shuffled run reproducible
	Parallel int    // Parallel > 1 searches top-level splits concurrently
}

func DefaultOptions() *Options {
	return &Options{}
}

// Solution is a full packing of the box: two layers, each an ordered
// list of pairwise non-overlapping placements covering the grid.
type Solution struct {
	Grid   GridParams
	Layers [2][]Placement
}

// LayerMask is the union of the layer's placements.
func (s *Solution) LayerMask(layer int) Mask {
	var m Mask
	for _, move := range s.Layers[layer] {
		m |= move.Mask
	}
	return m
}

// LayerArt draws a layer with one glyph per piece.
func (s *Solution) LayerArt(layer int) Shape {
	return layerArt(s.Grid, s.Layers[layer])
}

func (s *Solution) String() string {
	return s.LayerArt(0).String() + "\n" + s.LayerArt(1).String()
}

func layerArt(g GridParams, moves []Placement) Shape {
	rows := make([][]byte, g.Height)
	for row := range rows {
		rows[row] = slices.Repeat([]byte{' '}, g.Width)
	}
	for _, move := range moves {
		glyph := byte('?')
		if move.Piece != nil {
			glyph = move.Piece.Glyph()
		}
		for row := range g.Height {
			for col := range g.Width {
				if move.Mask&(1<<(row*g.Width+col)) != 0 {
					rows[row][col] = glyph
				}
			}
		}
	}
	art := make(Shape, g.Height)
	for row := range rows {
		art[row] = string(rows[row])
	}
	return art
}

// Solver packs a set of pieces into the two layers of a box.
type Solver struct {
	grid    GridParams
	pieces  []*Piece
	options *Options
}

func NewSolver(grid GridParams, pieces []*Piece, options *Options) *Solver {
	if options == nil {
		options = DefaultOptions()
	}
	return &Solver{grid: grid, pieces: pieces, options: options}
}

// Solve fixes one piece into the first layer (the anchor), walks every
// way to pick the anchor's five companions, and for each split that
// yields a first layer checks the remaining six pieces for a second.
// Visiting only anchor-inclusive splits covers each unordered pair of
// six-piece groups exactly once. The first fully packed box wins.
//
// An unpackable piece set (wrong piece count or cell arithmetic, or
// plain exhaustion) yields ErrNoSolution.
func (s *Solver) Solve(ctx context.Context) (*Solution, error) {
	order := slices.Clone(s.pieces)
	if s.options.Shuffle {
		rng := rand.New(rand.NewPCG(s.options.Seed, s.options.Seed))
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	perLayer := len(order) / 2
	if !s.packable(order, perLayer) {
		return nil, ErrNoSolution
	}

	if s.options.Parallel > 1 {
		return s.solveParallel(ctx, order, perLayer)
	}

	anchor, others := order[0], order[1:]
	for subset := range combinations(others, perLayer-1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if solution := s.trySplit(order, anchor, subset, perLayer); solution != nil {
			return solution, nil
		}
	}
	return nil, ErrNoSolution
}

// packable rules out piece sets the layer search could never complete:
// it needs an even number of pieces, all of one size, with each layer's
// cell arithmetic matching the grid exactly.
func (s *Solver) packable(order []*Piece, perLayer int) bool {
	if len(order) < 2 || len(order)%2 != 0 {
		return false
	}
	cells := order[0].CellCount()
	for _, piece := range order {
		if piece.CellCount() != cells {
			return false
		}
	}
	return perLayer*cells == s.grid.Cells()
}

func (s *Solver) trySplit(order []*Piece, anchor *Piece, subset []*Piece, perLayer int) *Solution {
	group := make([]*Piece, 0, perLayer)
	group = append(group, subset...)
	group = append(group, anchor)

	first, ok := solveLayer(0, group, perLayer)
	if !ok {
		return nil
	}

	second, ok := solveLayer(0, complementOf(order, group), perLayer)
	if !ok {
		Log.Debug("first layer packed but its complement is not packable",
			"group", pieceNames(group))
		return nil
	}

	return &Solution{Grid: s.grid, Layers: [2][]Placement{first, second}}
}

func (s *Solver) solveParallel(ctx context.Context, order []*Piece, perLayer int) (*Solution, error) {
	parent := ctx
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.options.Parallel)

	// errSolved cancels sibling branches through the group context.
	errSolved := errors.New("solved")
	var (
		mu    sync.Mutex
		found *Solution
	)

	anchor, others := order[0], order[1:]
	for subset := range combinations(others, perLayer-1) {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			solution := s.trySplit(order, anchor, subset, perLayer)
			if solution == nil {
				return nil
			}
			mu.Lock()
			if found == nil {
				found = solution
			}
			mu.Unlock()
			return errSolved
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, errSolved) {
		return nil, err
	}
	if found != nil {
		return found, nil
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNoSolution
}

// solveLayer places n pieces from the candidate list onto the board,
// depth first. Each recursion step only considers pieces after the one
// it just placed, so a subset of pieces is tried in exactly one order.
// Board states are values; branches never share speculative state.
func solveLayer(board Mask, candidates []*Piece, n int) ([]Placement, bool) {
	if n == 0 {
		return nil, true
	}
	for i, piece := range candidates {
		for _, move := range piece.placements {
			if !move.Fits(board) {
				continue
			}
			rest, ok := solveLayer(board|move.Mask, candidates[i+1:], n-1)
			if ok {
				return append([]Placement{move}, rest...), true
			}
		}
	}
	return nil, false
}

// complementOf returns the pieces of all that are not in group.
func complementOf(all, group []*Piece) []*Piece {
	in := make(map[*Piece]struct{}, len(group))
	for _, piece := range group {
		in[piece] = struct{}{}
	}
	out := make([]*Piece, 0, len(all)-len(group))
	for _, piece := range all {
		if _, ok := in[piece]; !ok {
			out = append(out, piece)
		}
	}
	return out
}

// combinations yields every k-element subset of items, in lexicographic
// index order. Each yielded slice is freshly allocated.
func combinations[T any](items []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if k < 0 || k > len(items) {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			pick := make([]T, k)
			for i, j := range idx {
				pick[i] = items[j]
			}
			if !yield(pick) {
				return
			}
			i := k - 1
			for i >= 0 && idx[i] == len(items)-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

func pieceNames(pieces []*Piece) []string {
	names := make([]string, len(pieces))
	for i, piece := range pieces {
		names[i] = piece.Name
	}
	return names
}
