package pent

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
)

var (
	ErrUnknownPiece = errors.New("no such piece")
	ErrPieceUsed    = errors.New("piece already placed")
	ErrBadLayer     = errors.New("layer must be 0 or 1")
	ErrBadPlacement = errors.New("no such placement")
	ErrBadCell      = errors.New("cell out of bounds")
	ErrOverlap      = errors.New("placement overlaps the board")
	ErrGameOver     = errors.New("game is over")
)

// GameMove is one piece committed to one layer of the box. Index points
// into the piece's move set so a client can replay or undo it.
type GameMove struct {
	Piece string
	Layer int
	Index int
	Mask  Mask
}

// GameState is a playable session over the packing puzzle: the player
// fits the twelve pieces into the two layers by hand, or asks the engine
// to finish the box.
type GameState struct {
	GridParams
	Won, UsedSolve, GaveUp bool
	Moves                  []GameMove
}

func NewGameState(grid GridParams) *GameState {
	return &GameState{GridParams: grid}
}

func DecodeGameState(buf []byte) (*GameState, error) {
	var game GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *GameState) Over() bool {
	return s.Won || s.GaveUp
}

// LayerMask is the union of every move committed to the layer.
func (s *GameState) LayerMask(layer int) Mask {
	var m Mask
	for _, move := range s.Moves {
		if move.Layer == layer {
			m |= move.Mask
		}
	}
	return m
}

func (s *GameState) used(name string) bool {
	for _, move := range s.Moves {
		if move.Piece == name {
			return true
		}
	}
	return false
}

// Place commits placement index of the piece to a layer. The piece set
// is supplied by the caller (it is not part of the serialized state).
func (s *GameState) Place(piece *Piece, layer, index int, pieces []*Piece) error {
	if s.Over() {
		return ErrGameOver
	}
	if layer != 0 && layer != 1 {
		return ErrBadLayer
	}
	if piece == nil {
		return ErrUnknownPiece
	}
	if s.used(piece.Name) {
		return fmt.Errorf("%w: %s", ErrPieceUsed, piece.Name)
	}
	moves := piece.Placements()
	if index < 0 || index >= len(moves) {
		return fmt.Errorf("%w: %s has %d placements", ErrBadPlacement, piece.Name, len(moves))
	}
	move := moves[index]
	if !move.Fits(s.LayerMask(layer)) {
		return ErrOverlap
	}
	s.Moves = append(s.Moves, GameMove{
		Piece: piece.Name,
		Layer: layer,
		Index: index,
		Mask:  move.Mask,
	})
	s.checkWon(pieces)
	return nil
}

// Remove takes a placed piece back out of the box.
func (s *GameState) Remove(name string) error {
	if s.Over() {
		return ErrGameOver
	}
	for i, move := range s.Moves {
		if move.Piece == name {
			s.Moves = append(s.Moves[:i], s.Moves[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not on the board", ErrUnknownPiece, name)
}

// RemoveAt takes back whichever piece covers the given cell of a layer,
// so a client can undo by pointing at the board instead of naming pieces.
func (s *GameState) RemoveAt(layer, row, col int) error {
	if s.Over() {
		return ErrGameOver
	}
	if layer != 0 && layer != 1 {
		return ErrBadLayer
	}
	if !s.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", ErrBadCell, row, col)
	}
	cell := Mask(1) << (row*s.Width + col)
	for i, move := range s.Moves {
		if move.Layer == layer && move.Mask&cell != 0 {
			s.Moves = append(s.Moves[:i], s.Moves[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: cell (%d, %d) of layer %d is empty", ErrUnknownPiece, row, col, layer)
}

// Solve asks the engine to finish the box from the current position,
// honoring every move already made. Success marks the session as
// assisted. Exhaustion from an unpackable position is ErrNoSolution.
func (s *GameState) Solve(ctx context.Context, pieces []*Piece) error {
	if s.Over() {
		return ErrGameOver
	}

	unused := make([]*Piece, 0, len(pieces))
	for _, piece := range pieces {
		if !s.used(piece.Name) {
			unused = append(unused, piece)
		}
	}

	perLayer := len(pieces) / 2
	var need [2]int
	for layer := range need {
		need[layer] = perLayer
	}
	for _, move := range s.Moves {
		need[move.Layer]--
	}
	if need[0] < 0 || need[1] < 0 || len(pieces)%2 != 0 {
		return ErrNoSolution
	}

	boards := [2]Mask{s.LayerMask(0), s.LayerMask(1)}
	for subset := range combinations(unused, need[0]) {
		if err := ctx.Err(); err != nil {
			return err
		}
		first, ok := solveLayer(boards[0], subset, need[0])
		if !ok {
			continue
		}
		second, ok := solveLayer(boards[1], complementOf(unused, subset), need[1])
		if !ok {
			continue
		}
		s.commitSolved(0, first)
		s.commitSolved(1, second)
		s.UsedSolve = true
		s.checkWon(pieces)
		return nil
	}
	return ErrNoSolution
}

func (s *GameState) commitSolved(layer int, moves []Placement) {
	for _, move := range moves {
		s.Moves = append(s.Moves, GameMove{
			Piece: move.Piece.Name,
			Layer: layer,
			Index: move.Piece.PlacementAt(move.Mask),
			Mask:  move.Mask,
		})
	}
}

// Forfeit ends the session without a win.
func (s *GameState) Forfeit() {
	if !s.Won {
		s.GaveUp = true
	}
}

func (s *GameState) checkWon(pieces []*Piece) {
	if len(s.Moves) != len(pieces) {
		return
	}
	full := s.FullMask()
	if s.LayerMask(0) == full && s.LayerMask(1) == full {
		s.Won = true
	}
}

// LayerArt draws a layer with one glyph per placed piece.
func (s *GameState) LayerArt(layer int, pieces []*Piece) Shape {
	byName := make(map[string]*Piece, len(pieces))
	for _, piece := range pieces {
		byName[piece.Name] = piece
	}
	moves := make([]Placement, 0, len(s.Moves))
	for _, move := range s.Moves {
		if move.Layer == layer {
			moves = append(moves, Placement{Piece: byName[move.Piece], Mask: move.Mask})
		}
	}
	return layerArt(s.GridParams, moves)
}
