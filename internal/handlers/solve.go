package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pentbox/pentbox/internal/pent"
)

type SolverHandler struct {
	logger *slog.Logger
}

func NewSolverHandler(logger *slog.Logger) *SolverHandler {
	return &SolverHandler{logger: logger}
}

// PieceDefDTO lets a caller post a custom piece set as JSON; an empty
// request body means the default twelve-piece set.
type PieceDefDTO struct {
	Name string   `json:"name"`
	Art  []string `json:"art"`
}

func parsePieces(r *http.Request, grid pent.GridParams) ([]*pent.Piece, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return pent.DefaultPieces(grid)
	}

	var defs []PieceDefDTO
	if err := json.Unmarshal(body, &defs); err != nil {
		return nil, fmt.Errorf("request body must be a JSON array of pieces: %w", err)
	}
	pieces := make([]*pent.Piece, 0, len(defs))
	for _, def := range defs {
		piece, err := pent.NewPiece(def.Name, grid, pent.Shape(def.Art))
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, piece)
	}
	return pieces, nil
}

// Solve runs the packing search and reports the first solution found, or
// solved=false on exhaustion. Exhaustion is a result, not an error.
func (h SolverHandler) Solve(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseSolveRequestDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	grid := dto.GridParams()
	if err := grid.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	pieces, err := parsePieces(r, grid)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	options := &pent.Options{
		Shuffle:  dto.Shuffle,
		Seed:     dto.Seed,
		Parallel: dto.Parallel,
	}

	start := time.Now()
	solution, err := pent.NewSolver(grid, pieces, options).Solve(r.Context())
	elapsed := time.Since(start)

	if err != nil && !errors.Is(err, pent.ErrNoSolution) {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("solver failed", "error", err)
		return
	}

	h.logger.Info("solve finished",
		slog.String("grid", grid.Seed()),
		slog.Bool("solved", solution != nil),
		slog.Int64("durationMs", elapsed.Milliseconds()),
	)

	sendJSONOrLog(w, h.logger, NewSolutionDTO(solution, elapsed))
}

// Pieces lists the piece set for a grid along with each piece's
// precomputed placement count.
func (h SolverHandler) Pieces(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseGridDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	pieces, err := pent.DefaultPieces(dto.GridParams())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	dtos := make([]PieceDTO, 0, len(pieces))
	for _, piece := range pieces {
		dtos = append(dtos, NewPieceDTO(piece))
	}
	sendJSONOrLog(w, h.logger, dtos)
}
