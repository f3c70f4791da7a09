package handlers

import (
	"strconv"
	"time"

	"github.com/gorilla/schema"

	"github.com/pentbox/pentbox/internal/pent"
	"github.com/pentbox/pentbox/internal/repository"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

// GridDTO defaults to the reference 6x5 box when width/height are not
// supplied.
type GridDTO struct {
	Width  int `schema:"width"`
	Height int `schema:"height"`
}

func (dto GridDTO) GridParams() pent.GridParams {
	grid := pent.GridParams{Width: dto.Width, Height: dto.Height}
	if grid.Width == 0 && grid.Height == 0 {
		grid = pent.GridParams{Width: 6, Height: 5}
	}
	return grid
}

func ParseGridDTO(src map[string][]string) (GridDTO, error) {
	var dto GridDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type SolveRequestDTO struct {
	GridDTO
	Shuffle  bool   `schema:"shuffle"`
	Seed     uint64 `schema:"seed"`
	Parallel int    `schema:"parallel"`
}

func ParseSolveRequestDTO(src map[string][]string) (SolveRequestDTO, error) {
	var dto SolveRequestDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type PlaceMoveDTO struct {
	Piece string `schema:"piece,required"`
	Layer int    `schema:"layer"`
	Index int    `schema:"index"`
}

func ParsePlaceMoveDTO(src map[string][]string) (PlaceMoveDTO, error) {
	var dto PlaceMoveDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type PieceDTO struct {
	Name       string   `json:"name"`
	Art        []string `json:"art"`
	Cells      int      `json:"cells"`
	Placements int      `json:"placements"`
}

func NewPieceDTO(piece *pent.Piece) PieceDTO {
	return PieceDTO{
		Name:       piece.Name,
		Art:        piece.Art(),
		Cells:      piece.CellCount(),
		Placements: len(piece.Placements()),
	}
}

type SolutionDTO struct {
	Solved     bool       `json:"solved"`
	Layers     [][]string `json:"layers,omitempty"`
	DurationMs int64      `json:"duration_ms"`
}

func NewSolutionDTO(solution *pent.Solution, elapsed time.Duration) SolutionDTO {
	dto := SolutionDTO{DurationMs: elapsed.Milliseconds()}
	if solution == nil {
		return dto
	}
	dto.Solved = true
	for layer := range solution.Layers {
		dto.Layers = append(dto.Layers, solution.LayerArt(layer))
	}
	return dto
}

type GameMoveDTO struct {
	Piece string `json:"piece"`
	Layer int    `json:"layer"`
	Index int    `json:"index"`
}

type GameSessionDTO struct {
	GameSessionId string        `json:"game_session_id"`
	Width         int           `json:"width"`
	Height        int           `json:"height"`
	Won           bool          `json:"won"`
	UsedSolve     bool          `json:"used_solve"`
	GaveUp        bool          `json:"gave_up"`
	Moves         []GameMoveDTO `json:"moves"`
	Layers        [][]string    `json:"layers"`
	StartedAt     int64         `json:"started_at"`
	EndedAt       *int64        `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(
	session *repository.GameSession, game *pent.GameState, pieces []*pent.Piece,
) *GameSessionDTO {
	var endedAt *int64
	if session.EndedAt != nil {
		e := session.EndedAt.UnixMilli()
		endedAt = &e
	}
	moves := make([]GameMoveDTO, 0, len(game.Moves))
	for _, move := range game.Moves {
		moves = append(moves, GameMoveDTO{
			Piece: move.Piece,
			Layer: move.Layer,
			Index: move.Index,
		})
	}
	return &GameSessionDTO{
		GameSessionId: strconv.FormatInt(session.GameSessionId, 10),
		Width:         game.Width,
		Height:        game.Height,
		Won:           game.Won,
		UsedSolve:     game.UsedSolve,
		GaveUp:        game.GaveUp,
		Moves:         moves,
		Layers: [][]string{
			game.LayerArt(0, pieces),
			game.LayerArt(1, pieces),
		},
		StartedAt: session.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	}
}
