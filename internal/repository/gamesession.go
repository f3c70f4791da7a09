package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pentbox/pentbox/internal/pent"
)

type GameSession struct {
	GameSessionId int64
	PlayerId      *int64
	Width         int
	Height        int
	Won           bool
	UsedSolve     bool
	GaveUp        bool
	State         []byte
	StartedAt     time.Time
	EndedAt       *time.Time
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type CreateGameSessionParams struct {
	PlayerId *int64
}

func (q Queries) CreateGameSession(
	ctx context.Context, state *pent.GameState, params CreateGameSessionParams,
) (*GameSession, error) {
	buf, err := state.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"width":      state.Width,
		"height":     state.Height,
		"won":        state.Won,
		"used_solve": state.UsedSolve,
		"gave_up":    state.GaveUp,
		"state":      buf,
	}
	if params.PlayerId != nil {
		args["player_id"] = *params.PlayerId
	} else {
		args["player_id"] = nil
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, width, height, won, used_solve, gave_up, state
		)
		VALUES (
			@player_id, @width, @height, @won, @used_solve, @gave_up, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

func (q Queries) GetGameSession(ctx context.Context, gameSessionId int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

type UpdateGameSessionParams struct {
	GameSessionId int64
	State         []byte
	Won           bool
	UsedSolve     bool
	GaveUp        bool
	EndedAt       *time.Time
}

func (q Queries) UpdateGameSession(ctx context.Context, params UpdateGameSessionParams) error {
	_, err := q.db.Exec(
		ctx,
		`UPDATE game_session SET
			state = @state,
			won = @won,
			used_solve = @used_solve,
			gave_up = @gave_up,
			ended_at = @ended_at,
			updated_at = now()
		WHERE game_session_id = @game_session_id;`,
		pgx.NamedArgs{
			"game_session_id": params.GameSessionId,
			"state":           params.State,
			"won":             params.Won,
			"used_solve":      params.UsedSolve,
			"gave_up":         params.GaveUp,
			"ended_at":        params.EndedAt,
		},
	)
	return err
}
