package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pentbox/pentbox/internal/pent"
)

// Highscore is one unassisted win: the session ended with the box packed
// by hand, without the solver.
type Highscore struct {
	GameSessionId int64   `json:"game_session_id"`
	Username      *string `json:"username"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	PlaytimeMs    float64 `json:"playtime_ms"`
}

type HighscoreFilter struct {
	Username *string
	Grid     *pent.GridParams
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := []string{
		"won",
		"NOT used_solve",
		"NOT gave_up",
		"ended_at IS NOT NULL",
	}
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Grid != nil {
		clauses = append(clauses, "width = @width", "height = @height")
		args["width"] = f.Grid.Width
		args["height"] = f.Grid.Height
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	where, args := filter.WhereClause()
	query := `
	SELECT
		s.game_session_id,
		p.username,
		s.width,
		s.height,
		extract(epoch FROM (s.ended_at - s.started_at)) * 1000 AS playtime_ms
	FROM game_session s
	LEFT JOIN player p USING (player_id)
	WHERE ` + where + `
	ORDER BY playtime_ms ASC
	LIMIT 50;`

	rows, _ := q.db.Query(ctx, query, args)
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
