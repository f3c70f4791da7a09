package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pentbox/pentbox/internal/config"
	"github.com/pentbox/pentbox/internal/middleware"
	"github.com/pentbox/pentbox/internal/pent"
	"github.com/pentbox/pentbox/internal/repository"
)

type GameHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseGridDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	grid := dto.GridParams()
	pieces, err := pent.DefaultPieces(grid)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	game := pent.NewGameState(grid)

	params := repository.CreateGameSessionParams{}
	if claims, loggedIn := middleware.PlayerClaims(r.Context()); loggedIn {
		g.logger.Debug("creating player session", "claims", claims)
		params.PlayerId = &claims.PlayerId
	} else {
		g.logger.Debug("creating anonymous session")
	}

	session, err := g.repo.CreateGameSession(r.Context(), game, params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game, pieces))
}

// loadSession fetches a session by path id and decodes its stored game
// state. On failure the response is already written.
func (g GameHandler) loadSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *pent.GameState, []*pent.Piece, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, nil, false
	}

	session, err := g.repo.GetGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session from db", "error", err)
		return nil, nil, nil, false
	}

	game, err := pent.DecodeGameState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", "error", err)
		return nil, nil, nil, false
	}

	pieces, err := pent.DefaultPieces(game.GridParams)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("stored session has an invalid grid", "error", err)
		return nil, nil, nil, false
	}

	return session, game, pieces, true
}

func (g GameHandler) saveAndReply(
	w http.ResponseWriter, r *http.Request,
	session *repository.GameSession, game *pent.GameState, pieces []*pent.Piece,
) {
	if err := g.persistSession(r.Context(), session, game); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game, pieces))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, game, pieces, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game, pieces))
}

func (g GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	dto, err := ParsePlaceMoveDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	session, game, pieces, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	piece := pieceByName(pieces, dto.Piece)
	if err := game.Place(piece, dto.Layer, dto.Index, pieces); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	g.saveAndReply(w, r, session, game, pieces)
}

func (g GameHandler) Remove(w http.ResponseWriter, r *http.Request) {
	session, game, pieces, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	if err := game.Remove(r.URL.Query().Get("piece")); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	g.saveAndReply(w, r, session, game, pieces)
}

// Solve lets the engine finish the box from the current position and
// marks the session as assisted.
func (g GameHandler) Solve(w http.ResponseWriter, r *http.Request) {
	session, game, pieces, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	err := game.Solve(r.Context(), pieces)
	if errors.Is(err, pent.ErrNoSolution) || errors.Is(err, pent.ErrGameOver) {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to solve session", "error", err)
		return
	}

	g.saveAndReply(w, r, session, game, pieces)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, game, pieces, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	game.Forfeit()

	g.saveAndReply(w, r, session, game, pieces)
}

func pieceByName(pieces []*pent.Piece, name string) *pent.Piece {
	for _, piece := range pieces {
		if piece.Name == name {
			return piece
		}
	}
	return nil
}
