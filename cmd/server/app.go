package main

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pentbox/pentbox/internal/config"
	"github.com/pentbox/pentbox/internal/handlers"
)

type application struct {
	logger  *slog.Logger
	db      *pgxpool.Pool
	cookies *config.Cookies
	jwt     *config.JWT
	ws      *config.WebSocket
}

func (app *application) router() *http.ServeMux {
	router := http.NewServeMux()

	solver := handlers.NewSolverHandler(app.logger)
	router.HandleFunc("GET /pieces", solver.Pieces)
	router.HandleFunc("POST /solve", solver.Solve)

	game := handlers.NewGameHandler(app.logger, app.db, app.ws)
	router.HandleFunc("POST /game", game.NewGame)
	router.HandleFunc("GET /game/{id}", game.Fetch)
	router.HandleFunc("POST /game/{id}/move", game.Place)
	router.HandleFunc("POST /game/{id}/remove", game.Remove)
	router.HandleFunc("POST /game/{id}/solve", game.Solve)
	router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	router.HandleFunc("/game/{id}/connect", game.ConnectWS)
	router.HandleFunc("GET /highscores", game.Highscores)

	auth := handlers.NewAuth(app.logger, app.db, app.cookies, app.jwt)
	router.HandleFunc("GET /me", auth.Me)
	router.HandleFunc("POST /register", auth.Register)
	router.HandleFunc("POST /login", auth.Login)
	router.HandleFunc("POST /logout", auth.Logout)

	router.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return router
}
