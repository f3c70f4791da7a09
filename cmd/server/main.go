package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/lmittmann/tint"

	"github.com/pentbox/pentbox/internal/config"
	"github.com/pentbox/pentbox/internal/database"
	"github.com/pentbox/pentbox/internal/middleware"
	"github.com/pentbox/pentbox/internal/pent"
)

//go:embed migrations/*.sql
var migrations embed.FS

func main() {
	var logHandler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	if config.Development() {
		logHandler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelDebug,
		})
	}
	logger := slog.New(logHandler)
	pent.Log = logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	db, err := database.ConnectAndMigrate(ctx, migrations)
	if err != nil {
		logger.Error("failed to connect and migrate db", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	jwt, err := config.NewJWT()
	if err != nil {
		logger.Error("failed to read jwt config", slog.Any("error", err))
		os.Exit(1)
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		logger.Error("failed to read cookies config", slog.Any("error", err))
		os.Exit(1)
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		logger.Error("failed to read ws config", slog.Any("error", err))
		os.Exit(1)
	}

	app := &application{
		logger:  logger,
		db:      db,
		cookies: cookies,
		jwt:     jwt,
		ws:      ws,
	}

	basePath := config.BasePath()
	var handler http.Handler = app.router()
	if basePath != "" {
		mux := http.NewServeMux()
		mux.Handle(basePath+"/", http.StripPrefix(basePath, handler))
		handler = mux
	}

	port := config.Port()
	server := &http.Server{
		Addr:        port,
		ReadTimeout: time.Second * 15,
		IdleTimeout: time.Second * 60,
		Handler: middleware.Wrap(
			handler,
			middleware.Auth(cookies),
			middleware.Cors(),
			middleware.Logging(logger),
		),
	}

	errCh := make(chan error, 1)
	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to listen and serve: %w", err)
		}
		close(errCh)
	}()

	logger.Info(fmt.Sprintf("pentbox server listening at http://localhost%s%s", port, basePath))

	select {
	case <-ctx.Done():
		break
	case err := <-errCh:
		logger.Error("failed to start", slog.Any("error", err))
		os.Exit(1)
	}

	sCtx, sCancel := context.WithTimeout(context.Background(), time.Second*15)
	defer sCancel()

	server.Shutdown(sCtx)
}
