package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - builds the REST routes of the game server.
func NewRouter(logger *slog.Logger, gameUseCase gameUseCase) http.Handler {
	games := NewHandlers(logger, gameUseCase)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/ping", games.Ping)

	router.Route("/areas/{areaID}", func(r chi.Router) {
		r.Get("/", games.GetState)
		r.Delete("/", games.CloseArea)
		r.Post("/join", games.JoinGame)
		r.Post("/games/{gameID}/move", games.MakeTurn)
		r.Post("/games/{gameID}/leave", games.LeaveGame)
	})

	router.Get("/history", games.History)
	router.Get("/players/{playerID}/history", games.History)

	return router
}

// Start - serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint: contextcheck // the parent is already canceled
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
