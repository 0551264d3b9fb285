package app

import (
	"net/http"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/handlers"
	"github.com/vancomm/minesweeper/internal/metrics"
	"github.com/vancomm/minesweeper/internal/mines"
)

func (a *App) loadRoutes() {
	router := a.router
	if base := config.BasePath(); base != "" {
		router = a.router.PathPrefix(base).Subrouter()
	}

	game := handlers.NewGameHandler(
		a.logger, a.sessions, a.jwt, a.ws, mines.NewRand(),
	)

	router.Methods("POST").Path("/game").HandlerFunc(game.NewGame)
	router.Methods("GET").Path("/game/{id}").HandlerFunc(game.Fetch)
	router.Methods("POST").Path("/game/{id}/move").HandlerFunc(game.Move)
	router.Methods("GET").Path("/game/{id}/solution").HandlerFunc(game.Solution)
	router.Methods("GET").Path("/game/{id}/hint").HandlerFunc(game.Hint)
	router.Methods("GET").Path("/game/{id}/connect").HandlerFunc(game.ConnectWS)

	router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	router.Handle("/metrics", metrics.Handler())
}
