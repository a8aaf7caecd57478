package app

import (
	"math/rand/v2"
	"net/http"
	"sync/atomic"

	"github.com/jordan-pw/minesweeper/internal/handlers"
	"github.com/jordan-pw/minesweeper/internal/middleware"
	"github.com/jordan-pw/minesweeper/internal/mines"
)

// newPlacerFactory gives every game its own source. With a non-zero seed
// the n-th game created is laid out the same on every run.
func newPlacerFactory(seed uint64) func() mines.Placer {
	if seed == 0 {
		return func() mines.Placer {
			return mines.RandomPlacer(mines.NewSource())
		}
	}
	var n atomic.Uint64
	return func() mines.Placer {
		return mines.RandomPlacer(rand.NewPCG(seed, n.Add(1)))
	}
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, a.store, a.cfg.Game, a.jwt, a.cookies, a.ws,
	)
	auth := middleware.Session(a.logger, a.jwt)
	session := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.Handle("GET /v1/game/{id}", session(game.Fetch))
	a.router.Handle("POST /v1/game/{id}/reveal", session(game.Reveal))
	a.router.Handle("POST /v1/game/{id}/flag", session(game.Flag))
	a.router.Handle("POST /v1/game/{id}/configure", session(game.Configure))
	a.router.Handle("POST /v1/game/{id}/batch", session(game.Batch))
	a.router.Handle("GET /v1/game/{id}/connect", session(game.ConnectWS))
	a.router.Handle("DELETE /v1/game/{id}", session(game.Delete))
}
