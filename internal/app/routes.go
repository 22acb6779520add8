package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vancomm/minesweeper-hint/internal/config"
	"github.com/vancomm/minesweeper-hint/internal/handlers"
	"github.com/vancomm/minesweeper-hint/internal/middleware"
	"github.com/vancomm/minesweeper-hint/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

type route struct {
	method  string
	path    string
	handler http.HandlerFunc
}

func (a *App) loadRoutes() {
	repo := repository.New(a.db)
	game := handlers.NewGameHandler(a.log, repo, a.ws, a.limiter, createRand())
	auth := handlers.NewAuth(a.log, repo, a.cookies)

	base := config.BasePath()
	for _, r := range []route{
		{http.MethodPost, "/game", game.NewGame},
		{http.MethodGet, "/game/{id}", game.Fetch},
		{http.MethodPost, "/game/{id}/move", game.MakeAMove},
		{http.MethodGet, "/game/{id}/hint", game.Hint},
		{http.MethodPost, "/game/{id}/forfeit", game.Forfeit},
		{http.MethodGet, "/game/{id}/connect", game.ConnectWS},
		{http.MethodPost, "/auth/register", auth.Register},
		{http.MethodPost, "/auth/login", auth.Login},
		{http.MethodPost, "/auth/logout", auth.Logout},
		{http.MethodGet, "/auth/status", auth.Status},
	} {
		label := r.method + " " + r.path
		a.router.Handle(r.method+" "+base+r.path, middleware.Instrument(label, r.handler))
	}
	a.router.Handle("GET "+base+"/metrics", promhttp.Handler())
}
