package main

import (
	"net/http"

	"fyyur/internal/app/artists"
	"fyyur/internal/app/shows"
	"fyyur/internal/app/venues"
	"fyyur/internal/config"
	"fyyur/internal/http/middleware"
	"fyyur/internal/httpapi"
)

type (
	venueStore  = venues.Store
	artistStore = artists.Store
	showStore   = shows.Store
)

func newHTTPHandler(cfg *config.Config, st dataStore) http.Handler {
	venueSvc := venues.New(st, nil)
	artistSvc := artists.New(st, nil)
	showSvc := shows.New(st, st, st)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	return middleware.Chain(
		httpapi.New(venueSvc, artistSvc, showSvc).Routes(),
		middleware.RequestLogging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.RateLimit(limiter),
	)
}
