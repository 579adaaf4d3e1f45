package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)
	if s.Metrics != nil {
		r.Use(s.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(tokenMiddleware)

		r.Get("/user", s.handleUser)
		r.Get("/overview", s.handleOverview)
		r.Get("/items/learned", s.handleLearned)
		r.Get("/breakdown", s.handleBreakdown)
		r.Get("/breakdown.xlsx", s.handleBreakdownExport)
		r.Get("/levels", s.handleLevels)
		r.Get("/levels/stats", s.handleLevelUpStatistics)
		r.Get("/levels/series", s.handleLevelUpSeries)
		r.Get("/levels/{level}", s.handleLevelStats)
		r.Post("/session/refresh", s.handleRefresh)
	})

	return r
}
