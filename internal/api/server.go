package api

import (
	"sync/atomic"

	"github.com/vytor/wkstats/internal/monitoring"
	"github.com/vytor/wkstats/internal/services"
)

type Server struct {
	DashboardService services.DashboardService
	// Metrics is optional; without it /metrics is not mounted.
	Metrics *monitoring.Metrics

	draining atomic.Bool
}

// Drain makes /ready report 503 so load balancers stop routing new traffic
// while in-flight requests finish.
func (s *Server) Drain() {
	s.draining.Store(true)
}
