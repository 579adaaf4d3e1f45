package api

import (
	"net/http"

	"github.com/vytor/wkstats/internal/errors"
	"github.com/vytor/wkstats/internal/logger"
	"github.com/vytor/wkstats/internal/models"
	"github.com/vytor/wkstats/internal/progress"
)

type userResponse struct {
	Valid bool `json:"valid"`
	*models.UserProfile
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	profile, err := s.DashboardService.Profile(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if profile == nil {
		writeJSON(w, r, http.StatusOK, invalidCredential)
		return
	}
	writeJSON(w, r, http.StatusOK, userResponse{Valid: true, UserProfile: profile})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.DashboardService.Overview(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if overview == nil {
		writeJSON(w, r, http.StatusOK, invalidCredential)
		return
	}

	overview.Statistics = progress.RoundStatistics(overview.Statistics)
	if overview.CurrentLevel != nil {
		rounded := progress.RoundLevelStats(*overview.CurrentLevel)
		overview.CurrentLevel = &rounded
	}
	writeJSON(w, r, http.StatusOK, overview)
}

func (s *Server) handleLearned(w http.ResponseWriter, r *http.Request) {
	totals, err := s.DashboardService.LearnedTotals(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, totals)
}

// handleBreakdown serves the long form for charts (the default) or the wide
// form for tables.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "chart"
	}
	if mode != "chart" && mode != "table" {
		handleError(w, r, errors.NewBadRequestError("mode must be chart or table"))
		return
	}
	log.Debug("building breakdown: mode=%s", mode)

	breakdown, err := s.DashboardService.Breakdown(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	if mode == "table" {
		writeJSON(w, r, http.StatusOK, breakdown.Wide)
		return
	}
	writeJSON(w, r, http.StatusOK, breakdown.Long)
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := s.DashboardService.SelectableLevels(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, levels)
}

func (s *Server) handleLevelUpStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.DashboardService.LevelUpStatistics(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, progress.RoundStatistics(stats))
}

func (s *Server) handleLevelUpSeries(w http.ResponseWriter, r *http.Request) {
	series, err := s.DashboardService.LevelUpSeries(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, progress.RoundSeries(series))
}

func (s *Server) handleLevelStats(w http.ResponseWriter, r *http.Request) {
	level, err := levelParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.DashboardService.LevelStats(r.Context(), tokenFromContext(r.Context()), level)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, progress.RoundLevelStats(*stats))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	n := s.DashboardService.Refresh(r.Context(), tokenFromContext(r.Context()))
	writeJSON(w, r, http.StatusOK, map[string]int{"invalidated": n})
}
