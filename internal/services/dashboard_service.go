package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vytor/wkstats/internal/errors"
	"github.com/vytor/wkstats/internal/jobs"
	"github.com/vytor/wkstats/internal/logger"
	"github.com/vytor/wkstats/internal/models"
	"github.com/vytor/wkstats/internal/progress"
	"github.com/vytor/wkstats/internal/timeutil"
	"github.com/vytor/wkstats/internal/wanikani"
)

// DashboardService handles dashboard business logic. Every method takes the
// caller's API token; none of them keep per-user state.
type DashboardService interface {
	// Profile returns nil, nil when the token is rejected upstream.
	Profile(ctx context.Context, token string) (*models.UserProfile, error)
	Breakdown(ctx context.Context, token string) (*models.StageBreakdown, error)
	LearnedTotals(ctx context.Context, token string) ([]models.LearnedTotal, error)
	Levels(ctx context.Context, token string) (models.Levels, error)
	SelectableLevels(ctx context.Context, token string) ([]int, error)
	LevelUpStatistics(ctx context.Context, token string) (models.LevelUpStatistics, error)
	LevelStats(ctx context.Context, token string, level int) (*models.LevelStats, error)
	LevelUpSeries(ctx context.Context, token string) ([]models.LevelUpPoint, error)
	// Overview returns nil, nil when the token is rejected upstream.
	Overview(ctx context.Context, token string) (*models.Overview, error)
	Refresh(ctx context.Context, token string) int
}

type dashboardService struct {
	client   wanikani.ClientInterface
	jobQueue jobs.JobQueue
	clock    timeutil.Clock
	loc      *time.Location
}

// NewDashboardService creates a new DashboardService. jobQueue may be nil to
// disable prefetching.
func NewDashboardService(client wanikani.ClientInterface, jobQueue jobs.JobQueue, clock timeutil.Clock, loc *time.Location) DashboardService {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardService{client: client, jobQueue: jobQueue, clock: clock, loc: loc}
}

// wrap leaves typed errors alone and hides anything else behind INTERNAL_ERROR.
func wrap(err error) error {
	if _, ok := errors.As(err); ok {
		return err
	}
	return errors.NewInternalError(err)
}

func (s *dashboardService) Profile(ctx context.Context, token string) (*models.UserProfile, error) {
	return s.profile(ctx, token, true)
}

// profile validates token and, when prefetch is set, queues a cache warm-up
// for the collections the dashboard reads next.
func (s *dashboardService) profile(ctx context.Context, token string, prefetch bool) (*models.UserProfile, error) {
	log := logger.FromContext(ctx)
	log.Debug("validating credential")

	profile, err := s.client.ValidateCredential(ctx, token)
	if err != nil {
		log.Error("failed to validate credential: %v", err)
		return nil, wrap(err)
	}
	if profile == nil {
		log.Info("credential rejected upstream")
		return nil, nil
	}

	if prefetch && s.jobQueue != nil {
		if err := s.jobQueue.EnqueuePrefetch(token); err != nil {
			log.Warn("prefetch not queued: %v", err)
		}
	}
	return profile, nil
}

func (s *dashboardService) counts(ctx context.Context, token string) (models.StageItemCounts, error) {
	log := logger.FromContext(ctx)

	counts, err := progress.AggregateItemCounts(ctx, s.client.Assignments(ctx, token))
	if err != nil {
		log.Error("failed to aggregate assignments: %v", err)
		return nil, wrap(err)
	}
	return counts, nil
}

func (s *dashboardService) Breakdown(ctx context.Context, token string) (*models.StageBreakdown, error) {
	logger.FromContext(ctx).Debug("building stage breakdown")

	counts, err := s.counts(ctx, token)
	if err != nil {
		return nil, err
	}
	breakdown := progress.BuildStageBreakdown(counts)
	return &breakdown, nil
}

func (s *dashboardService) LearnedTotals(ctx context.Context, token string) ([]models.LearnedTotal, error) {
	logger.FromContext(ctx).Debug("counting learned items")

	counts, err := s.counts(ctx, token)
	if err != nil {
		return nil, err
	}
	return progress.LearnedTotals(counts), nil
}

func (s *dashboardService) Levels(ctx context.Context, token string) (models.Levels, error) {
	log := logger.FromContext(ctx)
	log.Debug("aggregating level progress")

	levels, err := progress.AggregateLevelProgress(ctx, s.client.LevelProgressions(ctx, token), s.clock, s.loc)
	if err != nil {
		log.Error("failed to aggregate level progressions: %v", err)
		return nil, wrap(err)
	}
	return levels, nil
}

func (s *dashboardService) SelectableLevels(ctx context.Context, token string) ([]int, error) {
	levels, err := s.Levels(ctx, token)
	if err != nil {
		return nil, err
	}
	return progress.SelectableLevels(levels), nil
}

func (s *dashboardService) LevelUpStatistics(ctx context.Context, token string) (models.LevelUpStatistics, error) {
	levels, err := s.Levels(ctx, token)
	if err != nil {
		return models.LevelUpStatistics{}, err
	}
	return progress.ComputeLevelUpStatistics(levels), nil
}

func (s *dashboardService) LevelStats(ctx context.Context, token string, level int) (*models.LevelStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing level stats: level=%d", level)

	if level < 1 {
		return nil, errors.NewValidationError("level", "must be at least 1")
	}

	levels, err := s.Levels(ctx, token)
	if err != nil {
		return nil, err
	}
	stats, err := progress.ComputeLevelStats(level, levels)
	if err != nil {
		return nil, wrap(err)
	}
	return &stats, nil
}

func (s *dashboardService) LevelUpSeries(ctx context.Context, token string) ([]models.LevelUpPoint, error) {
	levels, err := s.Levels(ctx, token)
	if err != nil {
		return nil, err
	}
	return progress.LevelUpSeries(levels), nil
}

func (s *dashboardService) Overview(ctx context.Context, token string) (*models.Overview, error) {
	log := logger.FromContext(ctx)
	log.Debug("building overview")

	// Overview fetches both collections itself right away.
	profile, err := s.profile(ctx, token, false)
	if err != nil || profile == nil {
		return nil, err
	}

	var (
		counts models.StageItemCounts
		levels models.Levels
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.counts(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		levels, err = s.Levels(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &models.Overview{
		Profile:    profile,
		Learned:    progress.LearnedTotals(counts),
		Statistics: progress.ComputeLevelUpStatistics(levels),
		Levels:     progress.SelectableLevels(levels),
	}
	if current, err := progress.ComputeLevelStats(profile.Level, levels); err == nil {
		overview.CurrentLevel = &current
	} else {
		log.Debug("no progression for current level %d", profile.Level)
	}
	return overview, nil
}

func (s *dashboardService) Refresh(ctx context.Context, token string) int {
	n := s.client.Invalidate(token)
	logger.FromContext(ctx).Info("invalidated %d cached responses", n)
	return n
}
