package progress

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/vytor/wkstats/internal/logger"
	"github.com/vytor/wkstats/internal/models"
	"github.com/vytor/wkstats/internal/timeutil"
)

// AggregateLevelProgress builds one LevelProgress per level. A level that
// appears twice keeps its last record. Elapsed runs to the passed time, or to
// now when the level is still in progress.
func AggregateLevelProgress(ctx context.Context, pages iter.Seq2[[]models.LevelProgression, error], clock timeutil.Clock, loc *time.Location) (models.Levels, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")
	now := timeutil.Now(clock, loc)
	levels := make(models.Levels)

	for page, err := range pages {
		if err != nil {
			return nil, err
		}
		for _, rec := range page {
			started, err := timeutil.ParseTimestamp(rec.StartedAt, loc)
			if err != nil {
				return nil, fmt.Errorf("level %d started_at: %w", rec.Level, err)
			}
			passed, err := timeutil.ParseTimestamp(rec.PassedAt, loc)
			if err != nil {
				return nil, fmt.Errorf("level %d passed_at: %w", rec.Level, err)
			}
			if _, dup := levels[rec.Level]; dup {
				log.Warn("duplicate progression for level %d, keeping the later record", rec.Level)
			}
			levels[rec.Level] = models.LevelProgress{
				Level:     rec.Level,
				StartedAt: started,
				PassedAt:  passed,
				Elapsed:   timeutil.Elapsed(started, passed, now),
			}
		}
	}

	log.Debug("aggregated %d levels", len(levels))
	return levels, nil
}

// ElapsedDays is the level's duration in fractional days, or nil.
func ElapsedDays(lp models.LevelProgress) *float64 {
	if lp.Elapsed == nil {
		return nil
	}
	d := timeutil.DurationToDays(*lp.Elapsed)
	return &d
}
