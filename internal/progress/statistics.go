package progress

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/vytor/wkstats/internal/errors"
	"github.com/vytor/wkstats/internal/models"
	"github.com/vytor/wkstats/internal/timeutil"
)

// sortedLevels returns the level numbers that have a defined elapsed time, ascending.
func sortedLevels(levels models.Levels) []int {
	out := make([]int, 0, len(levels))
	for n, lp := range levels {
		if lp.Elapsed != nil {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

// ComputeLevelUpStatistics summarises days-on-level over every level with a
// defined elapsed time. Variance and standard deviation are population
// statistics. With no such level every field is nil.
func ComputeLevelUpStatistics(levels models.Levels) models.LevelUpStatistics {
	nums := sortedLevels(levels)
	if len(nums) == 0 {
		return models.LevelUpStatistics{}
	}

	days := make([]float64, len(nums))
	for i, n := range nums {
		days[i] = *ElapsedDays(levels[n])
	}

	mean, variance := stat.PopMeanVariance(days, nil)
	stddev := math.Sqrt(variance)
	mid := median(days)
	lo, hi := floats.Min(days), floats.Max(days)

	return models.LevelUpStatistics{
		Mean:              &mean,
		Median:            &mid,
		Variance:          &variance,
		StandardDeviation: &stddev,
		Min:               &lo,
		Max:               &hi,
	}
}

// median averages the two middle values for an even count. xs must be non-empty.
func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// ComputeLevelStats compares level with the level before it. Values are
// unrounded. Level 1 has no previous level. For later levels the previous
// time and delta are nil when either level lacks an elapsed time.
func ComputeLevelStats(level int, levels models.Levels) (models.LevelStats, error) {
	lp, ok := levels[level]
	if !ok {
		return models.LevelStats{}, errors.NewNotFoundError("level", level)
	}

	stats := models.LevelStats{
		Level:       level,
		TimeOnLevel: ElapsedDays(lp),
		DeltaColor:  models.DeltaColorInverse,
	}
	if level <= 1 {
		return stats, nil
	}

	prev := level - 1
	stats.PreviousLevel = &prev
	if prevLP, ok := levels[prev]; ok {
		stats.TimeOnPreviousLevel = ElapsedDays(prevLP)
	}
	if stats.TimeOnLevel != nil && stats.TimeOnPreviousLevel != nil {
		delta := *stats.TimeOnLevel - *stats.TimeOnPreviousLevel
		stats.Delta = &delta
	}
	return stats, nil
}

// LevelUpSeries returns (level, days) points for every level with a defined
// elapsed time, ordered by level.
func LevelUpSeries(levels models.Levels) []models.LevelUpPoint {
	nums := sortedLevels(levels)
	out := make([]models.LevelUpPoint, 0, len(nums))
	for _, n := range nums {
		out = append(out, models.LevelUpPoint{Level: n, Days: *ElapsedDays(levels[n])})
	}
	return out
}

// SelectableLevels lists every known level, newest first.
func SelectableLevels(levels models.Levels) []int {
	out := make([]int, 0, len(levels))
	for n := range levels {
		out = append(out, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// RoundStatistics rounds every present field to one decimal for display.
func RoundStatistics(s models.LevelUpStatistics) models.LevelUpStatistics {
	return models.LevelUpStatistics{
		Mean:              timeutil.RoundDaysPtr(s.Mean),
		Median:            timeutil.RoundDaysPtr(s.Median),
		Variance:          timeutil.RoundDaysPtr(s.Variance),
		StandardDeviation: timeutil.RoundDaysPtr(s.StandardDeviation),
		Min:               timeutil.RoundDaysPtr(s.Min),
		Max:               timeutil.RoundDaysPtr(s.Max),
	}
}

// RoundLevelStats rounds for display. Delta was computed from unrounded days,
// so it can differ by 0.1 from the difference of the rounded values.
func RoundLevelStats(s models.LevelStats) models.LevelStats {
	s.TimeOnLevel = timeutil.RoundDaysPtr(s.TimeOnLevel)
	s.TimeOnPreviousLevel = timeutil.RoundDaysPtr(s.TimeOnPreviousLevel)
	s.Delta = timeutil.RoundDaysPtr(s.Delta)
	return s
}

// RoundSeries rounds each point's days for display.
func RoundSeries(points []models.LevelUpPoint) []models.LevelUpPoint {
	out := make([]models.LevelUpPoint, len(points))
	for i, p := range points {
		out[i] = models.LevelUpPoint{Level: p.Level, Days: timeutil.RoundDays(p.Days)}
	}
	return out
}
