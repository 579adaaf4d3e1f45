package progress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/wkstats/internal/errors"
	"github.com/vytor/wkstats/internal/models"
	"github.com/vytor/wkstats/internal/progress"
)

func TestComputeLevelUpStatistics_TwoLevels(t *testing.T) {
	levels := models.Levels{
		1: levelWithDays(1, 10),
		2: levelWithDays(2, 15),
		3: {Level: 3},
	}

	s := progress.ComputeLevelUpStatistics(levels)

	require.NotNil(t, s.Mean)
	assert.InDelta(t, 12.5, *s.Mean, 1e-9)
	assert.InDelta(t, 12.5, *s.Median, 1e-9)
	assert.InDelta(t, 6.25, *s.Variance, 1e-9)
	assert.InDelta(t, 2.5, *s.StandardDeviation, 1e-9)
	assert.InDelta(t, 10, *s.Min, 1e-9)
	assert.InDelta(t, 15, *s.Max, 1e-9)
}

func TestComputeLevelUpStatistics_OddCountMedian(t *testing.T) {
	levels := models.Levels{
		1: levelWithDays(1, 9),
		2: levelWithDays(2, 1),
		3: levelWithDays(3, 4),
	}

	s := progress.ComputeLevelUpStatistics(levels)

	assert.InDelta(t, 4, *s.Median, 1e-9)
	assert.InDelta(t, 1, *s.Min, 1e-9)
	assert.InDelta(t, 9, *s.Max, 1e-9)
}

func TestComputeLevelUpStatistics_NothingDefined(t *testing.T) {
	s := progress.ComputeLevelUpStatistics(models.Levels{5: {Level: 5}})
	assert.Equal(t, models.LevelUpStatistics{}, s)

	assert.Equal(t, models.LevelUpStatistics{}, progress.ComputeLevelUpStatistics(nil))
}

func TestComputeLevelStats(t *testing.T) {
	levels := models.Levels{
		1: levelWithDays(1, 8.24),
		2: levelWithDays(2, 7.16),
		3: {Level: 3},
	}

	tests := []struct {
		name      string
		level     int
		wantPrev  *int
		wantDelta *float64
	}{
		{name: "first level has no previous", level: 1},
		{name: "delta against previous", level: 2, wantPrev: intPtr(1), wantDelta: floatPtr(7.16 - 8.24)},
		{name: "unstarted level has no delta", level: 3, wantPrev: intPtr(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := progress.ComputeLevelStats(tt.level, levels)
			require.NoError(t, err)

			assert.Equal(t, tt.level, s.Level)
			assert.Equal(t, models.DeltaColorInverse, s.DeltaColor)
			assert.Equal(t, tt.wantPrev, s.PreviousLevel)
			if tt.wantDelta == nil {
				assert.Nil(t, s.Delta)
				return
			}
			require.NotNil(t, s.Delta)
			assert.InDelta(t, *tt.wantDelta, *s.Delta, 1e-6)
			assert.InDelta(t, *s.TimeOnLevel-*s.TimeOnPreviousLevel, *s.Delta, 1e-12)
		})
	}
}

func TestComputeLevelStats_FirstLevelHasNoPreviousFields(t *testing.T) {
	s, err := progress.ComputeLevelStats(1, models.Levels{1: levelWithDays(1, 3)})
	require.NoError(t, err)

	assert.Nil(t, s.PreviousLevel)
	assert.Nil(t, s.TimeOnPreviousLevel)
	assert.Nil(t, s.Delta)
}

func TestComputeLevelStats_UnknownLevel(t *testing.T) {
	_, err := progress.ComputeLevelStats(42, models.Levels{1: levelWithDays(1, 3)})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRoundLevelStats_DeltaFromUnroundedValues(t *testing.T) {
	levels := models.Levels{
		1: levelWithDays(1, 1.04),
		2: levelWithDays(2, 2.06),
	}
	s, err := progress.ComputeLevelStats(2, levels)
	require.NoError(t, err)

	r := progress.RoundLevelStats(s)

	assert.InDelta(t, 2.1, *r.TimeOnLevel, 1e-9)
	assert.InDelta(t, 1.0, *r.TimeOnPreviousLevel, 1e-9)
	// 2.06 - 1.04 = 1.02, not 2.1 - 1.0.
	assert.InDelta(t, 1.0, *r.Delta, 1e-9)
	assert.InDelta(t, 2.06, *s.TimeOnLevel, 1e-6)
}

func TestLevelUpSeries(t *testing.T) {
	levels := models.Levels{
		3: levelWithDays(3, 5),
		1: levelWithDays(1, 2),
		2: {Level: 2},
	}

	series := progress.LevelUpSeries(levels)

	require.Len(t, series, 2)
	assert.Equal(t, 1, series[0].Level)
	assert.Equal(t, 3, series[1].Level)
	assert.InDelta(t, 5, series[1].Days, 1e-9)
}

func TestSelectableLevels_Descending(t *testing.T) {
	levels := models.Levels{1: {Level: 1}, 3: {Level: 3}, 2: {Level: 2}}
	assert.Equal(t, []int{3, 2, 1}, progress.SelectableLevels(levels))
}

func TestRoundStatistics_KeepsNil(t *testing.T) {
	assert.Equal(t, models.LevelUpStatistics{}, progress.RoundStatistics(models.LevelUpStatistics{}))
}

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
