package progress_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wkstats/internal/models"
	"github.com/vytor/wkstats/internal/progress"
)

func TestAggregateItemCounts(t *testing.T) {
	page := append(assignments(1, "kanji", 5), assignments(5, "radical", 2)...)
	page = append(page, assignments(9, "vocabulary", 3)...)

	counts, err := progress.AggregateItemCounts(context.Background(), pagesOf(page))
	require.NoError(t, err)

	assert.Equal(t, 5, counts[1][models.Kanji])
	assert.Equal(t, 2, counts[5][models.Radical])
	assert.Equal(t, 3, counts[9][models.Vocabulary])
	assert.Equal(t, 0, counts[4][models.Kanji])
}

func TestAggregateItemCounts_EmptyHasEveryCellAtZero(t *testing.T) {
	counts, err := progress.AggregateItemCounts(context.Background(), pagesOf[models.Assignment]())
	require.NoError(t, err)

	require.Len(t, counts, models.MaxSrsStage)
	for stage := models.MinSrsStage; stage <= models.MaxSrsStage; stage++ {
		for _, item := range models.Items {
			assert.Zero(t, counts[stage][item], "stage %d item %s", stage, item)
		}
	}
}

func TestAggregateItemCounts_SkipsUnknownTypeAndStage(t *testing.T) {
	page := []models.Assignment{
		{SrsStage: 3, SubjectType: "kana_vocabulary"},
		{SrsStage: 0, SubjectType: "kanji"},
		{SrsStage: 10, SubjectType: "kanji"},
		{SrsStage: 3, SubjectType: "kanji"},
	}

	counts, err := progress.AggregateItemCounts(context.Background(), pagesOf(page))
	require.NoError(t, err)

	assert.Equal(t, 1, counts[3][models.Kanji])
	assert.NotContains(t, counts, 0)
	assert.NotContains(t, counts, 10)
}

func TestAggregateItemCounts_PageSplitDoesNotMatter(t *testing.T) {
	all := append(assignments(2, "radical", 4), assignments(7, "kanji", 3)...)
	all = append(all, assignments(8, "vocabulary", 2)...)

	whole, err := progress.AggregateItemCounts(context.Background(), pagesOf(all))
	require.NoError(t, err)
	split, err := progress.AggregateItemCounts(context.Background(), pagesOf(all[:3], all[3:6], all[6:]))
	require.NoError(t, err)

	assert.Equal(t, whole, split)
}

func TestAggregateItemCounts_PropagatesPageError(t *testing.T) {
	boom := errors.New("page 2 failed")

	counts, err := progress.AggregateItemCounts(context.Background(),
		failingAfter(boom, assignments(1, "kanji", 1)))

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, counts)
}
