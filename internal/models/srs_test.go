package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/wkstats/internal/models"
)

func TestSrsStages_CoverEveryNumericStageOnce(t *testing.T) {
	for stage := models.MinSrsStage; stage <= models.MaxSrsStage; stage++ {
		owners := 0
		for _, bucket := range models.SrsStages {
			if bucket.Contains(stage) {
				owners++
			}
		}
		assert.Equal(t, 1, owners, "stage %d", stage)
	}
}

func TestNewStageItemCounts_ZeroInitialized(t *testing.T) {
	counts := models.NewStageItemCounts()

	assert.Len(t, counts, models.MaxSrsStage)
	for stage := models.MinSrsStage; stage <= models.MaxSrsStage; stage++ {
		for _, item := range models.Items {
			v, ok := counts[stage][item]
			assert.True(t, ok, "stage %d item %s missing", stage, item)
			assert.Zero(t, v)
		}
	}
}

func TestParseItem(t *testing.T) {
	item, ok := models.ParseItem("kanji")
	assert.True(t, ok)
	assert.Equal(t, models.Kanji, item)

	_, ok = models.ParseItem("kana_vocabulary")
	assert.False(t, ok)
}

func TestItemLabel(t *testing.T) {
	assert.Equal(t, "Kanji 漢字", models.Kanji.Label())
	assert.Equal(t, "mystery", models.Item("mystery").Label())
}
