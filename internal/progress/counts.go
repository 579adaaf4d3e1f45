// Package progress turns raw WaniKani records into dashboard statistics.
// Nothing here recovers from upstream or timestamp errors; they are returned
// as-is for the HTTP layer to report.
package progress

import (
	"context"
	"iter"

	"github.com/vytor/wkstats/internal/logger"
	"github.com/vytor/wkstats/internal/models"
)

// AggregateItemCounts tallies assignments by numeric SRS stage and item.
// Subject types outside the known Item set and stages outside 1..9 are skipped
// so a new upstream subject type cannot break the dashboard.
func AggregateItemCounts(ctx context.Context, pages iter.Seq2[[]models.Assignment, error]) (models.StageItemCounts, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")
	counts := models.NewStageItemCounts()

	var total, skipped, pageCount int
	for page, err := range pages {
		if err != nil {
			return nil, err
		}
		pageCount++
		for _, a := range page {
			total++
			item, ok := models.ParseItem(a.SubjectType)
			if !ok || a.SrsStage < models.MinSrsStage || a.SrsStage > models.MaxSrsStage {
				skipped++
				continue
			}
			counts[a.SrsStage][item]++
		}
	}

	if skipped > 0 {
		log.Debug("skipped %d of %d assignments with unknown subject type or stage", skipped, total)
	}
	log.Debug("counted %d assignments across %d pages", total-skipped, pageCount)
	return counts, nil
}
