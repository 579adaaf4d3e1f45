package progress

import "github.com/vytor/wkstats/internal/models"

// LongForm lists every (item, named stage) pair with its count, item-major,
// ready for a grouped bar chart.
func LongForm(counts models.StageItemCounts) []models.BreakdownEntry {
	out := make([]models.BreakdownEntry, 0, len(models.Items)*len(models.SrsStages))
	for _, item := range models.Items {
		for _, stage := range models.SrsStages {
			out = append(out, models.BreakdownEntry{
				Item:  item.Label(),
				Stage: stage.Name,
				Count: counts.Sum(item, stage.Start, stage.End),
			})
		}
	}
	return out
}

// WideForm returns one row per named stage with a column per item label,
// followed by an "All" row holding the column totals.
func WideForm(counts models.StageItemCounts) []models.BreakdownRow {
	rows := make([]models.BreakdownRow, 0, len(models.SrsStages)+1)
	all := models.BreakdownRow{Stage: models.AllRowName, Counts: make(map[string]int, len(models.Items))}

	for _, stage := range models.SrsStages {
		row := models.BreakdownRow{Stage: stage.Name, Counts: make(map[string]int, len(models.Items))}
		for _, item := range models.Items {
			n := counts.Sum(item, stage.Start, stage.End)
			row.Counts[item.Label()] = n
			all.Counts[item.Label()] += n
		}
		rows = append(rows, row)
	}
	return append(rows, all)
}

// BuildStageBreakdown derives both table shapes from the same counts, so the
// long form's per-item sum always equals the wide form's "All" row.
func BuildStageBreakdown(counts models.StageItemCounts) models.StageBreakdown {
	return models.StageBreakdown{
		Long: LongForm(counts),
		Wide: WideForm(counts),
	}
}

// LearnedTotals counts items at Guru or beyond.
func LearnedTotals(counts models.StageItemCounts) []models.LearnedTotal {
	out := make([]models.LearnedTotal, 0, len(models.Items))
	for _, item := range models.Items {
		out = append(out, models.LearnedTotal{
			Item:  item,
			Label: item.Label(),
			Count: counts.Sum(item, models.Guru.Start, models.MaxSrsStage),
		})
	}
	return out
}
