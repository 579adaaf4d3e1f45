package progress_test

import (
	"iter"
	"time"

	"github.com/vytor/wkstats/internal/models"
)

// pagesOf yields each argument as one page.
func pagesOf[T any](pages ...[]T) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		for _, p := range pages {
			if !yield(p, nil) {
				return
			}
		}
	}
}

// failingAfter yields pages and then err.
func failingAfter[T any](err error, pages ...[]T) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		for _, p := range pages {
			if !yield(p, nil) {
				return
			}
		}
		yield(nil, err)
	}
}

func strPtr(s string) *string { return &s }

func assignments(stage int, subjectType string, n int) []models.Assignment {
	out := make([]models.Assignment, n)
	for i := range out {
		out[i] = models.Assignment{SrsStage: stage, SubjectType: subjectType}
	}
	return out
}

// levelWithDays builds a passed level that took exactly days days.
func levelWithDays(level int, days float64) models.LevelProgress {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(days * float64(24*time.Hour)))
	elapsed := end.Sub(start)
	return models.LevelProgress{Level: level, StartedAt: &start, PassedAt: &end, Elapsed: &elapsed}
}
