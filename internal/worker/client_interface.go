package worker

import (
	"context"
	"iter"

	"github.com/vytor/wkstats/internal/models"
)

// PrefetchClient is the subset of the WaniKani client a prefetch walks.
// Declared here to keep worker free of the wanikani package.
type PrefetchClient interface {
	Assignments(ctx context.Context, token string) iter.Seq2[[]models.Assignment, error]
	LevelProgressions(ctx context.Context, token string) iter.Seq2[[]models.LevelProgression, error]
}
