package worker

import (
	"context"
	"fmt"
	"iter"

	"github.com/vytor/wkstats/internal/logger"
)

// PrefetchJob walks every page of a user's assignments and level
// progressions so later dashboard requests are served from the memo cache.
type PrefetchJob struct {
	Client PrefetchClient
	Token  string
}

func (j *PrefetchJob) Name() string { return "prefetch" }

func (j *PrefetchJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	assignments, err := drain(j.Client.Assignments(ctx, j.Token))
	if err != nil {
		return fmt.Errorf("prefetch assignments: %w", err)
	}
	levels, err := drain(j.Client.LevelProgressions(ctx, j.Token))
	if err != nil {
		return fmt.Errorf("prefetch level progressions: %w", err)
	}

	log.Debug("prefetched %d assignment pages and %d level progression pages", assignments, levels)
	return nil
}

func drain[T any](pages iter.Seq2[[]T, error]) (int, error) {
	n := 0
	for _, err := range pages {
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
