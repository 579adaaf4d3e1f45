package wanikani

import (
	"context"
	"iter"

	"github.com/vytor/wkstats/internal/models"
)

// ClientInterface defines the WaniKani operations the dashboard depends on.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	ValidateCredential(ctx context.Context, token string) (*models.UserProfile, error)
	Assignments(ctx context.Context, token string) iter.Seq2[[]models.Assignment, error]
	LevelProgressions(ctx context.Context, token string) iter.Seq2[[]models.LevelProgression, error]
	Invalidate(token string) int
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
