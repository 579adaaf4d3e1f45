package mocks

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wkstats/internal/models"
)

// MockWaniKaniClient is a mock implementation of wanikani.ClientInterface
type MockWaniKaniClient struct {
	mock.Mock
}

func (m *MockWaniKaniClient) ValidateCredential(ctx context.Context, token string) (*models.UserProfile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockWaniKaniClient) Assignments(ctx context.Context, token string) iter.Seq2[[]models.Assignment, error] {
	args := m.Called(ctx, token)
	return args.Get(0).(iter.Seq2[[]models.Assignment, error])
}

func (m *MockWaniKaniClient) LevelProgressions(ctx context.Context, token string) iter.Seq2[[]models.LevelProgression, error] {
	args := m.Called(ctx, token)
	return args.Get(0).(iter.Seq2[[]models.LevelProgression, error])
}

func (m *MockWaniKaniClient) Invalidate(token string) int {
	args := m.Called(token)
	return args.Int(0)
}
