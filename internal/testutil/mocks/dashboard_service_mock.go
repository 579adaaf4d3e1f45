package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wkstats/internal/models"
)

// MockDashboardService is a mock implementation of services.DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Profile(ctx context.Context, token string) (*models.UserProfile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockDashboardService) Breakdown(ctx context.Context, token string) (*models.StageBreakdown, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StageBreakdown), args.Error(1)
}

func (m *MockDashboardService) LearnedTotals(ctx context.Context, token string) ([]models.LearnedTotal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LearnedTotal), args.Error(1)
}

func (m *MockDashboardService) Levels(ctx context.Context, token string) (models.Levels, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Levels), args.Error(1)
}

func (m *MockDashboardService) SelectableLevels(ctx context.Context, token string) ([]int, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockDashboardService) LevelUpStatistics(ctx context.Context, token string) (models.LevelUpStatistics, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(models.LevelUpStatistics), args.Error(1)
}

func (m *MockDashboardService) LevelStats(ctx context.Context, token string, level int) (*models.LevelStats, error) {
	args := m.Called(ctx, token, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LevelStats), args.Error(1)
}

func (m *MockDashboardService) LevelUpSeries(ctx context.Context, token string) ([]models.LevelUpPoint, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LevelUpPoint), args.Error(1)
}

func (m *MockDashboardService) Overview(ctx context.Context, token string) (*models.Overview, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Overview), args.Error(1)
}

func (m *MockDashboardService) Refresh(ctx context.Context, token string) int {
	args := m.Called(ctx, token)
	return args.Int(0)
}
