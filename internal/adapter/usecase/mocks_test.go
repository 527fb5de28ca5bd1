package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"wander-ads/internal/core/domain"
	"wander-ads/internal/core/port"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockKeywords struct{ mock.Mock }

func (m *mockKeywords) ListCandidates(ctx context.Context) ([]domain.KeywordCandidate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.KeywordCandidate), args.Error(1)
}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) StatsBySite(ctx context.Context, window time.Duration) (map[string]domain.BookingStats, error) {
	args := m.Called(ctx, window)
	return args.Get(0).(map[string]domain.BookingStats), args.Error(1)
}

type mockCampaigns struct{ mock.Mock }

func (m *mockCampaigns) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Campaign)
	return c, args.Error(1)
}

func (m *mockCampaigns) List(ctx context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Campaign), args.Error(1)
}

func (m *mockCampaigns) ListDeployed(ctx context.Context) ([]domain.Campaign, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Campaign), args.Error(1)
}

func (m *mockCampaigns) Create(ctx context.Context, c *domain.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaigns) Update(ctx context.Context, c *domain.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaigns) ArchiveBySite(ctx context.Context, siteID string, platform domain.Platform) (int, error) {
	args := m.Called(ctx, siteID, platform)
	return args.Int(0), args.Error(1)
}

type mockRuns struct{ mock.Mock }

func (m *mockRuns) RecordRun(ctx context.Context, run *port.EngineRun) error {
	return m.Called(ctx, run).Error(0)
}

func (m *mockRuns) ListRuns(ctx context.Context, limit int) ([]port.EngineRun, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]port.EngineRun), args.Error(1)
}

type mockPlatform struct{ mock.Mock }

func (m *mockPlatform) Deploy(ctx context.Context, c domain.Campaign, group domain.CampaignGroup) (string, error) {
	args := m.Called(ctx, c, group)
	return args.String(0), args.Error(1)
}

func (m *mockPlatform) UpdateStatus(ctx context.Context, platformID string, status domain.CampaignStatus) error {
	return m.Called(ctx, platformID, status).Error(0)
}

func (m *mockPlatform) UpdateBudget(ctx context.Context, platformID string, dailyBudget float64) error {
	return m.Called(ctx, platformID, dailyBudget).Error(0)
}

func (m *mockPlatform) UpdateBid(ctx context.Context, platformID string, maxCPC float64) error {
	return m.Called(ctx, platformID, maxCPC).Error(0)
}

func (m *mockPlatform) AttachNegativeKeywords(ctx context.Context, platformID string, keywords []string) error {
	return m.Called(ctx, platformID, keywords).Error(0)
}

func (m *mockPlatform) AttachGeoTargets(ctx context.Context, platformID string, targets []string) error {
	return m.Called(ctx, platformID, targets).Error(0)
}

func (m *mockPlatform) Performance(ctx context.Context, platformID string, windowDays int) (domain.CampaignPerformance, error) {
	args := m.Called(ctx, platformID, windowDays)
	return args.Get(0).(domain.CampaignPerformance), args.Error(1)
}

// staticRegistry resolves a fixed adapter map; unlisted platforms are
// unconfigured.
type staticRegistry struct {
	adapters map[domain.Platform]port.AdPlatform
}

func (r staticRegistry) Platform(p domain.Platform) (port.AdPlatform, error) {
	a, ok := r.adapters[p]
	if !ok {
		return nil, port.ErrPlatformNotConfigured
	}
	return a, nil
}

func (r staticRegistry) Configured() []domain.Platform {
	var out []domain.Platform
	for _, p := range []domain.Platform{domain.PlatformSearch, domain.PlatformSocial} {
		if _, ok := r.adapters[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
