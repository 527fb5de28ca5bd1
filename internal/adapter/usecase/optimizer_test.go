package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wander-ads/internal/config/configs"
	"wander-ads/internal/core/domain"
	"wander-ads/internal/core/port"
)

func nearly(got, want float64) bool {
	return got > want-1e-9 && got < want+1e-9
}

func optimizerConfig() configs.Engine {
	return configs.Engine{
		ActivationWindowHours: 24,
		CoherenceGate:         0.6,
		FastFailWindowDays:    3,
		FastFailMinSpend:      20,
		AdjustWindowDays:      7,
		AdjustMinSpend:        50,
		ScaleROAS:             3.0,
		PauseROAS:             1.0,
		AdjustStep:            0.10,
		MaxPerCampaignBudget:  100,
		DailyBudgetCeiling:    1200,
	}
}

func deployedCampaign(id string, status domain.CampaignStatus, age time.Duration) domain.Campaign {
	return domain.Campaign{
		ID:          id,
		SiteID:      "romewalks.example.com",
		Platform:    domain.PlatformSearch,
		Status:      status,
		DailyBudget: 30,
		MaxCPC:      0.05,
		PlatformID:  "plat-" + id,
		CreatedAt:   time.Now().Add(-age),
		Metadata:    domain.CampaignMetadata{CoherenceScore: 0.9},
	}
}

func newOptimizer(campaigns *mockCampaigns, runs *mockRuns, adapter port.AdPlatform) *OptimizerService {
	return NewOptimizerService(campaigns, runs,
		staticRegistry{adapters: map[domain.Platform]port.AdPlatform{domain.PlatformSearch: adapter}},
		optimizerConfig(), configs.Platform{}, testLogger())
}

func TestSweepAutoActivates(t *testing.T) {
	c := deployedCampaign("c1", domain.CampaignPaused, 30*time.Hour)

	campaigns := &mockCampaigns{}
	campaigns.On("ListDeployed", mock.Anything).Return([]domain.Campaign{c}, nil)
	campaigns.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.Campaign) bool {
		return u.ID == "c1" && u.Status == domain.CampaignActive
	})).Return(nil)

	runs := &mockRuns{}
	runs.On("RecordRun", mock.Anything, mock.Anything).Return(nil)

	search := &mockPlatform{}
	search.On("Performance", mock.Anything, "plat-c1", 7).Return(domain.CampaignPerformance{}, nil)
	search.On("UpdateStatus", mock.Anything, "plat-c1", domain.CampaignActive).Return(nil)

	run, err := newOptimizer(campaigns, runs, search).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, run.Summary.Activated)
	search.AssertExpectations(t)
	campaigns.AssertExpectations(t)
}

func TestSweepFastFailsAndRecordsReason(t *testing.T) {
	c := deployedCampaign("c2", domain.CampaignActive, 3*24*time.Hour)

	campaigns := &mockCampaigns{}
	campaigns.On("ListDeployed", mock.Anything).Return([]domain.Campaign{c}, nil)
	campaigns.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.Campaign) bool {
		return u.Status == domain.CampaignPaused &&
			u.Metadata.PauseReason == domain.ReasonZeroConversionFastFail
	})).Return(nil)

	runs := &mockRuns{}
	runs.On("RecordRun", mock.Anything, mock.Anything).Return(nil)

	search := &mockPlatform{}
	search.On("Performance", mock.Anything, "plat-c2", 7).
		Return(domain.CampaignPerformance{Spend: 25, Conversions: 0}, nil)
	search.On("UpdateStatus", mock.Anything, "plat-c2", domain.CampaignPaused).Return(nil)

	run, err := newOptimizer(campaigns, runs, search).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, run.Summary.Paused)
	campaigns.AssertExpectations(t)
}

func TestSweepScalesOnStrongROAS(t *testing.T) {
	c := deployedCampaign("c3", domain.CampaignActive, 8*24*time.Hour)

	campaigns := &mockCampaigns{}
	campaigns.On("ListDeployed", mock.Anything).Return([]domain.Campaign{c}, nil)
	campaigns.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.Campaign) bool {
		return nearly(u.DailyBudget, 33.0) && nearly(u.MaxCPC, 0.055)
	})).Return(nil)

	runs := &mockRuns{}
	runs.On("RecordRun", mock.Anything, mock.Anything).Return(nil)

	search := &mockPlatform{}
	search.On("Performance", mock.Anything, "plat-c3", 7).
		Return(domain.CampaignPerformance{Spend: 60, Revenue: 240, Conversions: 12}, nil)
	search.On("UpdateBudget", mock.Anything, "plat-c3", mock.MatchedBy(func(v float64) bool {
		return nearly(v, 33.0)
	})).Return(nil)
	search.On("UpdateBid", mock.Anything, "plat-c3", mock.MatchedBy(func(v float64) bool {
		return nearly(v, 0.055)
	})).Return(nil)

	run, err := newOptimizer(campaigns, runs, search).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, run.Summary.Scaled)
	search.AssertExpectations(t)
	campaigns.AssertExpectations(t)
}

func TestSweepPlatformFailureLeavesLocalState(t *testing.T) {
	// platform propagation comes first; when it fails the local record
	// keeps its last-written state for the next sweep to re-evaluate
	c := deployedCampaign("c4", domain.CampaignPaused, 30*time.Hour)

	campaigns := &mockCampaigns{}
	campaigns.On("ListDeployed", mock.Anything).Return([]domain.Campaign{c}, nil)

	runs := &mockRuns{}
	runs.On("RecordRun", mock.Anything, mock.Anything).Return(nil)

	search := &mockPlatform{}
	search.On("Performance", mock.Anything, "plat-c4", 7).Return(domain.CampaignPerformance{}, nil)
	search.On("UpdateStatus", mock.Anything, "plat-c4", domain.CampaignActive).
		Return(errors.New("auth expired"))

	run, err := newOptimizer(campaigns, runs, search).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, run.Summary.Failed)
	assert.Zero(t, run.Summary.Activated)
	campaigns.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSweepSkipsUnconfiguredPlatform(t *testing.T) {
	c := deployedCampaign("c5", domain.CampaignActive, 8*24*time.Hour)
	c.Platform = domain.PlatformSocial // registry only carries search

	campaigns := &mockCampaigns{}
	campaigns.On("ListDeployed", mock.Anything).Return([]domain.Campaign{c}, nil)

	runs := &mockRuns{}
	runs.On("RecordRun", mock.Anything, mock.Anything).Return(nil)

	run, err := newOptimizer(campaigns, runs, &mockPlatform{}).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, run.Summary.Skipped)
	assert.Zero(t, run.Summary.Failed)
}

func TestSweepEnforcesPortfolioCap(t *testing.T) {
	a := deployedCampaign("a", domain.CampaignActive, 8*24*time.Hour)
	a.DailyBudget = 900
	b := deployedCampaign("b", domain.CampaignActive, 8*24*time.Hour)
	b.DailyBudget = 600

	campaigns := &mockCampaigns{}
	campaigns.On("ListDeployed", mock.Anything).Return([]domain.Campaign{a, b}, nil)
	campaigns.On("Update", mock.Anything, mock.Anything).Return(nil)

	runs := &mockRuns{}
	runs.On("RecordRun", mock.Anything, mock.Anything).Return(nil)

	// mid-band performance keeps both active and untouched by the
	// ROAS rules; the cap pass then shrinks them proportionally
	search := &mockPlatform{}
	search.On("Performance", mock.Anything, mock.Anything, 7).
		Return(domain.CampaignPerformance{Spend: 80, Revenue: 160, Conversions: 6}, nil)
	search.On("UpdateBudget", mock.Anything, "plat-a", 720.0).Return(nil)
	search.On("UpdateBudget", mock.Anything, "plat-b", 480.0).Return(nil)

	run, err := newOptimizer(campaigns, runs, search).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, run.Summary.Shrunk)
	search.AssertExpectations(t)
}

func TestSweepPortfolioCapExcludesUnconfiguredPlatforms(t *testing.T) {
	a := deployedCampaign("a", domain.CampaignActive, 8*24*time.Hour)
	a.DailyBudget = 900
	b := deployedCampaign("b", domain.CampaignActive, 8*24*time.Hour)
	b.DailyBudget = 600
	// active on a family without credentials: untouchable, so its
	// budget must not inflate the shrink factor for the others
	c := deployedCampaign("c", domain.CampaignActive, 8*24*time.Hour)
	c.Platform = domain.PlatformSocial
	c.DailyBudget = 900

	campaigns := &mockCampaigns{}
	campaigns.On("ListDeployed", mock.Anything).Return([]domain.Campaign{a, b, c}, nil)
	campaigns.On("Update", mock.Anything, mock.Anything).Return(nil)

	runs := &mockRuns{}
	runs.On("RecordRun", mock.Anything, mock.Anything).Return(nil)

	search := &mockPlatform{}
	search.On("Performance", mock.Anything, mock.Anything, 7).
		Return(domain.CampaignPerformance{Spend: 80, Revenue: 160, Conversions: 6}, nil)
	// factor 1200/1500 over the two reachable campaigns, not 1200/2400
	search.On("UpdateBudget", mock.Anything, "plat-a", 720.0).Return(nil)
	search.On("UpdateBudget", mock.Anything, "plat-b", 480.0).Return(nil)

	run, err := newOptimizer(campaigns, runs, search).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, run.Summary.Shrunk)
	assert.Equal(t, 1, run.Summary.Skipped)
	search.AssertExpectations(t)
}
