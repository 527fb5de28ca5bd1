package port

import (
	"context"
	"errors"
	"time"

	"wander-ads/internal/core/domain"
)

// Sentinel errors shared across the engine.
var (
	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrBudgetCeilingExceeded marks an invariant violation in an
	// allocation result; it is fatal to the whole run.
	ErrBudgetCeilingExceeded = errors.New("budget ceiling exceeded")
	// ErrPlatformNotConfigured means the ad platform has no credentials;
	// its campaigns are skipped entirely, not treated as zero-budget.
	ErrPlatformNotConfigured = errors.New("ad platform not configured")
)

// KeywordRepository reads the candidate pool produced by the
// out-of-scope discovery pipeline.
type KeywordRepository interface {
	// ListCandidates returns all candidates eligible for scoring, i.e.
	// decision BID or never evaluated. REVIEW candidates are excluded
	// at the query level.
	ListCandidates(ctx context.Context) ([]domain.KeywordCandidate, error)
}

// BookingRepository reads per-site booking aggregates for profiling.
type BookingRepository interface {
	// StatsBySite aggregates bookings over the trailing window ending
	// now. Sites with zero bookings in the window are still returned
	// when they have keyword candidates, with zeroed statistics.
	StatsBySite(ctx context.Context, window time.Duration) (map[string]domain.BookingStats, error)
}

// CampaignRepository is the persistence contract for campaigns.
// Implementations must be safe for concurrent use.
type CampaignRepository interface {
	// Get returns a single campaign or ErrCampaignNotFound.
	Get(ctx context.Context, id string) (*domain.Campaign, error)

	// List returns campaigns matching the filter, newest first.
	List(ctx context.Context, f CampaignFilter) ([]domain.Campaign, error)

	// ListDeployed returns non-terminal campaigns that carry a platform
	// identifier; the optimizer sweep operates on exactly this set.
	ListDeployed(ctx context.Context) ([]domain.Campaign, error)

	// Create inserts a new campaign.
	Create(ctx context.Context, c *domain.Campaign) error

	// Update persists status, budget, bid, platform ID and metadata.
	Update(ctx context.Context, c *domain.Campaign) error

	// ArchiveBySite marks every non-terminal campaign of a
	// (site, platform) pair as archived; used when a restructuring
	// supersedes an existing campaign.
	ArchiveBySite(ctx context.Context, siteID string, platform domain.Platform) (int, error)
}

// CampaignFilter controls campaign listing.
type CampaignFilter struct {
	Status   domain.CampaignStatus
	SiteID   string
	Platform domain.Platform
	Limit    int
}

// RunRepository persists the structured summary each batch pass ends
// with, for auditability and the stats endpoint.
type RunRepository interface {
	RecordRun(ctx context.Context, run *EngineRun) error
	ListRuns(ctx context.Context, limit int) ([]EngineRun, error)
}

// EngineRun is one recorded batch pass.
type EngineRun struct {
	ID         string
	Kind       string // "allocation" or "optimizer"
	StartedAt  time.Time
	FinishedAt time.Time
	Summary    RunSummary
}

// RunSummary is the structured summary of a batch pass. Allocation runs
// fill the scoring fields; optimizer sweeps fill the transition fields.
type RunSummary struct {
	Scored      int     `json:"scored"`
	Grouped     int     `json:"grouped"`
	Allocated   int     `json:"allocated"`
	Deployed    int     `json:"deployed"`
	Activated   int     `json:"activated"`
	Scaled      int     `json:"scaled"`
	Shrunk      int     `json:"shrunk"`
	Paused      int     `json:"paused"`
	Skipped     int     `json:"skipped"`
	Failed      int     `json:"failed"`
	TotalBudget float64 `json:"total_budget"`
}
