package domain

import "time"

// CampaignStatus is the lifecycle state of a persisted campaign.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignPaused    CampaignStatus = "paused"
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignArchived  CampaignStatus = "archived"
	CampaignFailed    CampaignStatus = "failed"
)

// Terminal reports whether the status permits no further transitions.
func (s CampaignStatus) Terminal() bool {
	return s == CampaignCompleted || s == CampaignArchived
}

// Machine-readable pause reasons recorded in campaign metadata.
const (
	ReasonZeroConversionFastFail = "ZERO_CONVERSION_FAST_FAIL"
	ReasonLowROAS                = "LOW_ROAS"
	ReasonManual                 = "MANUAL"
)

// CampaignMetadata is the free-form audit blob stored alongside each
// campaign: score history, pause/activation reasons and bidding-strategy
// migration flags. Stored as jsonb.
type CampaignMetadata struct {
	ScoreHistory     []ScoreSnapshot `json:"score_history,omitempty"`
	PauseReason      string          `json:"pause_reason,omitempty"`
	ActivationNote   string          `json:"activation_note,omitempty"`
	CoherenceScore   float64         `json:"coherence_score,omitempty"`
	BidStrategyFlags []string        `json:"bid_strategy_flags,omitempty"`
}

// ScoreSnapshot records one allocation run's view of the campaign.
type ScoreSnapshot struct {
	RunID     string    `json:"run_id"`
	Score     float64   `json:"score"`
	Budget    float64   `json:"budget"`
	Timestamp time.Time `json:"timestamp"`
}

// Campaign is the persisted, platform-facing record produced by a deploy
// step and mutated by the lifecycle optimizer. Budgets and bids are in
// major currency units per day.
type Campaign struct {
	ID          string
	SiteID      string
	Platform    Platform
	Name        string
	Status      CampaignStatus
	DailyBudget float64
	MaxCPC      float64
	Keywords    []string
	GeoTargets  []string
	// PlatformID is the ad platform's identifier, empty until deployed.
	PlatformID string
	Metadata   CampaignMetadata
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Deployed reports whether the campaign exists on the ad platform.
func (c Campaign) Deployed() bool {
	return c.PlatformID != ""
}

// Age returns how long the campaign has existed relative to now.
func (c Campaign) Age(now time.Time) time.Duration {
	return now.Sub(c.CreatedAt)
}

// CampaignPerformance is the live metric snapshot read from the ad
// platform for one campaign over a trailing window.
type CampaignPerformance struct {
	CampaignID  string
	Spend       float64
	Revenue     float64
	Clicks      int64
	Conversions int64
	WindowDays  int
}

// ROAS returns revenue per unit of spend, or zero with no spend.
func (p CampaignPerformance) ROAS() float64 {
	if p.Spend <= 0 {
		return 0
	}
	return p.Revenue / p.Spend
}
