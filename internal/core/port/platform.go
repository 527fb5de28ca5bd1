package port

import (
	"context"

	"wander-ads/internal/core/domain"
)

// AdPlatform is the narrow write-side contract to one ad platform. The
// wire protocol behind it is out of scope; implementations translate
// these calls into whatever the platform speaks. All methods block on
// network I/O and honour ctx.
type AdPlatform interface {
	// Deploy materializes a campaign group as a campaign + ad groups +
	// keywords + creative on the platform and returns the
	// platform-assigned identifier.
	Deploy(ctx context.Context, c domain.Campaign, group domain.CampaignGroup) (string, error)

	// UpdateStatus, UpdateBudget and UpdateBid are the only calls made
	// for already-deployed campaigns.
	UpdateStatus(ctx context.Context, platformID string, status domain.CampaignStatus) error
	UpdateBudget(ctx context.Context, platformID string, dailyBudget float64) error
	UpdateBid(ctx context.Context, platformID string, maxCPC float64) error

	// AttachNegativeKeywords and AttachGeoTargets are supplementary
	// calls made once per campaign at deploy time.
	AttachNegativeKeywords(ctx context.Context, platformID string, keywords []string) error
	AttachGeoTargets(ctx context.Context, platformID string, targets []string) error

	// Performance reads the live metric snapshot for one campaign over
	// a trailing window of days.
	Performance(ctx context.Context, platformID string, windowDays int) (domain.CampaignPerformance, error)
}

// PlatformRegistry resolves the adapter for a platform family. Resolving
// an unconfigured platform returns ErrPlatformNotConfigured.
type PlatformRegistry interface {
	Platform(p domain.Platform) (AdPlatform, error)
	// Configured lists the platform families with working credentials.
	Configured() []domain.Platform
}
