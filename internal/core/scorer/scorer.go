// Package scorer projects keyword candidates onto ad platforms and
// attaches bounded profitability scores. All arithmetic is pure and
// side-effect-free.
package scorer

import (
	"fmt"
	"math"

	"wander-ads/internal/config/configs"
	"wander-ads/internal/core/domain"
)

// zeroCostScoreFloor caps the score of a candidate whose projected
// daily cost is zero: with no spend signal it cannot outrank anything
// that carries one.
const zeroCostScoreFloor = 5

// daysPerMonth converts monthly search volume to a daily rate.
const daysPerMonth = 30

// Scorer evaluates (keyword, platform) pairs against site profiles.
type Scorer struct {
	cfg      configs.Engine
	strategy Strategy
}

// New creates a scorer with the given policy. A nil strategy falls back
// to the default weighting.
func New(cfg configs.Engine, strategy Strategy) *Scorer {
	if strategy == nil {
		strategy = DefaultStrategy()
	}
	return &Scorer{cfg: cfg, strategy: strategy}
}

// platforms supported by the scorer, in deterministic order.
var platforms = []domain.Platform{domain.PlatformSearch, domain.PlatformSocial}

// ScoreAll scores every scorable candidate against every supported
// platform. Candidates whose site has no profitable profile, or that
// carry no CPC signal at all, are silently excluded: absence of data is
// not an error.
func (s *Scorer) ScoreAll(pool []domain.KeywordCandidate, profiles map[string]domain.SiteProfile) []domain.ScoredCandidate {
	out := make([]domain.ScoredCandidate, 0, len(pool)*len(platforms))
	for _, kc := range pool {
		if !kc.Scorable() {
			continue
		}
		profile, ok := profiles[kc.SiteID]
		if !ok {
			continue
		}
		for _, platform := range platforms {
			sc, ok := s.score(kc, profile, platform)
			if !ok {
				continue
			}
			out = append(out, sc)
		}
	}
	return out
}

// score projects one candidate onto one platform. The second return is
// false when the pair carries no usable bid.
func (s *Scorer) score(kc domain.KeywordCandidate, profile domain.SiteProfile, platform domain.Platform) (domain.ScoredCandidate, bool) {
	if kc.EstimatedCPC <= 0 {
		return domain.ScoredCandidate{}, false
	}

	estCPC := kc.EstimatedCPC
	ctr := s.cfg.SearchCTR
	if platform == domain.PlatformSocial {
		estCPC *= s.cfg.SocialCPCFactor
		ctr = s.cfg.SocialCTR
	}

	// The usable bid is the estimated CPC plus headroom, never above
	// what the site can profitably pay per click.
	maxBid := math.Min(estCPC*s.cfg.BidHeadroom, profile.MaxProfitableCPC)
	if maxBid <= 0 {
		return domain.ScoredCandidate{}, false
	}
	effectiveCPC := math.Min(estCPC, maxBid)

	clicksPerDay := float64(kc.Volume) / daysPerMonth * ctr

	convRate := profile.ConversionRate
	if !kc.IsMicrosite {
		convRate *= s.cfg.GeneralPageCRMul
	}

	dailyCost := clicksPerDay * effectiveCPC
	dailyRevenue := clicksPerDay * convRate * profile.AvgOrderValue * profile.CommissionRate

	sc := domain.ScoredCandidate{
		KeywordCandidate:     kc,
		Platform:             platform,
		EstimatedCPC:         estCPC,
		MaxBid:               maxBid,
		ExpectedClicksPerDay: clicksPerDay,
		ExpectedDailyCost:    dailyCost,
		ExpectedDailyRevenue: dailyRevenue,
		LandingURL:           resolveLanding(kc),
	}

	score := s.strategy.Score(Inputs{
		ROAS:             sc.ExpectedROAS(),
		DailyProfit:      sc.ExpectedDailyProfit(),
		VolumeConfidence: volumeConfidence(kc.Volume),
	})
	if dailyCost <= 0 && score > zeroCostScoreFloor {
		score = zeroCostScoreFloor
	}
	sc.Score = score
	return sc, true
}

// resolveLanding picks the landing page target. A dedicated microsite
// keeps its own URL; everything else lands on the publishing site's
// general experiences page.
func resolveLanding(kc domain.KeywordCandidate) string {
	if kc.LandingURL != "" {
		return kc.LandingURL
	}
	return fmt.Sprintf("https://%s/experiences", kc.SiteID)
}
