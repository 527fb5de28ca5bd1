// Package lifecycle is the pure decision core of the campaign
// optimizer: given a campaign, its live performance and the clock, it
// produces the transition to apply. Applying decisions (persistence and
// platform propagation) belongs to the usecase layer.
package lifecycle

import (
	"time"

	"wander-ads/internal/config/configs"
	"wander-ads/internal/core/domain"
)

// Action is the transition the optimizer decided on.
type Action string

const (
	ActionNone     Action = "none"
	ActionActivate Action = "activate"
	ActionScale    Action = "scale"
	ActionShrink   Action = "shrink"
	ActionPause    Action = "pause"
)

// Decision carries the chosen action and the new platform-visible
// values. NewDailyBudget/NewMaxCPC are meaningful only for scale and
// shrink; Reason only for pause.
type Decision struct {
	Action         Action
	NewDailyBudget float64
	NewMaxCPC      float64
	Reason         string
	Note           string
}

// Evaluate runs the lifecycle rules against one deployed campaign.
// Rules are checked in fixed order: auto-activation for paused
// campaigns, then fast-fail, then the windowed ROAS band.
func Evaluate(c domain.Campaign, perf domain.CampaignPerformance, now time.Time, cfg configs.Engine) Decision {
	if c.Status.Terminal() || !c.Deployed() {
		return Decision{Action: ActionNone}
	}

	if c.Status == domain.CampaignPaused {
		return evaluatePaused(c, now, cfg)
	}
	if c.Status == domain.CampaignActive {
		return evaluateActive(c, perf, now, cfg)
	}
	return Decision{Action: ActionNone}
}

// evaluatePaused decides auto-activation. A campaign paused for a
// recorded reason stays paused until a human clears it; a fresh deploy
// activates once the observation window has passed and the creative
// coherence gate is met.
func evaluatePaused(c domain.Campaign, now time.Time, cfg configs.Engine) Decision {
	if c.Metadata.PauseReason != "" {
		return Decision{Action: ActionNone}
	}
	window := time.Duration(cfg.ActivationWindowHours) * time.Hour
	if c.Age(now) < window {
		return Decision{Action: ActionNone}
	}
	if c.Metadata.CoherenceScore < cfg.CoherenceGate {
		return Decision{Action: ActionNone}
	}
	return Decision{Action: ActionActivate, Note: "auto-activated after observation window"}
}

// evaluateActive applies fast-fail first, then the longer-window ROAS
// band with percentage-bounded adjustments.
func evaluateActive(c domain.Campaign, perf domain.CampaignPerformance, now time.Time, cfg configs.Engine) Decision {
	age := c.Age(now)

	// Fast-fail: meaningful spend, zero conversions, short window.
	// Independent of the longer adjustment window below.
	fastFailWindow := time.Duration(cfg.FastFailWindowDays) * 24 * time.Hour
	if age >= fastFailWindow && perf.Spend >= cfg.FastFailMinSpend && perf.Conversions == 0 {
		return Decision{Action: ActionPause, Reason: domain.ReasonZeroConversionFastFail}
	}

	adjustWindow := time.Duration(cfg.AdjustWindowDays) * 24 * time.Hour
	if age < adjustWindow || perf.Spend < cfg.AdjustMinSpend {
		return Decision{Action: ActionNone}
	}

	roas := perf.ROAS()
	switch {
	case roas >= cfg.ScaleROAS:
		return Decision{
			Action:         ActionScale,
			NewDailyBudget: bounded(c.DailyBudget*(1+cfg.AdjustStep), cfg.MaxPerCampaignBudget),
			NewMaxCPC:      c.MaxCPC * (1 + cfg.AdjustStep),
			Note:           "scaled on sustained ROAS",
		}
	case roas < cfg.PauseROAS:
		return Decision{Action: ActionPause, Reason: domain.ReasonLowROAS}
	default:
		return Decision{Action: ActionNone}
	}
}

// bounded caps a scaled budget at the per-campaign maximum.
func bounded(v, max float64) float64 {
	if max > 0 && v > max {
		return max
	}
	return v
}

// EnforcePortfolioCap checks the sum of active campaigns' daily budgets
// against the global ceiling and, when exceeded, returns proportional
// shrink decisions keyed by campaign ID. Proportional scale-down keeps
// every campaign running instead of pausing arbitrarily.
func EnforcePortfolioCap(active []domain.Campaign, ceiling float64) map[string]Decision {
	var total float64
	for _, c := range active {
		total += c.DailyBudget
	}
	if ceiling <= 0 || total <= ceiling {
		return nil
	}
	factor := ceiling / total
	out := make(map[string]Decision, len(active))
	for _, c := range active {
		out[c.ID] = Decision{
			Action:         ActionShrink,
			NewDailyBudget: c.DailyBudget * factor,
			NewMaxCPC:      c.MaxCPC,
			Note:           "portfolio cap rebalance",
		}
	}
	return out
}
