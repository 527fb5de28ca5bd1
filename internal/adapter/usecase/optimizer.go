package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"wander-ads/internal/adapter/platform"
	"wander-ads/internal/config/configs"
	"wander-ads/internal/core/domain"
	"wander-ads/internal/core/lifecycle"
	"wander-ads/internal/core/port"
)

// OptimizerService runs the recurring lifecycle sweep over deployed
// campaigns: auto-activation, fast-fail, ROAS-banded adjustment and
// portfolio cap enforcement. Every platform-visible change is
// propagated to the ad platform before it is persisted locally.
type OptimizerService struct {
	campaigns port.CampaignRepository
	runs      port.RunRepository
	platforms port.PlatformRegistry

	engineCfg   configs.Engine
	platformCfg configs.Platform
	logger      *slog.Logger
}

// NewOptimizerService wires the optimizer sweep.
func NewOptimizerService(
	campaigns port.CampaignRepository,
	runs port.RunRepository,
	platforms port.PlatformRegistry,
	engineCfg configs.Engine,
	platformCfg configs.Platform,
	logger *slog.Logger,
) *OptimizerService {
	return &OptimizerService{
		campaigns:   campaigns,
		runs:        runs,
		platforms:   platforms,
		engineCfg:   engineCfg,
		platformCfg: platformCfg,
		logger:      logger,
	}
}

// Sweep executes one optimizer pass. Per-campaign failures are counted
// and skipped; a campaign left untouched stays in its last-written
// state, which the next sweep re-evaluates from scratch.
func (s *OptimizerService) Sweep(ctx context.Context) (*port.EngineRun, error) {
	run := &port.EngineRun{
		ID:        uuid.NewString(),
		Kind:      "optimizer",
		StartedAt: time.Now().UTC(),
	}

	deployed, err := s.campaigns.ListDeployed(ctx)
	if err != nil {
		return nil, fmt.Errorf("load deployed campaigns: %w", err)
	}

	now := time.Now().UTC()
	var active []domain.Campaign

	err = platform.InBatches(ctx, deployed, s.platformCfg.ChunkSize, s.platformCfg.PaceDelay, func(c domain.Campaign) {
		if updated, inCap := s.evaluateOne(ctx, c, now, run); inCap {
			active = append(active, updated)
		}
	})
	if err != nil {
		return nil, err
	}

	s.enforcePortfolioCap(ctx, active, run)

	run.FinishedAt = time.Now().UTC()
	if err := s.runs.RecordRun(ctx, run); err != nil {
		s.logger.Error("record optimizer run failed", slog.Any("error", err))
	}
	s.logger.Info("optimizer sweep finished",
		slog.String("run_id", run.ID),
		slog.Int("activated", run.Summary.Activated),
		slog.Int("scaled", run.Summary.Scaled),
		slog.Int("shrunk", run.Summary.Shrunk),
		slog.Int("paused", run.Summary.Paused),
		slog.Int("skipped", run.Summary.Skipped),
		slog.Int("failed", run.Summary.Failed))
	return run, nil
}

// evaluateOne applies the lifecycle rules to a single campaign. The
// second return reports whether the campaign is still active on an
// addressable platform and so participates in the portfolio cap pass;
// campaigns whose platform cannot be resolved are left out entirely, so
// their budgets never inflate the shrink factor for the rest.
func (s *OptimizerService) evaluateOne(ctx context.Context, c domain.Campaign, now time.Time, run *port.EngineRun) (domain.Campaign, bool) {
	adapter, err := s.platforms.Platform(c.Platform)
	if errors.Is(err, port.ErrPlatformNotConfigured) {
		run.Summary.Skipped++
		return c, false
	}
	if err != nil {
		run.Summary.Failed++
		return c, false
	}

	perf, err := adapter.Performance(ctx, c.PlatformID, s.engineCfg.AdjustWindowDays)
	if err != nil {
		run.Summary.Failed++
		s.logger.Error("read campaign performance failed",
			slog.String("campaign", c.ID), slog.Any("error", err))
		return c, c.Status == domain.CampaignActive
	}

	decision := lifecycle.Evaluate(c, perf, now, s.engineCfg)
	if decision.Action == lifecycle.ActionNone {
		return c, c.Status == domain.CampaignActive
	}

	if err := s.apply(ctx, adapter, &c, decision); err != nil {
		run.Summary.Failed++
		s.logger.Error("apply lifecycle decision failed",
			slog.String("campaign", c.ID),
			slog.String("action", string(decision.Action)),
			slog.Any("error", err))
		return c, c.Status == domain.CampaignActive
	}

	switch decision.Action {
	case lifecycle.ActionActivate:
		run.Summary.Activated++
	case lifecycle.ActionScale:
		run.Summary.Scaled++
	case lifecycle.ActionPause:
		run.Summary.Paused++
	}
	return c, c.Status == domain.CampaignActive
}

// apply propagates a decision to the ad platform first, then persists
// the new local state. A local-only change without platform propagation
// is a defect, so propagation failures abort before any write.
func (s *OptimizerService) apply(ctx context.Context, adapter port.AdPlatform, c *domain.Campaign, d lifecycle.Decision) error {
	switch d.Action {
	case lifecycle.ActionActivate:
		if err := adapter.UpdateStatus(ctx, c.PlatformID, domain.CampaignActive); err != nil {
			return err
		}
		c.Status = domain.CampaignActive
		c.Metadata.ActivationNote = d.Note

	case lifecycle.ActionPause:
		if err := adapter.UpdateStatus(ctx, c.PlatformID, domain.CampaignPaused); err != nil {
			return err
		}
		c.Status = domain.CampaignPaused
		c.Metadata.PauseReason = d.Reason

	case lifecycle.ActionScale, lifecycle.ActionShrink:
		if err := adapter.UpdateBudget(ctx, c.PlatformID, d.NewDailyBudget); err != nil {
			return err
		}
		if d.NewMaxCPC > 0 && d.NewMaxCPC != c.MaxCPC {
			if err := adapter.UpdateBid(ctx, c.PlatformID, d.NewMaxCPC); err != nil {
				return err
			}
			c.MaxCPC = d.NewMaxCPC
		}
		c.DailyBudget = d.NewDailyBudget

	default:
		return nil
	}
	return s.campaigns.Update(ctx, c)
}

// enforcePortfolioCap scales down every active campaign proportionally
// when their combined daily budgets exceed the global ceiling.
func (s *OptimizerService) enforcePortfolioCap(ctx context.Context, active []domain.Campaign, run *port.EngineRun) {
	decisions := lifecycle.EnforcePortfolioCap(active, s.engineCfg.DailyBudgetCeiling)
	if len(decisions) == 0 {
		return
	}
	s.logger.Warn("active portfolio over ceiling, rebalancing",
		slog.Int("campaigns", len(decisions)),
		slog.Float64("ceiling", s.engineCfg.DailyBudgetCeiling))

	for i := range active {
		c := active[i]
		d, ok := decisions[c.ID]
		if !ok {
			continue
		}
		adapter, err := s.platforms.Platform(c.Platform)
		if err != nil {
			run.Summary.Skipped++
			continue
		}
		if err := s.apply(ctx, adapter, &c, d); err != nil {
			run.Summary.Failed++
			s.logger.Error("portfolio rebalance failed",
				slog.String("campaign", c.ID), slog.Any("error", err))
			continue
		}
		run.Summary.Shrunk++
	}
}
