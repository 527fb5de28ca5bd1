// Package usecase orchestrates the engine's batch passes: the
// allocation run (profile, score, group, allocate, deploy) and the
// lifecycle optimizer sweep. Each pass reads a consistent snapshot,
// computes, writes results and exits; re-running with identical inputs
// is idempotent.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"wander-ads/internal/adapter/platform"
	"wander-ads/internal/config/configs"
	"wander-ads/internal/core/allocator"
	"wander-ads/internal/core/domain"
	"wander-ads/internal/core/grouper"
	"wander-ads/internal/core/port"
	"wander-ads/internal/core/profiler"
	"wander-ads/internal/core/scorer"
)

// defaultNegativeKeywords is the deploy-time negative list attached to
// every campaign; it strips the query classes that never convert for
// travel experiences.
var defaultNegativeKeywords = []string{"free", "jobs", "careers", "diy", "wiki", "reddit"}

// AllocationService runs the full allocation pass.
type AllocationService struct {
	keywords  port.KeywordRepository
	bookings  port.BookingRepository
	campaigns port.CampaignRepository
	runs      port.RunRepository
	platforms port.PlatformRegistry

	engineCfg   configs.Engine
	platformCfg configs.Platform
	scorer      *scorer.Scorer
	grouper     *grouper.Grouper
	logger      *slog.Logger
}

// NewAllocationService wires the allocation pass. A nil strategy uses
// the default score weighting.
func NewAllocationService(
	keywords port.KeywordRepository,
	bookings port.BookingRepository,
	campaigns port.CampaignRepository,
	runs port.RunRepository,
	platforms port.PlatformRegistry,
	engineCfg configs.Engine,
	platformCfg configs.Platform,
	strategy scorer.Strategy,
	logger *slog.Logger,
) *AllocationService {
	return &AllocationService{
		keywords:    keywords,
		bookings:    bookings,
		campaigns:   campaigns,
		runs:        runs,
		platforms:   platforms,
		engineCfg:   engineCfg,
		platformCfg: platformCfg,
		scorer:      scorer.New(engineCfg, strategy),
		grouper:     grouper.New(engineCfg),
		logger:      logger,
	}
}

// Run executes one allocation pass. The seed fixes the exploration
// shuffle so a run can be reproduced exactly. Only invariant violations
// and total configuration absence halt the pass early; everything else
// is counted and the pass continues.
func (s *AllocationService) Run(ctx context.Context, seed int64) (*port.EngineRun, error) {
	run := &port.EngineRun{
		ID:        uuid.NewString(),
		Kind:      "allocation",
		StartedAt: time.Now().UTC(),
	}

	configured := s.platforms.Configured()
	if len(configured) == 0 {
		return nil, fmt.Errorf("allocation run: %w", port.ErrPlatformNotConfigured)
	}

	window := time.Duration(s.engineCfg.BookingWindowDays) * 24 * time.Hour
	stats, err := s.bookings.StatsBySite(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("load booking stats: %w", err)
	}
	profiles := profiler.BuildAll(stats, s.engineCfg)

	pool, err := s.keywords.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load keyword candidates: %w", err)
	}

	scored := s.scorer.ScoreAll(pool, profiles)
	run.Summary.Scored = len(scored)

	groups := s.grouper.Group(scored)
	run.Summary.Grouped = len(groups)

	// Unconfigured platforms are skipped entirely, never funded at zero.
	eligible := make([]domain.CampaignGroup, 0, len(groups))
	for _, g := range groups {
		if _, err := s.platforms.Platform(g.Platform); err != nil {
			run.Summary.Skipped++
			continue
		}
		eligible = append(eligible, g)
	}

	rng := rand.New(rand.NewSource(seed))
	alloc, err := allocator.Allocate(eligible, s.engineCfg, rng)
	if err != nil {
		// invariant violation: an invalid campaign set must not ship
		return nil, fmt.Errorf("allocate budget: %w", err)
	}
	run.Summary.Allocated = len(alloc.Funded)
	run.Summary.TotalBudget = alloc.TotalAllocated

	err = platform.InBatches(ctx, alloc.Funded, s.platformCfg.ChunkSize, s.platformCfg.PaceDelay, func(g domain.CampaignGroup) {
		if err := s.deploy(ctx, run.ID, g); err != nil {
			run.Summary.Failed++
			s.logger.Error("deploy campaign group failed",
				slog.String("site", g.SiteID),
				slog.String("platform", string(g.Platform)),
				slog.Any("error", err))
			return
		}
		run.Summary.Deployed++
	})
	if err != nil {
		return nil, err
	}

	run.FinishedAt = time.Now().UTC()
	if err := s.runs.RecordRun(ctx, run); err != nil {
		s.logger.Error("record allocation run failed", slog.Any("error", err))
	}
	s.logger.Info("allocation run finished",
		slog.String("run_id", run.ID),
		slog.Int("scored", run.Summary.Scored),
		slog.Int("grouped", run.Summary.Grouped),
		slog.Int("allocated", run.Summary.Allocated),
		slog.Int("deployed", run.Summary.Deployed),
		slog.Int("skipped", run.Summary.Skipped),
		slog.Int("failed", run.Summary.Failed),
		slog.Float64("total_budget", run.Summary.TotalBudget))
	return run, nil
}

// deploy archives any superseded campaign for the (site, platform)
// pair, persists a fresh draft, materializes it on the platform and
// records the platform identifier. Supplementary attachments are
// best-effort: a failed negative-keyword or geo-target call is logged
// but does not fail the deploy.
func (s *AllocationService) deploy(ctx context.Context, runID string, g domain.CampaignGroup) error {
	adapter, err := s.platforms.Platform(g.Platform)
	if err != nil {
		return err
	}

	if n, err := s.campaigns.ArchiveBySite(ctx, g.SiteID, g.Platform); err != nil {
		return fmt.Errorf("archive superseded campaigns: %w", err)
	} else if n > 0 {
		s.logger.Info("archived superseded campaigns",
			slog.String("site", g.SiteID), slog.Int("count", n))
	}

	c := &domain.Campaign{
		ID:          uuid.NewString(),
		SiteID:      g.SiteID,
		Platform:    g.Platform,
		Name:        fmt.Sprintf("%s %s", g.SiteID, g.Platform),
		Status:      domain.CampaignDraft,
		DailyBudget: g.AllocatedDailyBudget,
		MaxCPC:      g.MaxBid(),
		Keywords:    g.Keywords(),
		GeoTargets:  geoTargets(g),
		Metadata: domain.CampaignMetadata{
			ScoreHistory: []domain.ScoreSnapshot{{
				RunID:     runID,
				Score:     topScore(g),
				Budget:    g.AllocatedDailyBudget,
				Timestamp: time.Now().UTC(),
			}},
		},
	}
	if err := s.campaigns.Create(ctx, c); err != nil {
		return fmt.Errorf("persist draft: %w", err)
	}

	platformID, err := adapter.Deploy(ctx, *c, g)
	if err != nil {
		c.Status = domain.CampaignFailed
		if uerr := s.campaigns.Update(ctx, c); uerr != nil {
			s.logger.Error("mark campaign failed", slog.Any("error", uerr))
		}
		return fmt.Errorf("platform deploy: %w", err)
	}

	if err := adapter.AttachNegativeKeywords(ctx, platformID, defaultNegativeKeywords); err != nil {
		s.logger.Warn("attach negative keywords failed",
			slog.String("campaign", c.ID), slog.Any("error", err))
	}
	if len(c.GeoTargets) > 0 {
		if err := adapter.AttachGeoTargets(ctx, platformID, c.GeoTargets); err != nil {
			s.logger.Warn("attach geo targets failed",
				slog.String("campaign", c.ID), slog.Any("error", err))
		}
	}

	c.PlatformID = platformID
	c.Status = domain.CampaignPaused
	if err := s.campaigns.Update(ctx, c); err != nil {
		return fmt.Errorf("persist deployed campaign: %w", err)
	}
	return nil
}

// geoTargets collects the distinct destination locations of a group.
func geoTargets(g domain.CampaignGroup) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range g.Candidates {
		if c.Location == "" || seen[c.Location] {
			continue
		}
		seen[c.Location] = true
		out = append(out, c.Location)
	}
	return out
}

// topScore returns the strongest candidate's score; candidates are in
// score order after grouping.
func topScore(g domain.CampaignGroup) float64 {
	if len(g.Candidates) == 0 {
		return 0
	}
	return g.Candidates[0].Score
}

// IsInvariantViolation reports whether an allocation run failed on a
// budget invariant rather than an external fault.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, port.ErrBudgetCeilingExceeded)
}
