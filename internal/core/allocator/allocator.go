// Package allocator distributes the global daily budget ceiling across
// campaign groups: a greedy pass by descending profitability for the
// majority share, then a randomized exploration pass over the unfunded
// remainder so unproven groups still accumulate real performance data.
package allocator

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"wander-ads/internal/config/configs"
	"wander-ads/internal/core/domain"
	"wander-ads/internal/core/port"
)

// Allocation is the result of one allocation pass.
type Allocation struct {
	// Funded holds every group with a non-zero daily budget, greedy
	// winners first, exploration picks after.
	Funded []domain.CampaignGroup
	// Unfunded holds the groups that received nothing this run.
	Unfunded []domain.CampaignGroup
	// TotalAllocated is the sum of funded budgets; never above the
	// configured ceiling.
	TotalAllocated float64
	// GreedyAllocated is the share consumed by the greedy pass.
	GreedyAllocated float64
}

// Allocate distributes the daily ceiling across groups. The rng drives
// only the exploration shuffle, so a fixed seed reproduces the whole
// allocation while the greedy pass stays seed-independent. The
// remaining-budget counters are local to this call; allocations in
// flight never share state.
func Allocate(groups []domain.CampaignGroup, cfg configs.Engine, rng *rand.Rand) (Allocation, error) {
	ceiling := cfg.DailyBudgetCeiling
	floor := cfg.MinDailyBudgetFloor
	perCampaignCap := cfg.MaxPerCampaignBudget
	if ceiling <= 0 || floor <= 0 || perCampaignCap < floor {
		return Allocation{}, fmt.Errorf("invalid budget limits: ceiling=%.2f floor=%.2f cap=%.2f", ceiling, floor, perCampaignCap)
	}

	sorted := make([]domain.CampaignGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		bi, bj := sorted[i].BlendedProfitability(), sorted[j].BlendedProfitability()
		if bi != bj {
			return bi > bj
		}
		// deterministic tie-break
		if sorted[i].SiteID != sorted[j].SiteID {
			return sorted[i].SiteID < sorted[j].SiteID
		}
		return sorted[i].Platform < sorted[j].Platform
	})

	var alloc Allocation
	greedyBudget := ceiling * cfg.GreedyShare
	remaining := ceiling

	// Greedy pass: fund in profitability order until the greedy share
	// of the ceiling is exhausted. Funding is all-or-nothing per group:
	// max(natural cost, floor) capped at the per-campaign cap.
	var leftovers []domain.CampaignGroup
	for _, g := range sorted {
		want := math.Min(math.Max(g.TotalExpectedDailyCost, floor), perCampaignCap)
		if alloc.GreedyAllocated+want > greedyBudget || want > remaining {
			leftovers = append(leftovers, g)
			continue
		}
		g.AllocatedDailyBudget = want
		alloc.Funded = append(alloc.Funded, g)
		alloc.GreedyAllocated += want
		remaining -= want
	}

	// Exploration pass: shuffle the unfunded remainder and fund as many
	// as the leftover budget allows, at the floor amount only.
	rng.Shuffle(len(leftovers), func(i, j int) {
		leftovers[i], leftovers[j] = leftovers[j], leftovers[i]
	})
	for _, g := range leftovers {
		if remaining < floor {
			alloc.Unfunded = append(alloc.Unfunded, g)
			continue
		}
		g.AllocatedDailyBudget = floor
		g.Explored = true
		alloc.Funded = append(alloc.Funded, g)
		remaining -= floor
	}

	alloc.TotalAllocated = ceiling - remaining
	if err := validate(alloc, cfg); err != nil {
		return Allocation{}, err
	}
	return alloc, nil
}

// validate enforces the allocation invariants. A violation is fatal to
// the run: an invalid campaign set must never be emitted.
func validate(alloc Allocation, cfg configs.Engine) error {
	var total float64
	for _, g := range alloc.Funded {
		if g.AllocatedDailyBudget < cfg.MinDailyBudgetFloor {
			return fmt.Errorf("group %s/%s funded below floor (%.2f): %w",
				g.SiteID, g.Platform, g.AllocatedDailyBudget, port.ErrBudgetCeilingExceeded)
		}
		if g.AllocatedDailyBudget > cfg.MaxPerCampaignBudget {
			return fmt.Errorf("group %s/%s funded above cap (%.2f): %w",
				g.SiteID, g.Platform, g.AllocatedDailyBudget, port.ErrBudgetCeilingExceeded)
		}
		total += g.AllocatedDailyBudget
	}
	// small tolerance for floating point accumulation
	if total > cfg.DailyBudgetCeiling*(1+1e-9) {
		return fmt.Errorf("allocated %.2f over ceiling %.2f: %w",
			total, cfg.DailyBudgetCeiling, port.ErrBudgetCeilingExceeded)
	}
	return nil
}
