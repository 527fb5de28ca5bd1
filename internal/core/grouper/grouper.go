// Package grouper clusters scored candidates into campaign-sized units,
// one per (publishing site, platform) pair, and partitions each unit's
// keywords into bounded ad groups.
package grouper

import (
	"fmt"
	"sort"

	"wander-ads/internal/config/configs"
	"wander-ads/internal/core/domain"
)

// Grouper builds campaign groups from scored candidates.
type Grouper struct {
	cfg configs.Engine
}

// New creates a grouper with the given policy.
func New(cfg configs.Engine) *Grouper {
	return &Grouper{cfg: cfg}
}

// Group clusters candidates by (site, platform), classifies every
// keyword, and partitions each cluster into ad groups. Output order is
// deterministic for identical input.
func (g *Grouper) Group(candidates []domain.ScoredCandidate) []domain.CampaignGroup {
	type key struct {
		siteID   string
		platform domain.Platform
	}
	buckets := make(map[key][]domain.ScoredCandidate)
	for _, c := range candidates {
		c.Category = Classify(c.Keyword, BrandToken(c.SiteID))
		k := key{c.SiteID, c.Platform}
		buckets[k] = append(buckets[k], c)
	}

	keys := make([]key, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].siteID != keys[j].siteID {
			return keys[i].siteID < keys[j].siteID
		}
		return keys[i].platform < keys[j].platform
	})

	groups := make([]domain.CampaignGroup, 0, len(keys))
	for _, k := range keys {
		cands := buckets[k]
		// Score order, keyword text as the deterministic tie-break.
		sort.SliceStable(cands, func(i, j int) bool {
			if cands[i].Score != cands[j].Score {
				return cands[i].Score > cands[j].Score
			}
			return cands[i].Keyword < cands[j].Keyword
		})

		cg := domain.CampaignGroup{
			SiteID:     k.siteID,
			Platform:   k.platform,
			Candidates: cands,
		}
		for _, c := range cands {
			cg.TotalExpectedDailyCost += c.ExpectedDailyCost
			cg.TotalExpectedDailyRevenue += c.ExpectedDailyRevenue
			if c.IsMicrosite {
				cg.IsMicrosite = true
			}
		}
		cg.AdGroups = g.partition(cg)
		groups = append(groups, cg)
	}
	return groups
}

// partition splits a campaign group's keywords into ad groups.
// Discovery-dominant campaigns split by destination region; everything
// else chunks in score order so the strongest keyword leads each chunk.
func (g *Grouper) partition(cg domain.CampaignGroup) []domain.AdGroup {
	if dominantCategory(cg.Candidates) == CategoryDiscovery {
		return g.partitionByRegion(cg.Candidates)
	}
	return g.chunk("keywords", cg.Candidates)
}

// dominantCategory returns the most frequent classification label,
// preferring the higher-priority label on ties.
func dominantCategory(cands []domain.ScoredCandidate) string {
	counts := make(map[string]int)
	for _, c := range cands {
		counts[c.Category]++
	}
	best, bestCount := CategoryGeneric, 0
	for _, r := range classifierRules {
		if n := counts[r.Label]; n > bestCount {
			best, bestCount = r.Label, n
		}
	}
	return best
}

// partitionByRegion buckets keywords by destination region, preserving
// score order inside each region. Unmatched destinations land in the
// "other" group. Oversized regions are chunked further so the ad-group
// size bound still holds.
func (g *Grouper) partitionByRegion(cands []domain.ScoredCandidate) []domain.AdGroup {
	byRegion := make(map[string][]domain.ScoredCandidate)
	var order []string
	for _, c := range cands {
		region := RegionFor(c.Location)
		if _, seen := byRegion[region]; !seen {
			order = append(order, region)
		}
		byRegion[region] = append(byRegion[region], c)
	}

	var out []domain.AdGroup
	for _, region := range order {
		out = append(out, g.chunk(region, byRegion[region])...)
	}
	return out
}

// chunk splits candidates into ad groups of at most MaxAdGroupSize,
// preserving order. The first (strongest) keyword of each chunk becomes
// the primary keyword driving generated creative.
func (g *Grouper) chunk(name string, cands []domain.ScoredCandidate) []domain.AdGroup {
	size := g.cfg.MaxAdGroupSize
	if size <= 0 {
		size = 20
	}
	var out []domain.AdGroup
	for i := 0; i < len(cands); i += size {
		end := i + size
		if end > len(cands) {
			end = len(cands)
		}
		chunk := cands[i:end]
		groupName := name
		if i > 0 || end < len(cands) {
			groupName = fmt.Sprintf("%s-%d", name, len(out)+1)
		}
		out = append(out, domain.AdGroup{
			Name:           groupName,
			PrimaryKeyword: chunk[0].Keyword,
			Keywords:       chunk,
		})
	}
	return out
}
