package domain

// AdGroup is a named subset of a campaign's keywords sharing a theme or
// destination region. The primary keyword drives generated creative for
// the whole group.
type AdGroup struct {
	Name           string
	PrimaryKeyword string
	Keywords       []ScoredCandidate
}

// CampaignGroup is the unit of budget allocation: one per
// (publishing site, platform) pair.
type CampaignGroup struct {
	SiteID      string
	Platform    Platform
	IsMicrosite bool
	Candidates  []ScoredCandidate
	AdGroups    []AdGroup

	TotalExpectedDailyCost    float64
	TotalExpectedDailyRevenue float64

	// AllocatedDailyBudget is set by the allocator; zero means unfunded.
	AllocatedDailyBudget float64
	// Explored marks groups funded from the exploration reserve rather
	// than the greedy pass.
	Explored bool
}

// BlendedProfitability is the measure the allocator sorts by: expected
// daily profit weighted with the ROAS ratio so a small highly efficient
// group can outrank a large marginal one.
func (g CampaignGroup) BlendedProfitability() float64 {
	profit := g.TotalExpectedDailyRevenue - g.TotalExpectedDailyCost
	if g.TotalExpectedDailyCost <= 0 {
		return profit
	}
	roas := g.TotalExpectedDailyRevenue / g.TotalExpectedDailyCost
	return profit * roas
}

// Keywords returns the plain keyword texts of all candidates in score order.
func (g CampaignGroup) Keywords() []string {
	out := make([]string, 0, len(g.Candidates))
	for _, c := range g.Candidates {
		out = append(out, c.Keyword)
	}
	return out
}

// MaxBid returns the highest capped bid across the group's candidates,
// used as the campaign-level max CPC at deploy time.
func (g CampaignGroup) MaxBid() float64 {
	var max float64
	for _, c := range g.Candidates {
		if c.MaxBid > max {
			max = c.MaxBid
		}
	}
	return max
}
