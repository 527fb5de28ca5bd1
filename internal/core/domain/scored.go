package domain

// ScoredCandidate is a KeywordCandidate projected onto one platform with
// its profitability estimates attached. Ephemeral: recomputed each
// allocation run and never persisted outside the campaign group it
// lands in.
type ScoredCandidate struct {
	KeywordCandidate

	Platform             Platform
	Score                float64 // bounded 0-100
	EstimatedCPC         float64 // platform-adjusted
	MaxBid               float64
	ExpectedClicksPerDay float64
	ExpectedDailyCost    float64
	ExpectedDailyRevenue float64
	LandingURL           string
	Category             string // keyword-classification label
}

// ExpectedDailyProfit is revenue minus cost at current estimates.
func (s ScoredCandidate) ExpectedDailyProfit() float64 {
	return s.ExpectedDailyRevenue - s.ExpectedDailyCost
}

// ExpectedROAS returns expected revenue per unit of spend, or zero when
// the candidate carries no spend signal.
func (s ScoredCandidate) ExpectedROAS() float64 {
	if s.ExpectedDailyCost <= 0 {
		return 0
	}
	return s.ExpectedDailyRevenue / s.ExpectedDailyCost
}
