package domain

// Decision is the AI-evaluation verdict attached to a keyword candidate
// by the discovery pipeline. An empty decision means the candidate was
// never evaluated and may still enter scoring.
type Decision string

const (
	DecisionBid    Decision = "BID"
	DecisionReview Decision = "REVIEW"
)

// Platform identifies an ad platform family. The engine is deliberately
// ignorant of any platform's wire protocol; the value only selects
// platform-specific cost and click-through assumptions.
type Platform string

const (
	PlatformSearch Platform = "search"
	PlatformSocial Platform = "social"
)

// KeywordCandidate is a keyword discovered and enriched by the
// out-of-scope discovery pipeline. Consumed read-only by the scorer.
type KeywordCandidate struct {
	ID           int64
	Keyword      string
	SiteID       string
	Volume       int64 // monthly search volume
	EstimatedCPC float64
	Location     string // destination city or region, may be empty
	IsMicrosite  bool   // destination has a dedicated microsite
	LandingURL   string
	Decision     Decision
}

// Scorable reports whether the candidate may enter scoring. REVIEW
// candidates stay out until a human promotes them externally.
func (k KeywordCandidate) Scorable() bool {
	return k.Decision != DecisionReview
}
