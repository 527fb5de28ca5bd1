package domain

// BookingStats is the per-site booking aggregate over the trailing
// profiling window. It is read-only input produced by the booking
// pipeline; the engine never writes it.
type BookingStats struct {
	SiteID          string
	Bookings        int
	TotalAmount     float64
	TotalCommission float64
	Clicks          int64
}

// SiteProfile models the unit economics of a publishing site. It is
// derived fresh from BookingStats on every allocation run and never
// persisted. Monetary values are in major currency units (pounds).
type SiteProfile struct {
	SiteID           string
	AvgOrderValue    float64
	CommissionRate   float64
	ConversionRate   float64
	MaxProfitableCPC float64
	// Defaulted lists which statistics fell back to configured defaults
	// because the site's booking data was too thin to estimate them.
	Defaulted []string
}

// minProfitableCPC is the epsilon below which a site is considered
// unprofitable to advertise and excluded from scoring.
const minProfitableCPC = 0.001

// Profitable reports whether the site is currently worth bidding on.
func (p SiteProfile) Profitable() bool {
	return p.MaxProfitableCPC > minProfitableCPC
}
