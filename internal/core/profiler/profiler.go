// Package profiler derives per-site unit economics from booking
// aggregates. Profiles are recomputed on every allocation run and never
// persisted; thin booking data is a first-class state handled by
// per-statistic default substitution, not an error.
package profiler

import (
	"wander-ads/internal/config/configs"
	"wander-ads/internal/core/domain"
)

// Statistic names recorded in SiteProfile.Defaulted.
const (
	StatAOV            = "avg_order_value"
	StatCommissionRate = "commission_rate"
	StatConversionRate = "conversion_rate"
)

// Build derives a SiteProfile from one site's booking aggregate. Each
// statistic falls back to its configured default individually, only when
// its own inputs are missing, so a site with thin-but-present data still
// gets a personalized estimate where possible. The conversion rate
// additionally needs cfg.MinBookings bookings behind it: a
// clicks-to-booking ratio built on fewer conversion events than that is
// noise, not an estimate.
func Build(stats domain.BookingStats, cfg configs.Engine) domain.SiteProfile {
	p := domain.SiteProfile{SiteID: stats.SiteID}

	if stats.Bookings > 0 && stats.TotalAmount > 0 {
		p.AvgOrderValue = stats.TotalAmount / float64(stats.Bookings)
	} else {
		p.AvgOrderValue = cfg.DefaultAOV
		p.Defaulted = append(p.Defaulted, StatAOV)
	}

	if stats.TotalAmount > 0 && stats.TotalCommission > 0 {
		p.CommissionRate = stats.TotalCommission / stats.TotalAmount
	} else {
		p.CommissionRate = cfg.DefaultCommissionRate
		p.Defaulted = append(p.Defaulted, StatCommissionRate)
	}

	if stats.Clicks > 0 && stats.Bookings >= cfg.MinBookings {
		p.ConversionRate = float64(stats.Bookings) / float64(stats.Clicks)
	} else {
		p.ConversionRate = cfg.DefaultConversionRate
		p.Defaulted = append(p.Defaulted, StatConversionRate)
	}

	// Revenue per click divided by the target return on ad spend.
	if cfg.TargetROAS > 0 {
		p.MaxProfitableCPC = p.AvgOrderValue * p.ConversionRate * p.CommissionRate / cfg.TargetROAS
	}
	if p.MaxProfitableCPC < 0 {
		p.MaxProfitableCPC = 0
	}
	return p
}

// BuildAll profiles every site present in the aggregates and drops the
// ones not currently profitable to advertise.
func BuildAll(stats map[string]domain.BookingStats, cfg configs.Engine) map[string]domain.SiteProfile {
	profiles := make(map[string]domain.SiteProfile, len(stats))
	for siteID, s := range stats {
		p := Build(s, cfg)
		if !p.Profitable() {
			continue
		}
		profiles[siteID] = p
	}
	return profiles
}
