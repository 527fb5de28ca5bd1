package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"wander-ads/internal/core/domain"
)

// BookingRepository aggregates the booking history the analytics
// pipeline writes. Read-only for the engine.
type BookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository returns a new repository instance.
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// StatsBySite aggregates bookings over the trailing window ending now.
// Every site with keyword candidates is included; sites without
// bookings in the window come back with zeroed statistics so the
// profiler can substitute defaults.
func (r *BookingRepository) StatsBySite(ctx context.Context, window time.Duration) (map[string]domain.BookingStats, error) {
	since := time.Now().UTC().Add(-window)
	rows, err := r.pool.Query(ctx,
		`SELECT s.id,
		        COALESCE(b.bookings, 0),
		        COALESCE(b.total_amount, 0),
		        COALESCE(b.total_commission, 0),
		        COALESCE(s.clicks, 0)
		 FROM sites s
		 LEFT JOIN (
		     SELECT site_id,
		            count(*)        AS bookings,
		            sum(amount)     AS total_amount,
		            sum(commission) AS total_commission
		     FROM bookings
		     WHERE booked_at >= $1
		     GROUP BY site_id
		 ) b ON b.site_id = s.id`,
		since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]domain.BookingStats)
	for rows.Next() {
		var st domain.BookingStats
		if err = rows.Scan(&st.SiteID, &st.Bookings, &st.TotalAmount, &st.TotalCommission, &st.Clicks); err != nil {
			return nil, err
		}
		out[st.SiteID] = st
	}
	return out, rows.Err()
}
