package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo data: a handful of publishing sites with booking
// history of varying thickness and a keyword candidate pool covering
// the classifier's pattern families.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	sites := []struct {
		id     string
		name   string
		clicks int64
	}{
		{"romewalks.example.com", "Rome Walks", 5200},
		{"londondays.example.com", "London Days", 8400},
		{"pariseats.example.com", "Paris Eats", 3100},
		// thin site: too few bookings for a conversion estimate
		{"kyotopaths.example.com", "Kyoto Paths", 240},
	}
	for _, s := range sites {
		_, err := db.Exec(ctx, `INSERT INTO sites (id, name, clicks)
VALUES ($1,$2,$3) ON CONFLICT DO NOTHING`, s.id, s.name, s.clicks)
		if err != nil {
			return err
		}
	}

	// booking history over the trailing window
	for _, s := range sites[:3] {
		n := 20 + r.Intn(40)
		for i := 0; i < n; i++ {
			amount := 40 + r.Float64()*120
			commission := amount * (0.08 + r.Float64()*0.06)
			bookedAt := time.Now().AddDate(0, 0, -r.Intn(85))
			_, err := db.Exec(ctx, `INSERT INTO bookings (site_id, amount, commission, booked_at)
VALUES ($1,$2,$3,$4)`, s.id, amount, commission, bookedAt)
			if err != nil {
				return err
			}
		}
	}
	// the thin site gets two bookings only
	for i := 0; i < 2; i++ {
		_, err := db.Exec(ctx, `INSERT INTO bookings (site_id, amount, commission, booked_at)
VALUES ($1,$2,$3,$4)`, sites[3].id, 95.0, 9.5, time.Now().AddDate(0, 0, -10))
		if err != nil {
			return err
		}
	}

	type kw struct {
		keyword  string
		siteID   string
		volume   int64
		cpc      float64
		location string
		micro    bool
		decision string
	}
	candidates := []kw{
		{"rome walks guided tour", "romewalks.example.com", 2400, 0.05, "Rome", true, "BID"},
		{"colosseum tickets", "romewalks.example.com", 9800, 0.09, "Rome", true, "BID"},
		{"things to do in rome", "romewalks.example.com", 14500, 0.04, "Rome", true, ""},
		{"things to do in florence", "romewalks.example.com", 7600, 0.04, "Florence", false, "BID"},
		{"walking tour tickets london", "londondays.example.com", 3300, 0.06, "London", true, "BID"},
		{"tower of london entry", "londondays.example.com", 6100, 0.08, "London", true, "BID"},
		{"things to do in london", "londondays.example.com", 22000, 0.05, "London", true, ""},
		{"londondays vs viator", "londondays.example.com", 320, 0.03, "London", false, "BID"},
		{"paris food tour", "pariseats.example.com", 4100, 0.07, "Paris", true, "BID"},
		{"hidden gems paris", "pariseats.example.com", 1900, 0.03, "Paris", true, ""},
		{"best croissant montmartre", "pariseats.example.com", 800, 0.02, "Paris", false, "REVIEW"},
		{"kyoto temple tour", "kyotopaths.example.com", 2700, 0.04, "Kyoto", true, "BID"},
		{"things to do in kyoto", "kyotopaths.example.com", 9100, 0.03, "Kyoto", true, ""},
	}
	for i, c := range candidates {
		landing := ""
		if c.micro {
			landing = fmt.Sprintf("https://%s/d/%d", c.siteID, i+1)
		}
		_, err := db.Exec(ctx, `INSERT INTO keyword_candidates
(keyword, site_id, volume, estimated_cpc, location, is_microsite, landing_url, decision)
VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8,''))`,
			c.keyword, c.siteID, c.volume, c.cpc, c.location, c.micro, landing, c.decision)
		if err != nil {
			return err
		}
	}
	return nil
}
