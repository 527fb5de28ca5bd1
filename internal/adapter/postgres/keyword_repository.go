package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wander-ads/internal/core/domain"
)

// KeywordRepository reads the candidate pool the discovery pipeline
// writes. The engine never mutates this table.
type KeywordRepository struct {
	pool *pgxpool.Pool
}

// NewKeywordRepository returns a new repository instance.
func NewKeywordRepository(pool *pgxpool.Pool) *KeywordRepository {
	return &KeywordRepository{pool: pool}
}

// ListCandidates returns candidates eligible for scoring: decision BID
// or never evaluated. REVIEW candidates stay out until promoted
// externally.
func (r *KeywordRepository) ListCandidates(ctx context.Context) ([]domain.KeywordCandidate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, keyword, site_id, volume, estimated_cpc,
		        COALESCE(location, ''), is_microsite, COALESCE(landing_url, ''),
		        COALESCE(decision, '')
		 FROM keyword_candidates
		 WHERE COALESCE(decision, '') <> 'REVIEW'
		 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.KeywordCandidate, error) {
		var kc domain.KeywordCandidate
		err := row.Scan(
			&kc.ID,
			&kc.Keyword,
			&kc.SiteID,
			&kc.Volume,
			&kc.EstimatedCPC,
			&kc.Location,
			&kc.IsMicrosite,
			&kc.LandingURL,
			&kc.Decision,
		)
		return kc, err
	})
}
