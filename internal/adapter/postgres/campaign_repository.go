package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wander-ads/internal/core/domain"
	"wander-ads/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, site_id, platform, name, status, daily_budget, max_cpc,
	keywords, geo_targets, platform_id, metadata, created_at, updated_at`

func scanCampaign(row pgx.CollectableRow) (domain.Campaign, error) {
	var (
		c   domain.Campaign
		raw []byte
	)
	err := row.Scan(
		&c.ID,
		&c.SiteID,
		&c.Platform,
		&c.Name,
		&c.Status,
		&c.DailyBudget,
		&c.MaxCPC,
		&c.Keywords,
		&c.GeoTargets,
		&c.PlatformID,
		&raw,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	if len(raw) > 0 {
		if err = json.Unmarshal(raw, &c.Metadata); err != nil {
			return c, fmt.Errorf("decode campaign metadata: %w", err)
		}
	}
	return c, nil
}

// Get returns a single campaign or port.ErrCampaignNotFound.
func (r *CampaignRepository) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	c, err := pgx.CollectOneRow(rows, scanCampaign)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns campaigns matching the filter, newest first.
func (r *CampaignRepository) List(ctx context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE 1=1`
	args := []any{}
	argN := 1
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, f.Status)
		argN++
	}
	if f.SiteID != "" {
		query += fmt.Sprintf(" AND site_id = $%d", argN)
		args = append(args, f.SiteID)
		argN++
	}
	if f.Platform != "" {
		query += fmt.Sprintf(" AND platform = $%d", argN)
		args = append(args, f.Platform)
		argN++
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argN)
		args = append(args, f.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanCampaign)
}

// ListDeployed returns non-terminal campaigns that exist on an ad
// platform; the optimizer sweep operates on exactly this set.
func (r *CampaignRepository) ListDeployed(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaigns
		 WHERE platform_id <> '' AND status NOT IN ('completed', 'archived')
		 ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanCampaign)
}

// Create inserts a new campaign.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	raw, err := json.Marshal(c.Metadata)
	if err != nil {
		return fmt.Errorf("encode campaign metadata: %w", err)
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err = r.pool.Exec(ctx,
		`INSERT INTO campaigns
		 (id, site_id, platform, name, status, daily_budget, max_cpc,
		  keywords, geo_targets, platform_id, metadata, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		c.ID, c.SiteID, c.Platform, c.Name, c.Status, c.DailyBudget, c.MaxCPC,
		c.Keywords, c.GeoTargets, c.PlatformID, raw, c.CreatedAt, c.UpdatedAt)
	return err
}

// Update persists status, budget, bid, platform ID and metadata.
func (r *CampaignRepository) Update(ctx context.Context, c *domain.Campaign) error {
	raw, err := json.Marshal(c.Metadata)
	if err != nil {
		return fmt.Errorf("encode campaign metadata: %w", err)
	}
	c.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET
		 status=$1, daily_budget=$2, max_cpc=$3, platform_id=$4,
		 metadata=$5, updated_at=$6
		 WHERE id=$7`,
		c.Status, c.DailyBudget, c.MaxCPC, c.PlatformID, raw, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignNotFound
	}
	return nil
}

// ArchiveBySite marks every non-terminal campaign of a (site, platform)
// pair as archived and returns the count.
func (r *CampaignRepository) ArchiveBySite(ctx context.Context, siteID string, platform domain.Platform) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET status='archived', updated_at=now()
		 WHERE site_id=$1 AND platform=$2 AND status NOT IN ('completed', 'archived')`,
		siteID, platform)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
