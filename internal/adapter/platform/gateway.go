// Package platform talks to the ad-gateway service, the out-of-process
// collaborator that owns each ad platform's wire protocol. This package
// only shuttles campaign mutations across a narrow JSON interface and
// paces them against external rate limits.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wander-ads/internal/config/configs"
	"wander-ads/internal/core/domain"
)

// Gateway is an AdPlatform implementation backed by the ad-gateway
// HTTP service. One Gateway serves one platform family and account.
type Gateway struct {
	client    *http.Client
	baseURL   string
	family    domain.Platform
	accountID string
	retry     retryPolicy
}

// NewGateway creates an adapter for one platform family.
func NewGateway(cfg configs.Platform, family domain.Platform, accountID string) *Gateway {
	return &Gateway{
		client:    &http.Client{Timeout: 30 * time.Second},
		baseURL:   cfg.GatewayURL,
		family:    family,
		accountID: accountID,
		retry: retryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  cfg.RetryBaseDelay,
		},
	}
}

type deployRequest struct {
	AccountID   string            `json:"account_id"`
	Name        string            `json:"name"`
	DailyBudget float64           `json:"daily_budget"`
	MaxCPC      float64           `json:"max_cpc"`
	LandingURL  string            `json:"landing_url"`
	AdGroups    []deployAdGroup   `json:"ad_groups"`
	Status      string            `json:"status"`
	Meta        map[string]string `json:"meta,omitempty"`
}

type deployAdGroup struct {
	Name           string   `json:"name"`
	PrimaryKeyword string   `json:"primary_keyword"`
	Keywords       []string `json:"keywords"`
}

type deployResponse struct {
	PlatformID string `json:"platform_id"`
}

// Deploy materializes a campaign group on the platform and returns the
// platform-assigned identifier.
func (g *Gateway) Deploy(ctx context.Context, c domain.Campaign, group domain.CampaignGroup) (string, error) {
	req := deployRequest{
		AccountID:   g.accountID,
		Name:        c.Name,
		DailyBudget: c.DailyBudget,
		MaxCPC:      c.MaxCPC,
		Status:      string(domain.CampaignPaused),
	}
	for _, ag := range group.AdGroups {
		dg := deployAdGroup{Name: ag.Name, PrimaryKeyword: ag.PrimaryKeyword}
		for _, kw := range ag.Keywords {
			dg.Keywords = append(dg.Keywords, kw.Keyword)
			if req.LandingURL == "" {
				req.LandingURL = kw.LandingURL
			}
		}
		req.AdGroups = append(req.AdGroups, dg)
	}

	var resp deployResponse
	err := g.do(ctx, http.MethodPost, fmt.Sprintf("/v1/%s/campaigns", g.family), req, &resp)
	if err != nil {
		return "", err
	}
	if resp.PlatformID == "" {
		return "", fmt.Errorf("gateway returned empty platform id")
	}
	return resp.PlatformID, nil
}

// UpdateStatus changes a deployed campaign's status.
func (g *Gateway) UpdateStatus(ctx context.Context, platformID string, status domain.CampaignStatus) error {
	body := map[string]string{"status": string(status)}
	return g.do(ctx, http.MethodPatch, g.campaignPath(platformID)+"/status", body, nil)
}

// UpdateBudget changes a deployed campaign's daily budget.
func (g *Gateway) UpdateBudget(ctx context.Context, platformID string, dailyBudget float64) error {
	body := map[string]float64{"daily_budget": dailyBudget}
	return g.do(ctx, http.MethodPatch, g.campaignPath(platformID)+"/budget", body, nil)
}

// UpdateBid changes a deployed campaign's max CPC.
func (g *Gateway) UpdateBid(ctx context.Context, platformID string, maxCPC float64) error {
	body := map[string]float64{"max_cpc": maxCPC}
	return g.do(ctx, http.MethodPatch, g.campaignPath(platformID)+"/bid", body, nil)
}

// AttachNegativeKeywords attaches the deploy-time negative keyword list.
func (g *Gateway) AttachNegativeKeywords(ctx context.Context, platformID string, keywords []string) error {
	body := map[string][]string{"keywords": keywords}
	return g.do(ctx, http.MethodPost, g.campaignPath(platformID)+"/negative-keywords", body, nil)
}

// AttachGeoTargets attaches the deploy-time geographic targets.
func (g *Gateway) AttachGeoTargets(ctx context.Context, platformID string, targets []string) error {
	body := map[string][]string{"targets": targets}
	return g.do(ctx, http.MethodPost, g.campaignPath(platformID)+"/geo-targets", body, nil)
}

// Performance reads the live metric snapshot over a trailing window.
func (g *Gateway) Performance(ctx context.Context, platformID string, windowDays int) (domain.CampaignPerformance, error) {
	var perf domain.CampaignPerformance
	path := fmt.Sprintf("%s/performance?window_days=%d", g.campaignPath(platformID), windowDays)
	if err := g.do(ctx, http.MethodGet, path, nil, &perf); err != nil {
		return domain.CampaignPerformance{}, err
	}
	perf.WindowDays = windowDays
	return perf, nil
}

func (g *Gateway) campaignPath(platformID string) string {
	return fmt.Sprintf("/v1/%s/campaigns/%s", g.family, platformID)
}

// do executes one gateway call with retry on transient failures.
func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	return g.retry.Do(ctx, func() error {
		var buf bytes.Buffer
		if body != nil {
			if err := json.NewEncoder(&buf).Encode(body); err != nil {
				return permanent(fmt.Errorf("encode request: %w", err))
			}
		}
		req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, &buf)
		if err != nil {
			return permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.client.Do(req)
		if err != nil {
			// network errors are worth retrying
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("gateway %s %s: status %d", method, path, resp.StatusCode)
		default:
			return permanent(fmt.Errorf("gateway %s %s: status %d", method, path, resp.StatusCode))
		}

		if out != nil {
			if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
				return permanent(fmt.Errorf("decode response: %w", err))
			}
		}
		return nil
	})
}
