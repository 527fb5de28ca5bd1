package platform

import (
	"wander-ads/internal/config/configs"
	"wander-ads/internal/core/domain"
	"wander-ads/internal/core/port"
)

// Registry resolves gateway adapters per platform family. A family with
// an empty account ID is not configured and resolves to
// port.ErrPlatformNotConfigured; the usecase skips its campaigns
// wholesale instead of funding them at zero.
type Registry struct {
	adapters map[domain.Platform]port.AdPlatform
}

// NewRegistry builds adapters for every configured family.
func NewRegistry(cfg configs.Platform) *Registry {
	adapters := make(map[domain.Platform]port.AdPlatform)
	if cfg.SearchAccountID != "" {
		adapters[domain.PlatformSearch] = NewGateway(cfg, domain.PlatformSearch, cfg.SearchAccountID)
	}
	if cfg.SocialAccountID != "" {
		adapters[domain.PlatformSocial] = NewGateway(cfg, domain.PlatformSocial, cfg.SocialAccountID)
	}
	return &Registry{adapters: adapters}
}

// Platform implements port.PlatformRegistry.
func (r *Registry) Platform(p domain.Platform) (port.AdPlatform, error) {
	adapter, ok := r.adapters[p]
	if !ok {
		return nil, port.ErrPlatformNotConfigured
	}
	return adapter, nil
}

// Configured lists the platform families with working credentials, in
// deterministic order.
func (r *Registry) Configured() []domain.Platform {
	var out []domain.Platform
	for _, p := range []domain.Platform{domain.PlatformSearch, domain.PlatformSocial} {
		if _, ok := r.adapters[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
