package projections

import (
	"context"

	domainPricing "fitstudio/internal/domain/pricing"
)

// GetPricingDeps holds dependencies for GetPricing.
type GetPricingDeps struct {
	PricingStore PricingStore
}

// QueryGetPricing returns the tiers of every service keyed by service id.
// PRE: none
// POST: services without tiers map to an empty, non-nil slice
func QueryGetPricing(ctx context.Context, deps GetPricingDeps) (map[string][]domainPricing.Tier, error) {
	services, err := deps.PricingStore.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]domainPricing.Tier, len(services))
	for _, s := range services {
		tiers := s.Tiers
		if tiers == nil {
			tiers = []domainPricing.Tier{}
		}
		out[s.ID] = tiers
	}
	return out, nil
}
