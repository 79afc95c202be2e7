package app

import (
	"github.com/genno-io/genno/internal/domain/pricing"
	"github.com/genno-io/genno/internal/pkg/config"
)

// pricingService implements the PricingService interface from the payment settings
type pricingService struct {
	settings *config.PaddleSettings
}

// NewPricingService creates a new instance of PricingService
func NewPricingService(settings *config.PaddleSettings) (pricing.PricingService, error) {
	return &pricingService{settings: settings}, nil
}

func (s *pricingService) ForHost(host string) *pricing.Pricing {
	ids := s.settings.PriceIDsFor(host)
	return &pricing.Pricing{
		Environment: s.settings.Environment(host),
		ClientToken: s.settings.ClientTokenFor(host),
		Plans: pricing.Catalog(
			pricing.PriceIDs{Monthly: ids.StarterMonthly, Yearly: ids.StarterYearly},
			pricing.PriceIDs{Monthly: ids.TeamMonthly, Yearly: ids.TeamYearly},
		),
	}
}
