// Package pricing describes the plans shown on the pricing page.
package pricing

import "github.com/genno-io/genno/internal/domain/credits"

// Price is a monthly and a yearly amount
type Price struct {
	Monthly float64
	Yearly  float64
}

// PriceIDs are the checkout price identifiers of one plan
type PriceIDs struct {
	Monthly string
	Yearly  string
}

// Plan is one entry of the pricing page
type Plan struct {
	ID          string
	Name        string
	Description string
	Price       Price
	Credits     int
	Features    []string
	PriceIDs    PriceIDs
	Popular     bool
	ButtonText  string
}

// Pricing is the pricing page payload for one environment
type Pricing struct {
	Environment string
	ClientToken string
	Plans       []Plan
}

// PricingService resolves the pricing page for the host a request came in on
type PricingService interface {
	ForHost(host string) *Pricing
}

// Catalog returns the plans with the given price ids; the free plan has none.
func Catalog(starter, team PriceIDs) []Plan {
	return []Plan{
		{
			ID:          credits.PlanFree,
			Name:        "Free",
			Description: "Perfect for trying out Genno",
			Credits:     credits.Allowance(credits.PlanFree),
			Features: []string{
				"3 blog posts per month",
				"Basic AI transcription",
				"Standard templates",
				"Community support",
				"Export to Markdown",
			},
			ButtonText: "Get Started Free",
		},
		{
			ID:          credits.PlanStarter,
			Name:        "Starter",
			Description: "Best for content creators",
			Price:       Price{Monthly: 9.99, Yearly: 95.9},
			Credits:     credits.Allowance(credits.PlanStarter),
			Features: []string{
				"100 blog posts per month",
				"Advanced AI transcription",
				"Custom templates",
				"Priority support",
				"All export formats",
				"SEO optimization",
				"Analytics dashboard",
			},
			PriceIDs:   starter,
			Popular:    true,
			ButtonText: "Start 14-Day Trial",
		},
		{
			ID:          credits.PlanTeam,
			Name:        "Team",
			Description: "For teams and agencies",
			Price:       Price{Monthly: 99.99, Yearly: 959.9},
			Credits:     credits.Allowance(credits.PlanTeam),
			Features: []string{
				"500 blog posts per month",
				"Premium AI transcription",
				"Unlimited custom templates",
				"24/7 premium support",
				"Team collaboration",
				"API access",
				"White-label options",
				"Advanced analytics",
			},
			PriceIDs:   team,
			ButtonText: "Start 14-Day Trial",
		},
	}
}
