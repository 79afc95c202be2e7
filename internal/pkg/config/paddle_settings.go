package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Billing environment constants
const (
	EnvironmentProduction = "production"
	EnvironmentSandbox    = "sandbox"
)

// DefaultProductionHosts are the hostnames served with live billing credentials
var DefaultProductionHosts = []string{"genno.io", "www.genno.io"}

// PriceIDs holds the payment provider price identifiers of the paid plans
type PriceIDs struct {
	StarterMonthly string `mapstructure:"starter_monthly"`
	StarterYearly  string `mapstructure:"starter_yearly"`
	TeamMonthly    string `mapstructure:"team_monthly"`
	TeamYearly     string `mapstructure:"team_yearly"`
}

// PaddleSettings holds payment provider credentials for both environments
type PaddleSettings struct {
	WebhookSecret      string   `mapstructure:"webhook_secret"`
	ClientToken        string   `mapstructure:"client_token" validate:"omitempty,startswith=live_"`
	ClientTokenSandbox string   `mapstructure:"client_token_sandbox" validate:"omitempty,startswith=test_"`
	ProductionHosts    []string `mapstructure:"production_hosts"`
	ProductionPriceIDs PriceIDs `mapstructure:"production_price_ids"`
	SandboxPriceIDs    PriceIDs `mapstructure:"sandbox_price_ids"`
}

// Validate checks that all fields in PaddleSettings are valid
func (s *PaddleSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for PaddleSettings: %w", err)
	}

	return nil
}

// IsProductionHost reports whether host (with or without port) is a production hostname
func (s *PaddleSettings) IsProductionHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)

	hosts := s.ProductionHosts
	if len(hosts) == 0 {
		hosts = DefaultProductionHosts
	}
	for _, h := range hosts {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}

// Environment selects production only on a production host with a live token configured
func (s *PaddleSettings) Environment(host string) string {
	if s.IsProductionHost(host) && s.ClientToken != "" {
		return EnvironmentProduction
	}
	return EnvironmentSandbox
}

// ClientTokenFor returns the client token for a host, preferring the token of the host's
// environment and falling back to the other one.
func (s *PaddleSettings) ClientTokenFor(host string) string {
	if s.IsProductionHost(host) {
		if s.ClientToken != "" {
			return s.ClientToken
		}
		return s.ClientTokenSandbox
	}
	if s.ClientTokenSandbox != "" {
		return s.ClientTokenSandbox
	}
	return s.ClientToken
}

// PriceIDsFor returns the price identifiers of the host's environment
func (s *PaddleSettings) PriceIDsFor(host string) PriceIDs {
	if s.Environment(host) == EnvironmentProduction {
		return s.ProductionPriceIDs
	}
	return s.SandboxPriceIDs
}
