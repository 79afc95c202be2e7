package validators

import (
	"github.com/go-playground/validator/v10"
)

// Plan and billing values accepted on stored entities
var (
	planTypes     = map[string]bool{"free": true, "starter": true, "team": true}
	billingCycles = map[string]bool{"monthly": true, "yearly": true}
)

// PlanTypeValidation accepts the known subscription plans (free, starter or team).
func PlanTypeValidation(fl validator.FieldLevel) bool {
	return planTypes[fl.Field().String()]
}

// BillingCycleValidation accepts monthly or yearly billing cycles.
func BillingCycleValidation(fl validator.FieldLevel) bool {
	return billingCycles[fl.Field().String()]
}
