// Package models contains GORM database models for infrastructure layer.
// These models handle database persistence and are separated from domain entities
// so table layout can change without touching domain code.
package models

// All returns every model, in migration order
func All() []interface{} {
	return []interface{}{
		&BlogModel{},
		&UserCreditsModel{},
		&CreditTransactionModel{},
		&SubscriptionModel{},
		&VisitModel{},
		&ProfileModel{},
		&ConversionModel{},
	}
}
