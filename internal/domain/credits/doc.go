// Package credits models the per-user credit balance that meters video conversions.
//
// Every user starts on the free plan. Paid plans reset the balance to a larger
// monthly allowance. Balance changes are recorded as transactions.
package credits
