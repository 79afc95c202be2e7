// Package persistence provides database repository implementations.
// It uses GORM to store blogs, credits, subscriptions, visits, profiles and
// conversions in PostgreSQL or SQLite. Balance changes run inside database
// transactions so a credit row and its transaction log never disagree.
package persistence
