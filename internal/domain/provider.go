package domain

import "time"

// Provider holds per-network-provider configuration. CommissionPercent is
// kept as the raw stored string; the billing package parses it and falls back
// to the configured default when it is absent or unparseable, so a bad rate
// never blocks a payment.
type Provider struct {
	Tag               string    `json:"tag"` // e.g. "BSNL", "RMAX"
	Name              string    `json:"name"`
	CommissionPercent string    `json:"commission_percent"`
	UpdatedAt         time.Time `json:"updated_at"`
}
