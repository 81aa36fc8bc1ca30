package reconcile

import "time"

// Config holds configuration for scheduled reconciliation and the read cache.
type Config struct {
	// Enabled turns on the background scheduler in the start command.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// PollInterval is the period between scheduled passes.
	PollInterval time.Duration `mapstructure:"poll_interval" default:"1m"`
	// RateLimitInterval is the minimum spacing between destination writes.
	RateLimitInterval time.Duration `mapstructure:"rate_limit_interval" default:"250ms"`
	// CacheTTL is how long GET /cards serves a snapshot before refreshing it.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"1m"`
	// IdentityField selects the card field matched against destination rows (id, card_url).
	IdentityField string `mapstructure:"identity_field" default:"id"`
}
