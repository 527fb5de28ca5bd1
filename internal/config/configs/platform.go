package configs

import "time"

// Platform configures outbound ad-platform adapters. A platform with an
// empty account ID is not configured; its campaigns are skipped
// entirely rather than funded at zero.
type Platform struct {
	// GatewayURL is the base URL of the ad-gateway service that wraps
	// the platforms' wire protocols.
	GatewayURL string `env:"GATEWAY_URL" envDefault:"http://localhost:9090"`

	// SearchAccountID and SocialAccountID identify the engine's
	// accounts on each platform family. Empty disables the family.
	SearchAccountID string `env:"SEARCH_ACCOUNT_ID"`
	SocialAccountID string `env:"SOCIAL_ACCOUNT_ID"`

	// ChunkSize is the number of campaigns mutated per API batch;
	// PaceDelay is the sleep between batches. Both respect the
	// platforms' external rate limits.
	ChunkSize int           `env:"CHUNK_SIZE" envDefault:"10"`
	PaceDelay time.Duration `env:"PACE_DELAY" envDefault:"500ms"`

	// MaxRetries and RetryBaseDelay control backoff for transient
	// platform failures.
	MaxRetries     int           `env:"MAX_RETRIES" envDefault:"3"`
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY" envDefault:"1s"`
}
