package configs

import "time"

// Worker configures the recurring batch passes. Passes are discrete and
// idempotent; the runner guarantees a pass never overlaps another
// instance of itself.
type Worker struct {
	// Enabled starts the background runners; disable to drive passes
	// only through the HTTP trigger endpoints.
	Enabled bool `env:"ENABLED" envDefault:"true"`

	AllocationInterval time.Duration `env:"ALLOCATION_INTERVAL" envDefault:"24h"`
	OptimizerInterval  time.Duration `env:"OPTIMIZER_INTERVAL" envDefault:"6h"`
}
