package port

import "context"

// AllocationRunner is the inbound port for the allocation pass. The seed
// fixes the exploration shuffle so a run can be reproduced exactly.
type AllocationRunner interface {
	Run(ctx context.Context, seed int64) (*EngineRun, error)
}

// OptimizerRunner is the inbound port for the lifecycle optimizer sweep.
type OptimizerRunner interface {
	Sweep(ctx context.Context) (*EngineRun, error)
}
