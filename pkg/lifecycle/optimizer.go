package lifecycle

import "context"

// Optimizer keeps a populated taxonomy database in good shape. It removes
// name entries that lost their taxa and refreshes query planner
// statistics. It can run any number of times.
type Optimizer interface {
	Optimize(ctx context.Context) error
}
