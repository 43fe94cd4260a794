// Package iooptimize implements the Optimizer interface for taxonomy
// databases. This is an impure I/O package.
package iooptimize

import (
	"context"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/pkg/db"
	"github.com/gnames/gntnrs/pkg/lifecycle"
)

// optimizer implements the Optimizer interface.
type optimizer struct {
	operator db.Operator
}

// NewOptimizer creates a new Optimizer.
func NewOptimizer(op db.Operator) lifecycle.Optimizer {
	return &optimizer{
		operator: op,
	}
}

// Optimize runs two sequential steps:
//  1. Remove name entries of missing taxa
//  2. Run VACUUM and ANALYZE to reclaim space and update statistics
//
// Errors are returned to the CLI layer for user-friendly display
// via gn.PrintErrorMessage().
func (o *optimizer) Optimize(ctx context.Context) error {
	if o.operator.DB() == nil {
		return NotConnectedError()
	}

	slog.Info("Starting database optimization",
		"backend", o.operator.Backend(),
	)

	slog.Info("Step 1/2: Removing orphaned name entries")
	msg, err := removeOrphans(ctx, o)
	if err != nil {
		return err
	}
	gn.Info(msg)

	slog.Info("Step 2/2: Updating statistics")
	if err = vacuumAnalyze(ctx, o); err != nil {
		return err
	}

	slog.Info("Database optimization complete")
	return nil
}
