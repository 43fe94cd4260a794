package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntnrs/pkg/db"
)

// vacuumAnalyze reclaims space occupied by deleted rows and updates
// statistics used by the query planner.
//
// VACUUM cannot run inside a transaction block.
func vacuumAnalyze(ctx context.Context, opt *optimizer) error {
	timeStart := time.Now()

	var err error
	switch opt.operator.Backend() {
	case db.Postgres:
		_, err = opt.operator.Pool().Exec(ctx, "VACUUM ANALYZE")
	default:
		for _, q := range []string{"VACUUM", "ANALYZE"} {
			if _, err = opt.operator.DB().ExecContext(ctx, q); err != nil {
				break
			}
		}
	}
	if err != nil {
		slog.Error("Failed to run VACUUM ANALYZE", "error", err)
		return VacuumError(err)
	}

	slog.Info("VACUUM ANALYZE completed",
		"duration", gnfmt.TimeString(time.Since(timeStart).Seconds()),
	)
	return nil
}
