package iooptimize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
)

// removeOrphans deletes name entries whose taxa are gone, for example
// after a failed or interrupted populate. Uses the LEFT OUTER JOIN
// pattern that works on PostgreSQL and SQLite.
func removeOrphans(ctx context.Context, opt *optimizer) (string, error) {
	query := `
DELETE FROM name_entries
WHERE id IN (
	SELECT ne.id
	FROM name_entries ne
	LEFT OUTER JOIN taxa t
		ON ne.taxon_id = t.id
	WHERE t.id IS NULL
)`

	res, err := opt.operator.DB().ExecContext(ctx, query)
	if err != nil {
		return "", OrphansError(err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return "", OrphansError(err)
	}
	slog.Info("Removed orphan name entries", "count", deleted)

	msg := "<em>No orphaned name entries found</em>"
	if deleted > 0 {
		msg = fmt.Sprintf(
			"<em>Removed %s orphaned name entries</em>",
			humanize.Comma(deleted),
		)
	}
	return msg, nil
}
