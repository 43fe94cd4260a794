// Package iopopulate implements Populator interface for importing
// a taxonomy into a SQL store (PostgreSQL or SQLite).
// This is an impure I/O package that builds the taxonomy graph and
// performs bulk inserts.
package iopopulate

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntnrs/internal/iograph"
	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/db"
	"github.com/gnames/gntnrs/pkg/lifecycle"
	"github.com/gnames/gntnrs/pkg/schema"
	"github.com/gnames/gntnrs/pkg/taxonomy"
)

// populator implements the Populator interface.
type populator struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a new Populator.
func New(cfg *config.Config, op db.Operator) lifecycle.Populator {
	return &populator{cfg: cfg, operator: op}
}

// Populate replaces the content of the store with the taxonomy. The
// taxonomy is first built in memory, so index kinds, contexts and
// inherited codes are computed exactly as for the memory backend.
func (p *populator) Populate(
	ctx context.Context,
	src taxonomy.Source,
) error {
	if p.operator.DB() == nil {
		return NotConnectedError()
	}

	startTime := time.Now()
	slog.Info("Starting database population",
		"backend", p.operator.Backend(),
		"taxa", len(src.Taxa),
	)

	g, err := iograph.New(src)
	if err != nil {
		return err
	}
	defer g.Close()

	if err = p.clear(ctx); err != nil {
		return err
	}

	taxa := append(g.Taxa(), g.DeprecatedTaxa()...)
	entries := g.Entries()

	w := newWriter(p.operator, p.cfg.Database.BatchSize, len(taxa)+len(entries))
	err = w.write(ctx, schema.Taxon{},
		func(ctx context.Context, ch chan<- []any) error {
			return taxaRows(ctx, g, taxa, ch)
		},
	)
	if err != nil {
		w.finish()
		return PopulateTaxaError(err)
	}

	err = w.write(ctx, schema.NameEntry{},
		func(ctx context.Context, ch chan<- []any) error {
			return entryRows(ctx, p.operator.Backend(), entries, ch)
		},
	)
	w.finish()
	if err != nil {
		return PopulateEntriesError(err)
	}

	if err = p.writeMetadata(ctx, g); err != nil {
		return PopulateMetadataError(err)
	}

	dur := time.Since(startTime)
	slog.Info("Population complete",
		"taxa", len(taxa),
		"entries", len(entries),
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info(`Population complete
Taxa: %s, name entries: %s.
Elapsed time: <em>%s</em>`,
		humanize.Comma(int64(len(taxa))),
		humanize.Comma(int64(len(entries))),
		gnfmt.TimeString(dur.Seconds()),
	)
	return nil
}

// clear removes previous content of the store.
func (p *populator) clear(ctx context.Context) error {
	for _, t := range schema.AllTables() {
		q := "DELETE FROM " + t.TableName()
		if p.operator.Backend() == db.Postgres {
			q = "TRUNCATE TABLE " + t.TableName()
		}
		if _, err := p.operator.DB().ExecContext(ctx, q); err != nil {
			return ClearTableError(t.TableName(), err)
		}
	}
	return nil
}

func (p *populator) writeMetadata(
	ctx context.Context,
	g iograph.Graph,
) error {
	meta, err := g.Metadata(ctx)
	if err != nil {
		return err
	}
	meta["backend"] = p.operator.Backend()
	meta["populated_at"] = time.Now().UTC().Format(time.RFC3339)

	enc := gnfmt.GNjson{}
	q := db.Rebind(
		p.operator.Backend(),
		"INSERT INTO metadata (key, value) VALUES (?, ?)",
	)
	for k, v := range meta {
		val, err := enc.Encode(v)
		if err != nil {
			return err
		}
		if _, err = p.operator.DB().ExecContext(ctx, q, k, string(val)); err != nil {
			return err
		}
	}
	return nil
}
