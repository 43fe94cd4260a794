package iopopulate

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/gnames/gntnrs/internal/iograph"
	"github.com/gnames/gntnrs/pkg/db"
	"github.com/gnames/gntnrs/pkg/taxonomy"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// taxaRows sends rows of the taxa table in schema.Taxon column order.
func taxaRows(
	ctx context.Context,
	g iograph.Graph,
	taxa []taxonomy.Taxon,
	ch chan<- []any,
) error {
	seen := make(map[int64]struct{}, len(taxa))
	for i, t := range taxa {
		if _, ok := seen[t.ID]; ok {
			slog.Warn("Duplicate taxon id", "id", t.ID, "name", t.Name)
			continue
		}
		seen[t.ID] = struct{}{}

		row := []any{
			t.ID,
			t.ParentID,
			int64(i),
			t.Name,
			t.UniqueName,
			t.Rank,
			int16(t.Code),
			int64(t.Flags),
			int64(g.ContextMask(t.ID)),
			t.IsDeprecated,
		}
		if err := send(ctx, ch, row); err != nil {
			return err
		}
	}
	return nil
}

// entryRows sends rows of the name_entries table in schema.NameEntry
// column order. Identical entries are sent once.
func entryRows(
	ctx context.Context,
	backend string,
	entries []iograph.Entry,
	ch chan<- []any,
) error {
	seen := make(map[uuid.UUID]struct{}, len(entries))
	for i, e := range entries {
		id := entryID(e)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		var idVal any = id
		if backend != db.Postgres {
			idVal = id.String()
		}
		row := []any{
			idVal,
			int64(i),
			e.TaxonID,
			e.Name,
			e.NameLower(),
			utf8.RuneCountInString(e.NameLower()),
			e.IsSynonym,
			e.Deprecated,
			int32(e.Kinds),
			int64(e.Contexts),
		}
		if err := send(ctx, ch, row); err != nil {
			return err
		}
	}
	return nil
}

// entryID generates UUID v5 of an entry.
func entryID(e iograph.Entry) uuid.UUID {
	key := fmt.Sprintf("%d|%s|%t|%t", e.TaxonID, e.Name, e.IsSynonym, e.Deprecated)
	return gnuuid.New(key)
}

func send(ctx context.Context, ch chan<- []any, row []any) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case ch <- row:
		return nil
	}
}
