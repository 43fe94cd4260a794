// Package iostore implements taxonomy.Graph on top of a SQL store
// created by ioschema and filled by iopopulate. It works with PostgreSQL
// and SQLite through database/sql. Taxa are cached in memory, name
// queries go to SQL or, when a NameIndex is given, to the index built
// from stored name entries.
package iostore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntnrs/internal/iograph"
	"github.com/gnames/gntnrs/pkg/db"
	"github.com/gnames/gntnrs/pkg/taxonomy"
	"github.com/patrickmn/go-cache"
)

const taxonCols = `t.id, t.parent_id, t.name, t.unique_name, t.rank,
	t.code, t.flags, t.is_deprecated`

// Store is a taxonomy graph kept in a SQL database.
type Store interface {
	taxonomy.Graph

	// Close releases the name index and the cache. The database
	// connection belongs to the caller.
	Close() error
}

type store struct {
	backend string
	sqlDB   *sql.DB
	cache   *cache.Cache
	ttl     time.Duration
	index   iograph.NameIndex
	root    taxonomy.Taxon
	meta    map[string]any
}

// Option configures the store.
type Option func(*store)

// OptNameIndex moves name queries from SQL to the index. Stored name
// entries are loaded into the index when the store opens.
func OptNameIndex(idx iograph.NameIndex) Option {
	return func(s *store) {
		s.index = idx
	}
}

// OptCacheTTL sets how long taxa stay in the cache.
func OptCacheTTL(d time.Duration) Option {
	return func(s *store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// New opens a store on a connected operator. The store must be
// populated.
func New(
	ctx context.Context,
	op db.Operator,
	opts ...Option,
) (Store, error) {
	if op.DB() == nil {
		return nil, NotConnectedError()
	}
	res := &store{
		backend: op.Backend(),
		sqlDB:   op.DB(),
		ttl:     30 * time.Minute,
	}
	for _, opt := range opts {
		opt(res)
	}
	res.cache = cache.New(res.ttl, 2*res.ttl)

	var err error
	if res.root, err = res.loadRoot(ctx); err != nil {
		return nil, err
	}
	if res.meta, err = res.loadMetadata(ctx); err != nil {
		return nil, err
	}

	if res.index != nil {
		if err = res.buildIndex(ctx); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *store) q(query string) string {
	return db.Rebind(s.backend, query)
}

func (s *store) loadRoot(ctx context.Context) (taxonomy.Taxon, error) {
	q := s.q(`SELECT ` + taxonCols + ` FROM taxa t
		WHERE t.parent_id = 0 AND t.is_deprecated = FALSE
		ORDER BY t.ord LIMIT 1`)
	res, err := scanTaxon(s.sqlDB.QueryRowContext(ctx, q))
	if errors.Is(err, sql.ErrNoRows) {
		return res, EmptyStoreError(s.backend)
	}
	if err != nil {
		return res, QueryError("root", err)
	}
	return res, nil
}

func (s *store) loadMetadata(ctx context.Context) (map[string]any, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return nil, QueryError("metadata", err)
	}
	defer rows.Close()

	enc := gnfmt.GNjson{}
	res := make(map[string]any)
	for rows.Next() {
		var key, val string
		if err = rows.Scan(&key, &val); err != nil {
			return nil, QueryError("metadata", err)
		}
		var v any
		if err = enc.Decode([]byte(val), &v); err != nil {
			slog.Warn("Cannot decode metadata", "key", key, "error", err)
			continue
		}
		res[key] = v
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("metadata", err)
	}
	return res, nil
}

func (s *store) buildIndex(ctx context.Context) error {
	q := `SELECT taxon_id, name, is_synonym, deprecated, kinds, contexts
		FROM name_entries ORDER BY ord`
	rows, err := s.sqlDB.QueryContext(ctx, q)
	if err != nil {
		return QueryError("name entries", err)
	}
	defer rows.Close()

	var entries []iograph.Entry
	for rows.Next() {
		var e iograph.Entry
		var kinds, contexts int64
		err = rows.Scan(&e.TaxonID, &e.Name, &e.IsSynonym, &e.Deprecated,
			&kinds, &contexts)
		if err != nil {
			return QueryError("name entries", err)
		}
		e.Kinds = uint32(kinds)
		e.Contexts = uint64(contexts)
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return QueryError("name entries", err)
	}

	slog.Info("Loading name entries into index",
		"entries", humanize.Comma(int64(len(entries))))
	return s.index.Build(entries)
}

func (s *store) Close() error {
	s.cache.Flush()
	if s.index != nil {
		return s.index.Close()
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanTaxon scans taxonCols followed by extra columns.
func scanTaxon(row scanner, extra ...any) (taxonomy.Taxon, error) {
	return scanTaxonCols(row, nil, extra)
}

// scanTaxonAfter scans columns that precede taxonCols and then the taxon.
func scanTaxonAfter(row scanner, before ...any) (taxonomy.Taxon, error) {
	return scanTaxonCols(row, before, nil)
}

func scanTaxonCols(
	row scanner,
	before, after []any,
) (taxonomy.Taxon, error) {
	var res taxonomy.Taxon
	var uniqueName, rank sql.NullString
	var code, flags int64
	dest := append(before, &res.ID, &res.ParentID, &res.Name, &uniqueName,
		&rank, &code, &flags, &res.IsDeprecated)
	dest = append(dest, after...)
	if err := row.Scan(dest...); err != nil {
		return res, err
	}
	res.UniqueName = uniqueName.String
	res.Rank = rank.String
	res.Code = taxonomy.Nomenclature(code)
	res.Flags = taxonomy.Flags(flags)
	return res, nil
}

func cacheKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
