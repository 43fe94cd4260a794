package iostore

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"strings"

	"github.com/gnames/gntnrs/internal/iograph"
	"github.com/gnames/gntnrs/pkg/taxonomy"
	"github.com/patrickmn/go-cache"
)

const descendantsCTE = `WITH RECURSIVE sub(id) AS (
		SELECT CAST(? AS BIGINT)
		UNION ALL
		SELECT t.id FROM taxa t JOIN sub ON t.parent_id = sub.id
		WHERE t.is_deprecated = FALSE
	)`

func (s *store) TaxonByID(
	ctx context.Context,
	id int64,
) (taxonomy.Taxon, error) {
	if v, ok := s.cache.Get(cacheKey(id)); ok {
		return v.(taxonomy.Taxon), nil
	}

	q := s.q(`SELECT ` + taxonCols + ` FROM taxa t WHERE t.id = ?`)
	res, err := scanTaxon(s.sqlDB.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return res, taxonomy.TaxonNotFoundError(id)
	}
	if err != nil {
		return res, QueryError("taxon", err)
	}
	s.cache.Set(cacheKey(id), res, cache.DefaultExpiration)
	return res, nil
}

func (s *store) Parent(
	ctx context.Context,
	t taxonomy.Taxon,
	_ bool,
) (taxonomy.Taxon, bool, error) {
	if t.ParentID == 0 {
		return taxonomy.Taxon{}, false, nil
	}
	p, err := s.TaxonByID(ctx, t.ParentID)
	if err != nil {
		return taxonomy.Taxon{}, false, err
	}
	return p, true, nil
}

func (s *store) Root(_ context.Context) (taxonomy.Taxon, error) {
	return s.root, nil
}

type anchorRef struct {
	taxon taxonomy.Taxon
	found bool
}

// ContextAnchor picks the anchor among stored taxa that carry the anchor
// name, the same way the in-memory graph does while loading.
func (s *store) ContextAnchor(
	ctx context.Context,
	c taxonomy.Context,
) (taxonomy.Taxon, bool, error) {
	if c.IsAllLife() {
		return s.root, true, nil
	}
	key := "anchor:" + c.Name
	if v, ok := s.cache.Get(key); ok {
		ref := v.(anchorRef)
		return ref.taxon, ref.found, nil
	}

	q := s.q(`SELECT ` + taxonCols + ` FROM taxa t
		WHERE lower(t.name) = ? AND t.is_deprecated = FALSE
		ORDER BY t.id`)
	rows, err := s.sqlDB.QueryContext(ctx, q, strings.ToLower(c.AnchorName))
	if err != nil {
		return taxonomy.Taxon{}, false, QueryError("context anchor", err)
	}
	defer rows.Close()

	var cands []taxonomy.Taxon
	for rows.Next() {
		t, err := scanTaxon(rows)
		if err != nil {
			return taxonomy.Taxon{}, false, QueryError("context anchor", err)
		}
		cands = append(cands, t)
	}
	if err = rows.Err(); err != nil {
		return taxonomy.Taxon{}, false, QueryError("context anchor", err)
	}

	var ref anchorRef
	ref.taxon, ref.found = taxonomy.ResolveAnchor(c, cands)
	s.cache.Set(key, ref, cache.NoExpiration)
	return ref.taxon, ref.found, nil
}

func (s *store) DescendantIDs(
	ctx context.Context,
	t taxonomy.Taxon,
) (map[int64]struct{}, error) {
	q := s.q(descendantsCTE + ` SELECT id FROM sub`)
	rows, err := s.sqlDB.QueryContext(ctx, q, t.ID)
	if err != nil {
		return nil, QueryError("descendants", err)
	}
	defer rows.Close()

	res := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, QueryError("descendants", err)
		}
		res[id] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("descendants", err)
	}
	return res, nil
}

func (s *store) Children(
	ctx context.Context,
	t taxonomy.Taxon,
) ([]taxonomy.Taxon, error) {
	q := s.q(`SELECT ` + taxonCols + ` FROM taxa t
		WHERE t.parent_id = ? AND t.is_deprecated = FALSE
		ORDER BY t.ord`)
	rows, err := s.sqlDB.QueryContext(ctx, q, t.ID)
	if err != nil {
		return nil, QueryError("children", err)
	}
	defer rows.Close()

	res := make([]taxonomy.Taxon, 0)
	for rows.Next() {
		c, err := scanTaxon(rows)
		if err != nil {
			return nil, QueryError("children", err)
		}
		res = append(res, c)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("children", err)
	}
	return res, nil
}

func (s *store) SpeciesByGenus(
	ctx context.Context,
	c taxonomy.Context,
	genus taxonomy.Taxon,
) ([]taxonomy.Taxon, error) {
	q := s.q(descendantsCTE + ` SELECT ` + taxonCols + `, t.contexts
		FROM taxa t JOIN sub ON t.id = sub.id
		WHERE t.id <> ?
		ORDER BY t.ord`)
	rows, err := s.sqlDB.QueryContext(ctx, q, genus.ID, genus.ID)
	if err != nil {
		return nil, QueryError("species", err)
	}
	defer rows.Close()

	bit := iograph.ContextBit(c)
	var res []taxonomy.Taxon
	for rows.Next() {
		var contexts int64
		t, err := scanTaxon(rows, &contexts)
		if err != nil {
			return nil, QueryError("species", err)
		}
		if t.IsSpecies() && !t.IsDubious() && uint64(contexts)&bit != 0 {
			res = append(res, t)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("species", err)
	}
	return res, nil
}

func (s *store) Metadata(_ context.Context) (map[string]any, error) {
	return maps.Clone(s.meta), nil
}
