package iostore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gnames/gntnrs/internal/iograph"
	"github.com/gnames/gntnrs/pkg/strsim"
	"github.com/gnames/gntnrs/pkg/taxonomy"
)

const entryQuery = `SELECT e.name, e.is_synonym, e.name_lower, ` + taxonCols + `
	FROM name_entries e JOIN taxa t ON t.id = e.taxon_id
	WHERE (e.kinds & ?) <> 0 AND (e.contexts & ?) <> 0 AND `

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *store) ExactMatch(
	ctx context.Context,
	c taxonomy.Context,
	kind taxonomy.IndexKind,
	name string,
) ([]taxonomy.NameMatch, error) {
	q := iograph.NewQuery(c, kind, name)
	if s.index != nil {
		es, err := s.index.Exact(ctx, q)
		return s.indexMatches(ctx, q, es, err)
	}
	if q.Text == "" {
		return nil, nil
	}
	sqlQ := entryQuery + `e.name_lower = ? ORDER BY e.ord LIMIT ?`
	res, err := s.selectMatches(ctx, q, sqlQ, strings.ToLower(q.Text), iograph.MaxHits)
	return matches(res), wrapErr(q, err)
}

func (s *store) PrefixMatch(
	ctx context.Context,
	c taxonomy.Context,
	kind taxonomy.IndexKind,
	prefix string,
) ([]taxonomy.NameMatch, error) {
	q := iograph.NewQuery(c, kind, prefix)
	if s.index != nil {
		es, err := s.index.Prefix(ctx, q)
		return s.indexMatches(ctx, q, es, err)
	}
	if q.Text == "" {
		return nil, nil
	}
	pattern := likeEscaper.Replace(strings.ToLower(q.Text)) + "%"
	sqlQ := entryQuery + `e.name_lower LIKE ? ESCAPE '\'
		ORDER BY e.name_lower, e.ord LIMIT ?`
	res, err := s.selectMatches(ctx, q, sqlQ, pattern, iograph.MaxHits)
	return matches(res), wrapErr(q, err)
}

func (s *store) FuzzyMatch(
	ctx context.Context,
	c taxonomy.Context,
	kind taxonomy.IndexKind,
	name string,
	minIdentity float64,
) ([]taxonomy.NameMatch, error) {
	q := iograph.NewQuery(c, kind, name)
	if s.index != nil {
		es, err := s.index.Fuzzy(ctx, q, minIdentity)
		return s.indexMatches(ctx, q, es, err)
	}
	if q.Text == "" {
		return nil, nil
	}

	term := strings.ToLower(q.Text)
	l := utf8.RuneCountInString(term)
	edits := strsim.MaxEdits(term)
	sqlQ := entryQuery + `e.name_length BETWEEN ? AND ?
		ORDER BY e.name_lower, e.ord`
	hits, err := s.selectMatches(ctx, q, sqlQ, l-edits, l+edits)
	if err != nil {
		return nil, wrapErr(q, err)
	}

	type scored struct {
		match found
		sim   float64
	}
	var cands []scored
	for _, f := range hits {
		if sim := strsim.Similarity(term, f.nameLower); sim > minIdentity {
			cands = append(cands, scored{match: f, sim: sim})
		}
	}
	slices.SortStableFunc(cands, func(a, b scored) int {
		return cmp.Compare(b.sim, a.sim)
	})
	if len(cands) > iograph.MaxHits {
		cands = cands[:iograph.MaxHits]
	}

	res := make([]found, len(cands))
	for i := range cands {
		res[i] = cands[i].match
	}
	return matches(res), nil
}

// found is a row of a name query.
type found struct {
	taxonomy.NameMatch
	nameLower string
}

// selectMatches runs a name query. The query must start with entryQuery,
// its kind and context placeholders are filled from q.
func (s *store) selectMatches(
	ctx context.Context,
	q iograph.Query,
	sqlQ string,
	args ...any,
) ([]found, error) {
	args = append([]any{
		int64(iograph.KindBit(q.Kind)),
		int64(iograph.ContextBit(q.Context)),
	}, args...)

	rows, err := s.sqlDB.QueryContext(ctx, s.q(sqlQ), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []found
	for rows.Next() {
		var f found
		t, err := scanTaxonAfter(rows, &f.MatchedName, &f.IsSynonym, &f.nameLower)
		if err != nil {
			return nil, err
		}
		f.Taxon = t
		res = append(res, f)
	}
	return res, rows.Err()
}

// indexMatches converts entries found by the name index to matches.
func (s *store) indexMatches(
	ctx context.Context,
	q iograph.Query,
	es []iograph.Entry,
	err error,
) ([]taxonomy.NameMatch, error) {
	if err != nil {
		return nil, wrapErr(q, err)
	}
	res := make([]taxonomy.NameMatch, 0, len(es))
	for _, e := range es {
		t, err := s.TaxonByID(ctx, e.TaxonID)
		if err != nil {
			return nil, wrapErr(q, err)
		}
		res = append(res, taxonomy.NameMatch{
			Taxon:       t,
			MatchedName: e.Name,
			IsSynonym:   e.IsSynonym,
		})
	}
	return res, nil
}

func matches(ff []found) []taxonomy.NameMatch {
	res := make([]taxonomy.NameMatch, len(ff))
	for i := range ff {
		res[i] = ff[i].NameMatch
	}
	return res
}

func wrapErr(q iograph.Query, err error) error {
	if err == nil {
		return nil
	}
	return taxonomy.IndexQueryError(
		q.Kind.IndexName(q.Context), q.Text, fmt.Errorf("sql store: %w", err),
	)
}
