package tnrs

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/gnames/gntnrs/pkg/strsim"
	"github.com/gnames/gntnrs/pkg/taxonomy"
)

const (
	// DefaultMinPrefixLength is the shortest query for prefix lookups.
	DefaultMinPrefixLength = 5

	minQueryLength = 2
)

// PrefixQuery answers autocomplete requests for a single, possibly
// incomplete, name. Cheap lookups go first, fuzzy search is the last
// resort.
type PrefixQuery struct {
	g               taxonomy.Graph
	minPrefixLength int
}

// NewPrefixQuery creates an autocomplete query. A non-positive
// minPrefixLength sets the default.
func NewPrefixQuery(g taxonomy.Graph, minPrefixLength int) *PrefixQuery {
	if minPrefixLength <= 0 {
		minPrefixLength = DefaultMinPrefixLength
	}
	return &PrefixQuery{g: g, minPrefixLength: minPrefixLength}
}

// prefixRun keeps the state of one autocomplete request.
type prefixRun struct {
	*PrefixQuery
	c        taxonomy.Context
	query    string
	matches  *MatchSet
	seen     map[int64]struct{}
	homonyms map[string]bool
}

// Run finds taxa for the query within the context. Queries shorter than
// two characters return an empty set. Higher taxa come first in the
// result.
func (p *PrefixQuery) Run(
	ctx context.Context,
	query string,
	c taxonomy.Context,
) (*MatchSet, error) {
	r := &prefixRun{
		PrefixQuery: p,
		c:           c,
		query:       strings.ToLower(strings.TrimSpace(query)),
		matches:     NewMatchSet(),
		seen:        make(map[int64]struct{}),
		homonyms:    make(map[string]bool),
	}
	if utf8.RuneCountInString(r.query) < minQueryLength {
		return r.matches, nil
	}

	var err error
	if strings.Contains(r.query, " ") {
		err = r.runWords(ctx)
	} else {
		err = r.runWord(ctx)
	}
	if err != nil {
		return nil, err
	}
	r.matches.SortForAutocomplete()
	return r.matches, nil
}

func (r *prefixRun) runWords(ctx context.Context) error {
	genus, epithet, _ := strings.Cut(r.query, " ")
	epithet = strings.TrimSpace(epithet)

	if err := r.exact(ctx, taxonomy.PrefNameSpecies, r.query); err != nil {
		return err
	}
	if r.matches.Len() > 0 {
		return nil
	}

	genera, err := r.g.ExactMatch(ctx, r.c, taxonomy.PrefNameGenera, genus)
	if err != nil {
		return err
	}
	if len(genera) > 0 {
		return r.speciesOf(ctx, genera, epithet)
	}

	if err = r.exact(ctx, taxonomy.PrefSynonym, r.query); err != nil {
		return err
	}
	if err = r.exact(ctx, taxonomy.PrefNameHigher, r.query); err != nil {
		return err
	}
	if r.matches.Len() > 0 {
		return nil
	}

	err = r.prefix(ctx, taxonomy.PrefNameOrSynonymHigher)
	if err != nil || r.matches.Len() > 0 {
		return err
	}

	return r.fuzzy(ctx, taxonomy.PrefNameOrSynonym)
}

func (r *prefixRun) runWord(ctx context.Context) error {
	err := r.exact(ctx, taxonomy.PrefNameOrSynonymHigher, r.query)
	if err != nil || r.matches.Len() > 0 {
		return err
	}

	err = r.prefix(ctx, taxonomy.PrefNameHigher)
	if err != nil || r.matches.Len() > 0 {
		return err
	}

	err = r.prefix(ctx, taxonomy.PrefSynonym)
	if err != nil || r.matches.Len() > 0 {
		return err
	}

	return r.fuzzy(ctx, taxonomy.PrefNameOrSynonymHigher)
}

// speciesOf adds species of the genera whose epithets start with the
// given prefix.
func (r *prefixRun) speciesOf(
	ctx context.Context,
	genera []taxonomy.NameMatch,
	epithet string,
) error {
	for _, genus := range genera {
		species, err := r.g.SpeciesByGenus(ctx, r.c, genus.Taxon)
		if err != nil {
			return err
		}
		gLen := len(strings.ToLower(genus.Name))
		for _, sp := range species {
			name := strings.ToLower(sp.Name)
			if len(name) <= gLen+1 {
				continue
			}
			if !strings.HasPrefix(name[gLen+1:], epithet) {
				continue
			}
			nm := taxonomy.NameMatch{Taxon: sp, MatchedName: sp.Name}
			homonym, err := r.isHomonym(ctx, sp.Name)
			if err != nil {
				return err
			}
			h := NewTaxonHit(nm, r.query)
			h.IsHomonym = homonym
			h.Score = PerfectScore
			r.add(h)
		}
	}
	return nil
}

func (r *prefixRun) exact(
	ctx context.Context,
	kind taxonomy.IndexKind,
	name string,
) error {
	nms, err := r.g.ExactMatch(ctx, r.c, kind, name)
	if err != nil {
		return err
	}
	isHomonym := len(nms) > 1
	for _, nm := range nms {
		h := NewTaxonHit(nm, r.query)
		h.IsHomonym = isHomonym
		h.IsPerfectMatch = !isHomonym && !nm.IsSynonym
		h.Score = PerfectScore
		r.add(h)
	}
	return nil
}

func (r *prefixRun) prefix(ctx context.Context, kind taxonomy.IndexKind) error {
	if utf8.RuneCountInString(r.query) < r.minPrefixLength {
		return nil
	}
	nms, err := r.g.PrefixMatch(ctx, r.c, kind, r.query)
	if err != nil {
		return err
	}
	for _, nm := range nms {
		if r.has(nm.ID) {
			continue
		}
		homonym, err := r.isHomonym(ctx, nm.Name)
		if err != nil {
			return err
		}
		h := NewTaxonHit(nm, r.query)
		h.IsHomonym = homonym
		h.Score = PerfectScore
		r.add(h)
	}
	return nil
}

func (r *prefixRun) fuzzy(ctx context.Context, kind taxonomy.IndexKind) error {
	minIdentity := strsim.MinIdentity(r.query)
	if minIdentity <= 0 {
		return nil
	}
	nms, err := r.g.FuzzyMatch(ctx, r.c, kind, r.query, minIdentity)
	if err != nil {
		return err
	}
	for _, nm := range nms {
		if r.has(nm.ID) {
			continue
		}
		homonym, err := r.isHomonym(ctx, nm.Name)
		if err != nil {
			return err
		}
		matched := strings.ToLower(nm.MatchedName)
		if matched == "" {
			matched = strings.ToLower(nm.Name)
		}
		h := NewTaxonHit(nm, r.query)
		h.IsHomonym = homonym
		h.IsApprox = true
		h.EditDistance = strsim.Distance(r.query, matched)
		h.Score = strsim.Similarity(r.query, matched)
		r.add(h)
	}
	return nil
}

// isHomonym checks if a name has several taxa in the context. Answers
// are memoized for the duration of the request.
func (r *prefixRun) isHomonym(ctx context.Context, name string) (bool, error) {
	key := strings.ToLower(name)
	if res, ok := r.homonyms[key]; ok {
		return res, nil
	}
	nms, err := r.g.ExactMatch(ctx, r.c, taxonomy.PrefName, name)
	if err != nil {
		return false, err
	}
	res := len(nms) > 1
	r.homonyms[key] = res
	return res, nil
}

func (r *prefixRun) has(id int64) bool {
	_, ok := r.seen[id]
	return ok
}

// add appends a hit unless its taxon is already matched.
func (r *prefixRun) add(h Hit) {
	if r.has(h.Taxon.ID) {
		return
	}
	r.seen[h.Taxon.ID] = struct{}{}
	r.matches.Add(h)
}
