// Package iograph implements taxonomy.Graph in memory. Taxa live in an
// arena keyed by id, edges are kept as id tables and names are searched
// through a pluggable NameIndex.
package iograph

import (
	"cmp"
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gntnrs/pkg/taxonomy"
)

type graph struct {
	taxa       map[int64]taxonomy.Taxon
	deprecated map[int64]taxonomy.Taxon
	children   map[int64][]int64
	contexts   map[int64]uint64
	anchors    map[string]int64
	rootID     int64
	entries    []Entry
	index      NameIndex
	meta       map[string]any
}

// Option configures the graph.
type Option func(*graph)

// OptNameIndex replaces the default in-memory name index.
func OptNameIndex(idx NameIndex) Option {
	return func(g *graph) {
		g.index = idx
	}
}

// Graph is taxonomy.Graph that also exposes its content for populating
// persistent stores.
type Graph interface {
	taxonomy.Graph

	// Taxa returns taxa of the preferred hierarchy in parent-first order.
	Taxa() []taxonomy.Taxon

	// DeprecatedTaxa returns deprecated taxa.
	DeprecatedTaxa() []taxonomy.Taxon

	// Entries returns indexed name strings.
	Entries() []Entry

	// ContextMask returns the bit mask of contexts that contain a taxon.
	ContextMask(id int64) uint64

	// Close releases the name index.
	Close() error
}

// New builds a graph from a taxonomy source. The source must contain a
// single root. Taxa with unknown parents are attached to nothing and are
// reported in logs.
func New(src taxonomy.Source, opts ...Option) (Graph, error) {
	res := &graph{
		taxa:       make(map[int64]taxonomy.Taxon, len(src.Taxa)),
		deprecated: make(map[int64]taxonomy.Taxon, len(src.Deprecated)),
		children:   make(map[int64][]int64),
		contexts:   make(map[int64]uint64, len(src.Taxa)),
		anchors:    make(map[string]int64),
		meta:       maps.Clone(src.Metadata),
	}
	for _, opt := range opts {
		opt(res)
	}
	if res.index == nil {
		res.index = NewMemIndex()
	}
	if res.meta == nil {
		res.meta = make(map[string]any)
	}

	if err := res.load(src); err != nil {
		return nil, err
	}
	if err := res.index.Build(res.entries); err != nil {
		return nil, err
	}
	res.meta["taxa"] = len(res.taxa)
	res.meta["synonyms"] = len(src.Synonyms)
	res.meta["deprecated"] = len(res.deprecated)
	return res, nil
}

func (g *graph) TaxonByID(_ context.Context, id int64) (taxonomy.Taxon, error) {
	if t, ok := g.taxa[id]; ok {
		return t, nil
	}
	if t, ok := g.deprecated[id]; ok {
		return t, nil
	}
	return taxonomy.Taxon{}, taxonomy.TaxonNotFoundError(id)
}

func (g *graph) ContextAnchor(
	_ context.Context,
	c taxonomy.Context,
) (taxonomy.Taxon, bool, error) {
	if c.IsAllLife() {
		t, ok := g.taxa[g.rootID]
		return t, ok, nil
	}
	id, ok := g.anchors[c.Name]
	if !ok {
		return taxonomy.Taxon{}, false, nil
	}
	return g.taxa[id], true, nil
}

func (g *graph) Parent(
	_ context.Context,
	t taxonomy.Taxon,
	_ bool,
) (taxonomy.Taxon, bool, error) {
	if t.ParentID == 0 {
		return taxonomy.Taxon{}, false, nil
	}
	p, ok := g.taxa[t.ParentID]
	if !ok {
		return taxonomy.Taxon{}, false, taxonomy.TaxonNotFoundError(t.ParentID)
	}
	return p, true, nil
}

func (g *graph) Root(_ context.Context) (taxonomy.Taxon, error) {
	if t, ok := g.taxa[g.rootID]; ok {
		return t, nil
	}
	return taxonomy.Taxon{}, taxonomy.TaxonNotFoundError(g.rootID)
}

func (g *graph) ExactMatch(
	ctx context.Context,
	c taxonomy.Context,
	kind taxonomy.IndexKind,
	name string,
) ([]taxonomy.NameMatch, error) {
	q := NewQuery(c, kind, name)
	es, err := g.index.Exact(ctx, q)
	if err != nil {
		return nil, taxonomy.IndexQueryError(kind.IndexName(q.Context), name, err)
	}
	return g.nameMatches(es), nil
}

func (g *graph) PrefixMatch(
	ctx context.Context,
	c taxonomy.Context,
	kind taxonomy.IndexKind,
	prefix string,
) ([]taxonomy.NameMatch, error) {
	q := NewQuery(c, kind, prefix)
	es, err := g.index.Prefix(ctx, q)
	if err != nil {
		return nil, taxonomy.IndexQueryError(kind.IndexName(q.Context), prefix, err)
	}
	return g.nameMatches(es), nil
}

func (g *graph) FuzzyMatch(
	ctx context.Context,
	c taxonomy.Context,
	kind taxonomy.IndexKind,
	name string,
	minIdentity float64,
) ([]taxonomy.NameMatch, error) {
	q := NewQuery(c, kind, name)
	es, err := g.index.Fuzzy(ctx, q, minIdentity)
	if err != nil {
		return nil, taxonomy.IndexQueryError(kind.IndexName(q.Context), name, err)
	}
	return g.nameMatches(es), nil
}

func (g *graph) DescendantIDs(
	_ context.Context,
	t taxonomy.Taxon,
) (map[int64]struct{}, error) {
	res := map[int64]struct{}{t.ID: {}}
	stack := []int64{t.ID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range g.children[id] {
			if _, ok := res[c]; ok {
				continue
			}
			res[c] = struct{}{}
			stack = append(stack, c)
		}
	}
	return res, nil
}

func (g *graph) Children(
	_ context.Context,
	t taxonomy.Taxon,
) ([]taxonomy.Taxon, error) {
	ids := g.children[t.ID]
	res := make([]taxonomy.Taxon, 0, len(ids))
	for _, id := range ids {
		res = append(res, g.taxa[id])
	}
	return res, nil
}

func (g *graph) SpeciesByGenus(
	_ context.Context,
	c taxonomy.Context,
	genus taxonomy.Taxon,
) ([]taxonomy.Taxon, error) {
	bit := ContextBit(c)
	var res []taxonomy.Taxon
	stack := []int64{genus.ID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, cid := range g.children[id] {
			t := g.taxa[cid]
			if t.IsSpecies() && !t.IsDubious() && g.contexts[cid]&bit != 0 {
				res = append(res, t)
			}
			stack = append(stack, cid)
		}
	}
	return res, nil
}

func (g *graph) Metadata(_ context.Context) (map[string]any, error) {
	return maps.Clone(g.meta), nil
}

func (g *graph) Taxa() []taxonomy.Taxon {
	res := make([]taxonomy.Taxon, 0, len(g.taxa))
	stack := []int64{g.rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t, ok := g.taxa[id]
		if !ok {
			continue
		}
		res = append(res, t)
		kids := g.children[id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return res
}

func (g *graph) DeprecatedTaxa() []taxonomy.Taxon {
	res := make([]taxonomy.Taxon, 0, len(g.deprecated))
	for _, t := range g.deprecated {
		res = append(res, t)
	}
	slices.SortFunc(res, func(a, b taxonomy.Taxon) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return res
}

func (g *graph) Entries() []Entry {
	return g.entries
}

func (g *graph) ContextMask(id int64) uint64 {
	return g.contextMask(id)
}

func (g *graph) Close() error {
	return g.index.Close()
}

func (g *graph) nameMatches(es []Entry) []taxonomy.NameMatch {
	res := make([]taxonomy.NameMatch, 0, len(es))
	for _, e := range es {
		t, ok := g.taxa[e.TaxonID]
		if e.Deprecated {
			t, ok = g.deprecated[e.TaxonID]
		}
		if !ok {
			slog.Warn("Index entry without taxon", "id", e.TaxonID, "name", e.Name)
			continue
		}
		res = append(res, taxonomy.NameMatch{
			Taxon:       t,
			MatchedName: e.Name,
			IsSynonym:   e.IsSynonym,
		})
	}
	return res
}

// NewQuery builds an index query. Deprecated taxa are never scoped.
func NewQuery(c taxonomy.Context, kind taxonomy.IndexKind, text string) Query {
	if kind == taxonomy.Deprecated {
		c = taxonomy.AllLife
	}
	return Query{Kind: kind, Context: c, Text: strings.TrimSpace(text)}
}
