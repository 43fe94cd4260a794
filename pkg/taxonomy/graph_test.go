package taxonomy_test

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/gnames/gntnrs/pkg/taxonomy"
)

// treeGraph is a hand-built hierarchy for tests. Name index methods are
// not used by this package and return nothing.
type treeGraph struct {
	taxa     map[int64]taxonomy.Taxon
	children map[int64][]int64
	rootID   int64
}

func newTreeGraph(taxa ...taxonomy.Taxon) *treeGraph {
	res := &treeGraph{
		taxa:     make(map[int64]taxonomy.Taxon),
		children: make(map[int64][]int64),
	}
	for _, t := range taxa {
		res.taxa[t.ID] = t
		if t.ParentID == 0 {
			if res.rootID == 0 {
				res.rootID = t.ID
			}
			continue
		}
		res.children[t.ParentID] = append(res.children[t.ParentID], t.ID)
	}
	return res
}

//	life(1)
//	├── Eukaryota(2)
//	│   ├── Metazoa(3)
//	│   │   ├── Chordata(4)
//	│   │   │   ├── Mammalia(5)
//	│   │   │   │   └── Homo(6): sapiens(7), erectus(8)
//	│   │   │   └── Aves(9)
//	│   │   │       └── Passer(10): domesticus(11)
//	│   │   └── Insecta(17)
//	│   │       └── Aster(18): insectus(19)
//	│   └── Embryophyta(12)
//	│       └── Magnoliophyta(13)
//	│           └── Aster(14): alpinus(15)
//	└── Bacteria(16)
func sampleGraph() *treeGraph {
	return newTreeGraph(
		taxonomy.Taxon{ID: 1, Name: "life", Rank: "no rank"},
		taxonomy.Taxon{ID: 2, ParentID: 1, Name: "Eukaryota", Rank: "domain"},
		taxonomy.Taxon{ID: 3, ParentID: 2, Name: "Metazoa", Rank: "kingdom"},
		taxonomy.Taxon{ID: 4, ParentID: 3, Name: "Chordata", Rank: "phylum"},
		taxonomy.Taxon{ID: 5, ParentID: 4, Name: "Mammalia", Rank: "class"},
		taxonomy.Taxon{ID: 6, ParentID: 5, Name: "Homo", Rank: "genus"},
		taxonomy.Taxon{ID: 7, ParentID: 6, Name: "Homo sapiens", Rank: "species"},
		taxonomy.Taxon{ID: 8, ParentID: 6, Name: "Homo erectus", Rank: "species"},
		taxonomy.Taxon{ID: 9, ParentID: 4, Name: "Aves", Rank: "class"},
		taxonomy.Taxon{ID: 10, ParentID: 9, Name: "Passer", Rank: "genus"},
		taxonomy.Taxon{ID: 11, ParentID: 10, Name: "Passer domesticus", Rank: "species"},
		taxonomy.Taxon{ID: 12, ParentID: 2, Name: "Embryophyta", Rank: "no rank"},
		taxonomy.Taxon{ID: 13, ParentID: 12, Name: "Magnoliophyta", Rank: "phylum"},
		taxonomy.Taxon{ID: 14, ParentID: 13, Name: "Aster", Rank: "genus"},
		taxonomy.Taxon{ID: 15, ParentID: 14, Name: "Aster alpinus", Rank: "species"},
		taxonomy.Taxon{ID: 16, ParentID: 1, Name: "Bacteria", Rank: "domain"},
		taxonomy.Taxon{ID: 17, ParentID: 3, Name: "Insecta", Rank: "class"},
		taxonomy.Taxon{ID: 18, ParentID: 17, Name: "Aster", Rank: "genus"},
		taxonomy.Taxon{ID: 19, ParentID: 18, Name: "Aster insectus", Rank: "species"},
	)
}

func (g *treeGraph) get(id int64) taxonomy.Taxon {
	return g.taxa[id]
}

func (g *treeGraph) TaxonByID(_ context.Context, id int64) (taxonomy.Taxon, error) {
	t, ok := g.taxa[id]
	if !ok {
		return taxonomy.Taxon{}, taxonomy.TaxonNotFoundError(id)
	}
	return t, nil
}

func (g *treeGraph) Parent(
	_ context.Context, t taxonomy.Taxon, _ bool,
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

func (g *treeGraph) Root(_ context.Context) (taxonomy.Taxon, error) {
	return g.taxa[g.rootID], nil
}

func (g *treeGraph) ContextAnchor(
	_ context.Context, c taxonomy.Context,
) (taxonomy.Taxon, bool, error) {
	if c.IsAllLife() {
		return g.taxa[g.rootID], true, nil
	}
	var cands []taxonomy.Taxon
	for _, t := range g.taxa {
		if strings.EqualFold(t.Name, c.AnchorName) {
			cands = append(cands, t)
		}
	}
	slices.SortFunc(cands, func(a, b taxonomy.Taxon) int {
		return cmp.Compare(a.ID, b.ID)
	})
	t, ok := taxonomy.ResolveAnchor(c, cands)
	return t, ok, nil
}

func (g *treeGraph) ExactMatch(
	context.Context, taxonomy.Context, taxonomy.IndexKind, string,
) ([]taxonomy.NameMatch, error) {
	return nil, nil
}

func (g *treeGraph) PrefixMatch(
	context.Context, taxonomy.Context, taxonomy.IndexKind, string,
) ([]taxonomy.NameMatch, error) {
	return nil, nil
}

func (g *treeGraph) FuzzyMatch(
	context.Context, taxonomy.Context, taxonomy.IndexKind, string, float64,
) ([]taxonomy.NameMatch, error) {
	return nil, nil
}

func (g *treeGraph) DescendantIDs(
	_ context.Context, t taxonomy.Taxon,
) (map[int64]struct{}, error) {
	res := map[int64]struct{}{t.ID: {}}
	stack := []int64{t.ID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range g.children[id] {
			res[c] = struct{}{}
			stack = append(stack, c)
		}
	}
	return res, nil
}

func (g *treeGraph) Children(
	_ context.Context, t taxonomy.Taxon,
) ([]taxonomy.Taxon, error) {
	var res []taxonomy.Taxon
	for _, id := range g.children[t.ID] {
		res = append(res, g.taxa[id])
	}
	return res, nil
}

func (g *treeGraph) SpeciesByGenus(
	context.Context, taxonomy.Context, taxonomy.Taxon,
) ([]taxonomy.Taxon, error) {
	return nil, nil
}

func (g *treeGraph) Metadata(context.Context) (map[string]any, error) {
	return map[string]any{}, nil
}
