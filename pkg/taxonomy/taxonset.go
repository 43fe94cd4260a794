package taxonomy

import (
	"context"
	"sync"
)

// TaxonSet is a set of taxa with a memoized LICA.
type TaxonSet struct {
	taxa []Taxon
	ids  map[int64]struct{}

	mu   sync.Mutex
	lica map[bool]Taxon
}

// NewTaxonSet creates a set from taxa, duplicates by ID are dropped.
func NewTaxonSet(taxa ...Taxon) *TaxonSet {
	res := &TaxonSet{
		ids:  make(map[int64]struct{}, len(taxa)),
		lica: make(map[bool]Taxon, 2),
	}
	for _, t := range taxa {
		res.add(t)
	}
	return res
}

func (s *TaxonSet) add(t Taxon) {
	if _, ok := s.ids[t.ID]; ok {
		return
	}
	s.ids[t.ID] = struct{}{}
	s.taxa = append(s.taxa, t)
}

// Len returns the number of taxa in the set.
func (s *TaxonSet) Len() int {
	return len(s.taxa)
}

// Taxa returns members in insertion order.
func (s *TaxonSet) Taxa() []Taxon {
	res := make([]Taxon, len(s.taxa))
	copy(res, s.taxa)
	return res
}

// Has checks membership by taxon ID.
func (s *TaxonSet) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// LICA returns the least inclusive common ancestor of the set members.
//
// The ancestor path P of the first member (the anchor) is walked to the
// root, P[0] being the anchor. Every other member climbs its own chain
// until it meets P at some index j. The LICA is P[max(j)], the first
// node of P that is shared by all members. The result is cached.
func (s *TaxonSet) LICA(
	ctx context.Context,
	g Graph,
	preferred bool,
) (Taxon, error) {
	if len(s.taxa) == 0 {
		return Taxon{}, EmptyInputError("LICA")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if res, ok := s.lica[preferred]; ok {
		return res, nil
	}

	if len(s.taxa) == 1 {
		s.lica[preferred] = s.taxa[0]
		return s.taxa[0], nil
	}

	path, err := Ancestors(ctx, g, s.taxa[0], preferred)
	if err != nil {
		return Taxon{}, err
	}
	pos := make(map[int64]int, len(path))
	for i, v := range path {
		pos[v.ID] = i
	}

	var maxJ int
	for _, t := range s.taxa[1:] {
		j, err := meetPath(ctx, g, t, pos, preferred)
		if err != nil {
			return Taxon{}, err
		}
		maxJ = max(maxJ, j)
		if maxJ == len(path)-1 {
			break
		}
	}

	res := path[maxJ]
	s.lica[preferred] = res
	return res, nil
}

// meetPath climbs from t until it reaches a node with known position.
func meetPath(
	ctx context.Context,
	g Graph,
	t Taxon,
	pos map[int64]int,
	preferred bool,
) (int, error) {
	visited := make(map[int64]struct{})
	cur := t
	for {
		if j, ok := pos[cur.ID]; ok {
			return j, nil
		}
		if _, seen := visited[cur.ID]; seen {
			return 0, HierarchyIntegrityError(cur.ID, "cycle in parent edges")
		}
		visited[cur.ID] = struct{}{}

		p, ok, err := g.Parent(ctx, cur, preferred)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, HierarchyIntegrityError(t.ID, "no common ancestor")
		}
		cur = p
	}
}
