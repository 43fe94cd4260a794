package taxonomy

import (
	"context"
	"strings"
)

// Subtree is a node of a tree induced by a set of taxa.
type Subtree struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Children []*Subtree `json:"children,omitempty"`
}

// IsTip is true for nodes without children.
func (st *Subtree) IsTip() bool {
	return len(st.Children) == 0
}

// Tips returns names of all tips in depth-first order.
func (st *Subtree) Tips() []string {
	if st.IsTip() {
		return []string{st.Name}
	}
	var res []string
	for _, c := range st.Children {
		res = append(res, c.Tips()...)
	}
	return res
}

// Newick renders the tree in Newick format, for example "(A,B)C;".
func (st *Subtree) Newick() string {
	var sb strings.Builder
	st.newick(&sb)
	sb.WriteByte(';')
	return sb.String()
}

func (st *Subtree) newick(sb *strings.Builder) {
	if !st.IsTip() {
		sb.WriteByte('(')
		for i, c := range st.Children {
			if i > 0 {
				sb.WriteByte(',')
			}
			c.newick(sb)
		}
		sb.WriteByte(')')
	}
	sb.WriteString(newickLabel(st.Name))
}

func newickLabel(s string) string {
	if !strings.ContainsAny(s, "()[]':;, \t") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// InducedSubtree builds the minimal tree that connects set members
// through the preferred hierarchy. It starts at the LICA. Nodes with a
// single child that leads to members are skipped unless they are members
// themselves. Nodes with two or more such children become internal
// nodes, and nodes with none become tips.
func (s *TaxonSet) InducedSubtree(
	ctx context.Context,
	g Graph,
) (*Subtree, error) {
	lica, err := s.LICA(ctx, g, true)
	if err != nil {
		return nil, err
	}
	return s.induce(ctx, g, lica)
}

func (s *TaxonSet) induce(
	ctx context.Context,
	g Graph,
	t Taxon,
) (*Subtree, error) {
	for {
		heavy, err := s.heavyChildren(ctx, g, t)
		if err != nil {
			return nil, err
		}

		if len(heavy) == 1 && !s.Has(t.ID) {
			t = heavy[0]
			continue
		}

		res := &Subtree{ID: t.ID, Name: t.DisplayName()}
		for _, h := range heavy {
			child, err := s.induce(ctx, g, h)
			if err != nil {
				return nil, err
			}
			res.Children = append(res.Children, child)
		}
		return res, nil
	}
}

func (s *TaxonSet) heavyChildren(
	ctx context.Context,
	g Graph,
	t Taxon,
) ([]Taxon, error) {
	children, err := g.Children(ctx, t)
	if err != nil {
		return nil, err
	}
	var res []Taxon
	for _, c := range children {
		desc, err := g.DescendantIDs(ctx, c)
		if err != nil {
			return nil, err
		}
		for id := range s.ids {
			if _, ok := desc[id]; ok {
				res = append(res, c)
				break
			}
		}
	}
	return res, nil
}
