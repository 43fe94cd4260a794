package taxonomy

import (
	"context"
	"math"
)

// Ancestors returns the taxon followed by its ancestors up to the root.
func Ancestors(
	ctx context.Context,
	g Graph,
	t Taxon,
	preferred bool,
) ([]Taxon, error) {
	res := []Taxon{t}
	visited := map[int64]struct{}{t.ID: {}}
	cur := t
	for {
		p, ok, err := g.Parent(ctx, cur, preferred)
		if err != nil {
			return nil, err
		}
		if !ok {
			return res, nil
		}
		if _, seen := visited[p.ID]; seen {
			return nil, HierarchyIntegrityError(p.ID, "cycle in parent edges")
		}
		visited[p.ID] = struct{}{}
		res = append(res, p)
		cur = p
	}
}

// LeastInclusiveContext returns the deepest context whose anchor taxon is
// the taxon itself or one of its preferred ancestors. Anchors are compared
// by id. AllLife is returned
// when no other context fits.
func LeastInclusiveContext(
	ctx context.Context,
	g Graph,
	t Taxon,
) (Context, error) {
	chain, err := Ancestors(ctx, g, t, true)
	if err != nil {
		return AllLife, err
	}
	for _, node := range chain {
		for _, c := range ContextsAnchoredAt(node.Name) {
			anchor, ok, err := g.ContextAnchor(ctx, c)
			if err != nil {
				return AllLife, err
			}
			// a homonym of the anchor name does not open the context
			if ok && anchor.ID == node.ID {
				return c, nil
			}
		}
	}
	return AllLife, nil
}

// InternodalDistance counts preferred edges from a to b through their
// most recent common ancestor.
func InternodalDistance(
	ctx context.Context,
	g Graph,
	a, b Taxon,
) (int, error) {
	if a.ID == b.ID {
		return 0, nil
	}
	chainA, err := Ancestors(ctx, g, a, true)
	if err != nil {
		return 0, err
	}
	pos := make(map[int64]int, len(chainA))
	for i, v := range chainA {
		pos[v.ID] = i
	}
	chainB, err := Ancestors(ctx, g, b, true)
	if err != nil {
		return 0, err
	}
	for i, v := range chainB {
		if j, ok := pos[v.ID]; ok {
			return i + j, nil
		}
	}
	return 0, HierarchyIntegrityError(b.ID, "no common ancestor")
}

// DistanceDecay is the factor applied to the score of a hit found at
// the given internodal distance from the working LICA. It is 1/ln(d)
// capped at 1, so distances up to 2 are not penalized.
func DistanceDecay(d int) float64 {
	if d <= 2 {
		return 1
	}
	return min(1, 1/math.Log(float64(d)))
}

// IsPreferredDescendant is true when anc is t or one of its preferred
// ancestors.
func IsPreferredDescendant(
	ctx context.Context,
	g Graph,
	t, anc Taxon,
) (bool, error) {
	chain, err := Ancestors(ctx, g, t, true)
	if err != nil {
		return false, err
	}
	for _, v := range chain {
		if v.ID == anc.ID {
			return true, nil
		}
	}
	return false, nil
}
