package iograph

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/gntnrs/pkg/taxonomy"
)

// load fills the arena, edge tables, context masks and name entries.
func (g *graph) load(src taxonomy.Source) error {
	order := make([]int64, 0, len(src.Taxa))
	for _, t := range src.Taxa {
		if _, ok := g.taxa[t.ID]; ok {
			slog.Warn("Duplicate taxon id", "id", t.ID, "name", t.Name)
			continue
		}
		g.taxa[t.ID] = t
		order = append(order, t.ID)
	}

	for _, id := range order {
		t := g.taxa[id]
		if t.ParentID == 0 {
			if g.rootID == 0 {
				g.rootID = id
				continue
			}
			slog.Warn("Extra root taxon", "id", id, "name", t.Name)
			continue
		}
		if _, ok := g.taxa[t.ParentID]; !ok {
			slog.Warn("Parent of taxon is unknown",
				"id", id, "name", t.Name, "parent", t.ParentID,
			)
			continue
		}
		g.children[t.ParentID] = append(g.children[t.ParentID], id)
	}
	if g.rootID == 0 {
		return NoRootError(len(order))
	}

	g.setContexts()

	for _, id := range order {
		t := g.taxa[id]
		g.addEntry(Entry{
			TaxonID:  id,
			Name:     t.Name,
			Kinds:    EntryKinds(t, false),
			Contexts: g.contextMask(id),
		})
	}

	for _, s := range src.Synonyms {
		owner, ok := g.taxa[s.TaxonID]
		if !ok {
			slog.Debug("Synonym of unknown taxon", "id", s.TaxonID, "name", s.Name)
			continue
		}
		g.addEntry(Entry{
			TaxonID:   owner.ID,
			Name:      s.Name,
			IsSynonym: true,
			Kinds:     EntryKinds(owner, true),
			Contexts:  g.contextMask(owner.ID),
		})
	}

	for _, t := range src.Deprecated {
		t.IsDeprecated = true
		g.deprecated[t.ID] = t
		g.addEntry(Entry{
			TaxonID:    t.ID,
			Name:       t.Name,
			Deprecated: true,
			Kinds:      EntryKinds(t, false),
			Contexts:   ContextBit(taxonomy.AllLife),
		})
	}
	return nil
}

func (g *graph) addEntry(e Entry) {
	if e.Kinds == 0 || strings.TrimSpace(e.Name) == "" {
		return
	}
	g.entries = append(g.entries, e)
}

// contextMask returns contexts of a taxon. Taxa that are not reachable
// from the root belong to AllLife only.
func (g *graph) contextMask(id int64) uint64 {
	if m, ok := g.contexts[id]; ok {
		return m
	}
	return ContextBit(taxonomy.AllLife)
}

// setContexts walks the hierarchy from the root, collecting contexts of
// anchors on the way down. Taxa without a nomenclatural code inherit the
// code of the closest context that has one.
func (g *graph) setContexts() {
	anchors := g.resolveAnchors()

	type frame struct {
		id   int64
		mask uint64
		code taxonomy.Nomenclature
	}
	stack := []frame{{
		id:   g.rootID,
		mask: ContextBit(taxonomy.AllLife),
		code: taxonomy.Undefined,
	}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, c := range anchors[f.id] {
			f.mask |= ContextBit(c)
			if c.Code != taxonomy.Undefined {
				f.code = c.Code
			}
		}
		g.contexts[f.id] = f.mask
		if t := g.taxa[f.id]; t.Code == taxonomy.Undefined && f.code != taxonomy.Undefined {
			t.Code = f.code
			g.taxa[f.id] = t
		}

		for _, cid := range g.children[f.id] {
			stack = append(stack, frame{id: cid, mask: f.mask, code: f.code})
		}
	}
}

// resolveAnchors finds anchor taxa of contexts by their names.
func (g *graph) resolveAnchors() map[int64][]taxonomy.Context {
	byName := make(map[string][]taxonomy.Taxon)
	for _, t := range g.taxa {
		key := strings.ToLower(t.Name)
		byName[key] = append(byName[key], t)
	}

	res := make(map[int64][]taxonomy.Context)
	for _, c := range taxonomy.AllContexts() {
		if c.IsAllLife() {
			continue
		}
		cands := byName[strings.ToLower(c.AnchorName)]
		anchor, ok := taxonomy.ResolveAnchor(c, sortByID(cands))
		if !ok {
			slog.Debug("Context anchor is not in taxonomy", "context", c.Name)
			continue
		}
		g.anchors[c.Name] = anchor.ID
		res[anchor.ID] = append(res[anchor.ID], c)
	}
	return res
}

func sortByID(ts []taxonomy.Taxon) []taxonomy.Taxon {
	slices.SortFunc(ts, func(a, b taxonomy.Taxon) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return ts
}
