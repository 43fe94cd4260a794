package taxonomy

import (
	"strings"
)

// ContextGroup is a thematic group of taxonomic contexts.
type ContextGroup string

const (
	GroupLife     ContextGroup = "LIFE"
	GroupMicrobes ContextGroup = "MICROBES"
	GroupAnimals  ContextGroup = "ANIMALS"
	GroupFungi    ContextGroup = "FUNGI"
	GroupPlants   ContextGroup = "PLANTS"
)

// Groups lists context groups in display order.
var Groups = []ContextGroup{
	GroupLife, GroupMicrobes, GroupAnimals, GroupFungi, GroupPlants,
}

// Context is a named scope of the taxonomy. It selects the subtree under
// its anchor taxon for scoped index queries.
type Context struct {
	// Name is a human-readable name, for example "Flowering plants".
	Name string `json:"name"`
	// Group is the thematic group of the context.
	Group ContextGroup `json:"group"`
	// Suffix is appended to index names to make context-specific
	// indexes.
	Suffix string `json:"suffix"`
	// AnchorName is the name of the taxon at the root of the context.
	AnchorName string `json:"anchorName"`
	// AnchorOTTID is the OTT id of the anchor taxon.
	AnchorOTTID int64 `json:"anchorOttId"`
	// Code is the nomenclature governing names in the context.
	Code Nomenclature `json:"code"`
}

// IsAllLife is true for the root context.
func (c Context) IsAllLife() bool {
	return c.Name == AllLife.Name
}

// AllLife is the root context, every taxon belongs to it.
var AllLife = Context{"All life", GroupLife, "", "life", 805080, Undefined}

// contexts is the static context table. Order is significant: when two
// contexts anchor at the same taxon the earlier one wins.
var contexts = []Context{
	AllLife,

	{"Bacteria", GroupMicrobes, "Bacteria", "Bacteria", 844192, ICNP},
	{"SAR group", GroupMicrobes, "SAR", "SAR", 5246039, Undefined},
	{"Archaea", GroupMicrobes, "Archaea", "Archaea", 996421, ICNP},
	{"Excavata", GroupMicrobes, "Excavata", "Excavata", 2927065, Undefined},
	{"Amoebozoa", GroupMicrobes, "Amoebae", "Amoebozoa", 1064655, ICZN},
	{"Centrohelida", GroupMicrobes, "Centrohelida", "Centrohelida", 755852, ICZN},
	{"Haptophyta", GroupMicrobes, "Haptophyta", "Haptophyta", 151014, Undefined},
	{"Apusozoa", GroupMicrobes, "Apusozoa", "Apusozoa", 671092, ICZN},
	{"Diatoms", GroupMicrobes, "Diatoms", "Bacillariophyta", 5342311, ICN},
	{"Ciliates", GroupMicrobes, "Ciliates", "Ciliophora", 302424, Undefined},
	{"Forams", GroupMicrobes, "Forams", "Foraminifera", 936399, ICZN},

	{"Animals", GroupAnimals, "Animals", "Metazoa", 691846, ICZN},
	{"Birds", GroupAnimals, "Birds", "Aves", 81461, ICZN},
	{"Tetrapods", GroupAnimals, "Tetrapods", "Tetrapoda", 229562, ICZN},
	{"Mammals", GroupAnimals, "Mammals", "Mammalia", 244265, ICZN},
	{"Amphibians", GroupAnimals, "Amphibians", "Amphibia", 544595, ICZN},
	{"Vertebrates", GroupAnimals, "Vertebrates", "Vertebrata", 801601, ICZN},
	{"Arthropods", GroupAnimals, "Arthopods", "Arthropoda", 632179, ICZN},
	{"Molluscs", GroupAnimals, "Molluscs", "Mollusca", 802117, ICZN},
	{"Nematodes", GroupAnimals, "Nematodes", "Nematoda", 395057, ICZN},
	{"Platyhelminthes", GroupAnimals, "Platyhelminthes", "Platyhelminthes", 555379, ICZN},
	{"Annelids", GroupAnimals, "Annelids", "Annelida", 941620, ICZN},
	{"Cnidarians", GroupAnimals, "Cnidarians", "Cnidaria", 641033, ICZN},
	{"Arachnids", GroupAnimals, "Arachnids", "Arachnida", 511967, ICZN},
	{"Insects", GroupAnimals, "Insects", "Insecta", 1062253, ICZN},

	{"Fungi", GroupFungi, "Fungi", "Fungi", 352914, ICN},
	{"Basidiomycetes", GroupFungi, "Basidiomycetes", "Basidiomycota", 634628, ICN},
	{"Ascomycetes", GroupFungi, "Ascomycota", "Ascomycota", 439373, ICN},

	{"Land plants", GroupPlants, "Plants", "Embryophyta", 5342313, ICN},
	{"Hornworts", GroupPlants, "Anthocerotophyta", "Anthocerotophyta", 738980, ICN},
	{"Mosses", GroupPlants, "Bryophyta", "Bryophyta", 246594, ICN},
	{"Liverworts", GroupPlants, "Marchantiophyta", "Marchantiophyta", 56601, ICN},
	{"Vascular plants", GroupPlants, "Tracheophyta", "Tracheophyta", 10210, ICN},
	{"Club mosses", GroupPlants, "Lycopodiopsida", "Lycopodiopsida", 144795, ICN},
	{"Ferns", GroupPlants, "Moniliformopses", "Moniliformopses", 166292, ICN},
	{"Seed plants", GroupPlants, "Spermatophyta", "Spermatophyta", 10218, ICN},
	{"Flowering plants", GroupPlants, "Magnoliophyta", "Magnoliophyta", 99252, ICN},
	{"Monocots", GroupPlants, "Monocots", "Liliopsida", 1058517, ICN},
	{"Eudicots", GroupPlants, "Eudicots", "eudicotyledons", 431495, ICN},
	{"Rosids", GroupPlants, "Rosids", "rosids", 1008296, ICN},
	{"Asterids", GroupPlants, "Asterids", "asterids", 1008294, ICN},
	{"Asterales", GroupPlants, "Asterales", "Asterales", 1042120, ICN},
	{"Asteraceae", GroupPlants, "Asteraceae", "Asteraceae", 46248, ICN},
	{"Aster", GroupPlants, "Aster", "Aster", 409712, ICN},
	{"Symphyotrichum", GroupPlants, "Symphyotrichum", "Symphyotrichum", 1058735, ICN},
	{"Campanulaceae", GroupPlants, "Campanulaceae", "Campanulaceae", 1086303, ICN},
	{"Lobelia", GroupPlants, "Lobelia", "Lobelia", 1086294, ICN},
}

// AllContexts returns a copy of the static context table.
func AllContexts() []Context {
	res := make([]Context, len(contexts))
	copy(res, contexts)
	return res
}

// ContextByName finds a context by its name, case-insensitive. An empty
// name returns AllLife.
func ContextByName(name string) (Context, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return AllLife, nil
	}
	for _, c := range contexts {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return Context{}, ContextNotFoundError(name)
}

// ContextsAnchoredAt returns contexts whose anchor name is the given
// taxon name, in table order.
func ContextsAnchoredAt(name string) []Context {
	var res []Context
	for _, c := range contexts {
		if strings.EqualFold(c.AnchorName, name) {
			res = append(res, c)
		}
	}
	return res
}

// ContextGroupList keeps context names of one group.
type ContextGroupList struct {
	Group ContextGroup `json:"group"`
	Names []string     `json:"names"`
}

// ContextsByGroup returns context names arranged by groups in display
// order.
func ContextsByGroup() []ContextGroupList {
	res := make([]ContextGroupList, 0, len(Groups))
	for _, g := range Groups {
		gl := ContextGroupList{Group: g}
		for _, c := range contexts {
			if c.Group == g {
				gl.Names = append(gl.Names, c.Name)
			}
		}
		res = append(res, gl)
	}
	return res
}

// ResolveAnchor picks the anchor taxon of a context among taxa carrying
// the anchor name. A candidate with the anchor OTT id wins, otherwise
// the first non-species candidate is used.
func ResolveAnchor(c Context, candidates []Taxon) (Taxon, bool) {
	for _, t := range candidates {
		if t.ID == c.AnchorOTTID {
			return t, true
		}
	}
	for _, t := range candidates {
		if strings.EqualFold(t.Name, c.AnchorName) && t.IsHigherTaxon() {
			return t, true
		}
	}
	return Taxon{}, false
}
