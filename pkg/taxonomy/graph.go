package taxonomy

import "context"

// Graph gives read-only access to a taxonomy: its preferred hierarchy and
// its name indexes. All name queries are case-insensitive and treat the
// whole name as one token. Implementations must be safe for concurrent
// reads.
type Graph interface {
	// TaxonByID returns a taxon or TaxonNotFoundError.
	TaxonByID(ctx context.Context, id int64) (Taxon, error)

	// Parent returns the parent of a taxon. The boolean is false for the
	// root. With preferred set to false the raw parent is returned.
	Parent(ctx context.Context, t Taxon, preferred bool) (Taxon, bool, error)

	// Root returns the root of the preferred hierarchy.
	Root(ctx context.Context) (Taxon, error)

	// ContextAnchor returns the taxon at the root of a context. The
	// boolean is false when the taxonomy lacks the anchor.
	ContextAnchor(ctx context.Context, c Context) (Taxon, bool, error)

	// ExactMatch finds taxa whose name (or synonym, for synonym kinds)
	// equals the given one within a context. Hits come in index order.
	ExactMatch(
		ctx context.Context, c Context, kind IndexKind, name string,
	) ([]NameMatch, error)

	// PrefixMatch finds taxa whose name starts with the prefix.
	PrefixMatch(
		ctx context.Context, c Context, kind IndexKind, prefix string,
	) ([]NameMatch, error)

	// FuzzyMatch finds taxa whose name similarity to the given one is
	// above minIdentity.
	FuzzyMatch(
		ctx context.Context,
		c Context,
		kind IndexKind,
		name string,
		minIdentity float64,
	) ([]NameMatch, error)

	// DescendantIDs returns ids of the taxon and all its preferred
	// descendants.
	DescendantIDs(ctx context.Context, t Taxon) (map[int64]struct{}, error)

	// Children returns preferred children of a taxon.
	Children(ctx context.Context, t Taxon) ([]Taxon, error)

	// SpeciesByGenus enumerates preferred species of a genus within a
	// context.
	SpeciesByGenus(ctx context.Context, c Context, genus Taxon) ([]Taxon, error)

	// Metadata describes the loaded taxonomy (version, source, counts).
	Metadata(ctx context.Context) (map[string]any, error)
}

// NameMatch is a taxon found through a name index. MatchedName is the
// indexed string that matched, a synonym for synonym hits.
type NameMatch struct {
	Taxon
	MatchedName string
	IsSynonym   bool
}
