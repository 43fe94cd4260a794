package iograph

import (
	"context"
	"strings"

	"github.com/gnames/gntnrs/pkg/taxonomy"
)

// MaxHits limits the number of prefix and fuzzy hits returned by name
// indexes.
const MaxHits = 1000

// Entry is one indexed name string: a name of a taxon, a synonym or a
// name of a deprecated taxon. Kinds and Contexts are bit masks of index
// kinds and contexts the entry belongs to.
type Entry struct {
	TaxonID    int64
	Name       string
	IsSynonym  bool
	Deprecated bool
	Kinds      uint32
	Contexts   uint64
}

// NameLower is the key used for case-insensitive lookups.
func (e Entry) NameLower() string {
	return strings.ToLower(e.Name)
}

// In tells if the entry belongs to the index kind and context.
func (e Entry) In(kind taxonomy.IndexKind, c taxonomy.Context) bool {
	return e.Kinds&KindBit(kind) != 0 && e.Contexts&ContextBit(c) != 0
}

// Query selects entries of one index kind in a context.
type Query struct {
	Kind    taxonomy.IndexKind
	Context taxonomy.Context
	Text    string
}

// NameIndex finds entries by their names. Implementations must be safe
// for concurrent reads after Build.
type NameIndex interface {
	// Build indexes entries, replacing previous content.
	Build(entries []Entry) error

	Exact(ctx context.Context, q Query) ([]Entry, error)
	Prefix(ctx context.Context, q Query) ([]Entry, error)

	// Fuzzy returns entries with similarity to the query text above
	// minIdentity, the most similar first.
	Fuzzy(ctx context.Context, q Query, minIdentity float64) ([]Entry, error)

	Close() error
}

// KindBit returns the mask bit of an index kind.
func KindBit(k taxonomy.IndexKind) uint32 {
	return 1 << uint(k)
}

var contextPos = func() map[string]int {
	res := make(map[string]int)
	for i, c := range taxonomy.AllContexts() {
		res[c.Name] = i
	}
	return res
}()

// ContextBit returns the mask bit of a context. AllLife takes the first
// bit, every entry has it.
func ContextBit(c taxonomy.Context) uint64 {
	pos, ok := contextPos[c.Name]
	if !ok {
		return 0
	}
	return 1 << uint(pos)
}

// EntryKinds computes index kinds of a name string that belongs to the
// taxon.
func EntryKinds(t taxonomy.Taxon, isSynonym bool) uint32 {
	var res uint32
	for _, k := range taxonomy.AllIndexKinds {
		searches := k.SearchesNames()
		if isSynonym {
			searches = k.SearchesSynonyms()
		}
		if searches && k.Admits(t) {
			res |= KindBit(k)
		}
	}
	return res
}

// KindNames returns index kind prefixes of a mask, for indexes that keep
// kinds as terms.
func KindNames(mask uint32) []string {
	var res []string
	for _, k := range taxonomy.AllIndexKinds {
		if mask&KindBit(k) != 0 {
			res = append(res, k.Prefix())
		}
	}
	return res
}

// ContextNames returns names of contexts in a mask.
func ContextNames(mask uint64) []string {
	var res []string
	for _, c := range taxonomy.AllContexts() {
		if mask&ContextBit(c) != 0 {
			res = append(res, c.Name)
		}
	}
	return res
}
