package iograph

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gnames/gntnrs/pkg/strsim"
)

// memIndex is the default NameIndex. It keeps a map for exact lookups and
// a sorted list of distinct names for prefix and fuzzy scans.
type memIndex struct {
	entries []Entry
	byName  map[string][]int
	names   []string
}

// NewMemIndex creates an in-memory name index.
func NewMemIndex() NameIndex {
	return &memIndex{}
}

func (m *memIndex) Build(entries []Entry) error {
	m.entries = slices.Clone(entries)
	m.byName = make(map[string][]int, len(entries))
	m.names = m.names[:0]
	for i, e := range m.entries {
		key := e.NameLower()
		if _, ok := m.byName[key]; !ok {
			m.names = append(m.names, key)
		}
		m.byName[key] = append(m.byName[key], i)
	}
	slices.Sort(m.names)
	return nil
}

func (m *memIndex) Exact(_ context.Context, q Query) ([]Entry, error) {
	return m.collect(nil, strings.ToLower(q.Text), q), nil
}

func (m *memIndex) Prefix(_ context.Context, q Query) ([]Entry, error) {
	prefix := strings.ToLower(q.Text)
	var res []Entry
	start, _ := slices.BinarySearch(m.names, prefix)
	for _, name := range m.names[start:] {
		if !strings.HasPrefix(name, prefix) || len(res) >= MaxHits {
			break
		}
		res = m.collect(res, name, q)
	}
	return res, nil
}

func (m *memIndex) Fuzzy(
	_ context.Context,
	q Query,
	minIdentity float64,
) ([]Entry, error) {
	term := strings.ToLower(q.Text)
	termLen := utf8.RuneCountInString(term)
	maxEdits := strsim.MaxEdits(term)

	type scored struct {
		name string
		sim  float64
	}
	var found []scored
	for _, name := range m.names {
		l := utf8.RuneCountInString(name)
		if l < termLen-maxEdits || l > termLen+maxEdits {
			continue
		}
		if sim := strsim.Similarity(term, name); sim > minIdentity {
			found = append(found, scored{name: name, sim: sim})
		}
	}
	slices.SortStableFunc(found, func(a, b scored) int {
		return cmp.Compare(b.sim, a.sim)
	})

	var res []Entry
	for _, v := range found {
		if len(res) >= MaxHits {
			break
		}
		res = m.collect(res, v.name, q)
	}
	return res, nil
}

func (m *memIndex) Close() error {
	return nil
}

func (m *memIndex) collect(res []Entry, name string, q Query) []Entry {
	for _, i := range m.byName[name] {
		if e := m.entries[i]; e.In(q.Kind, q.Context) {
			res = append(res, e)
		}
	}
	return res
}
