// Package ioindex implements iograph.NameIndex on top of a bleve index.
// Names are indexed as lowercased keywords together with their index
// kinds and contexts, so every query is a conjunction of a name query
// with a kind term and a context term.
package ioindex

import (
	"cmp"
	"context"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gntnrs/internal/iograph"
	"github.com/gnames/gntnrs/pkg/strsim"
)

const (
	fieldName     = "name"
	fieldKinds    = "kinds"
	fieldContexts = "contexts"

	// maxFuzziness is the largest edit distance bleve fuzzy queries support.
	maxFuzziness = 2

	batchSize = 10_000
)

// doc is the indexed form of iograph.Entry.
type doc struct {
	Name     string   `json:"name"`
	Kinds    []string `json:"kinds"`
	Contexts []string `json:"contexts"`
}

type bleveIndex struct {
	path    string
	index   bleve.Index
	entries []iograph.Entry
}

// New creates a bleve name index. With empty path the index is kept in
// memory, otherwise it is recreated at the path on every Build.
func New(path string) iograph.NameIndex {
	return &bleveIndex{path: path}
}

func indexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	dm := bleve.NewDocumentMapping()
	kw := bleve.NewKeywordFieldMapping()
	dm.AddFieldMappingsAt(fieldName, kw)
	dm.AddFieldMappingsAt(fieldKinds, kw)
	dm.AddFieldMappingsAt(fieldContexts, kw)
	im.DefaultMapping = dm
	return im
}

func (b *bleveIndex) Build(entries []iograph.Entry) error {
	if err := b.Close(); err != nil {
		return BuildError(b.path, err)
	}

	var err error
	if b.path == "" {
		b.index, err = bleve.NewMemOnly(indexMapping())
	} else {
		if err = os.RemoveAll(b.path); err != nil {
			return BuildError(b.path, err)
		}
		b.index, err = bleve.New(b.path, indexMapping())
	}
	if err != nil {
		return BuildError(b.path, err)
	}

	b.entries = slices.Clone(entries)
	batch := b.index.NewBatch()
	for i, e := range b.entries {
		d := doc{
			Name:     e.NameLower(),
			Kinds:    iograph.KindNames(e.Kinds),
			Contexts: iograph.ContextNames(e.Contexts),
		}
		if err = batch.Index(strconv.Itoa(i), d); err != nil {
			return BuildError(b.path, err)
		}
		if batch.Size() >= batchSize {
			if err = b.index.Batch(batch); err != nil {
				return BuildError(b.path, err)
			}
			batch.Reset()
		}
	}
	if batch.Size() > 0 {
		if err = b.index.Batch(batch); err != nil {
			return BuildError(b.path, err)
		}
	}
	slog.Info("Built bleve name index",
		"entries", humanize.Comma(int64(len(b.entries))),
		"path", b.path,
	)
	return nil
}

func (b *bleveIndex) Exact(
	ctx context.Context,
	q iograph.Query,
) ([]iograph.Entry, error) {
	tq := bleve.NewTermQuery(strings.ToLower(q.Text))
	tq.SetField(fieldName)
	return b.search(ctx, tq, q)
}

func (b *bleveIndex) Prefix(
	ctx context.Context,
	q iograph.Query,
) ([]iograph.Entry, error) {
	pq := bleve.NewPrefixQuery(strings.ToLower(q.Text))
	pq.SetField(fieldName)
	return b.search(ctx, pq, q)
}

func (b *bleveIndex) Fuzzy(
	ctx context.Context,
	q iograph.Query,
	minIdentity float64,
) ([]iograph.Entry, error) {
	term := strings.ToLower(q.Text)
	fq := bleve.NewFuzzyQuery(term)
	fq.SetField(fieldName)
	fq.SetFuzziness(min(maxFuzziness, strsim.MaxEdits(term)))

	es, err := b.search(ctx, fq, q)
	if err != nil {
		return nil, err
	}

	type scored struct {
		entry iograph.Entry
		sim   float64
	}
	found := make([]scored, 0, len(es))
	for _, e := range es {
		if sim := strsim.Similarity(term, e.NameLower()); sim > minIdentity {
			found = append(found, scored{entry: e, sim: sim})
		}
	}
	// search returns entries sorted by name, stable sort keeps that order
	// for equal similarities.
	slices.SortStableFunc(found, func(a, b scored) int {
		return cmp.Compare(b.sim, a.sim)
	})

	res := make([]iograph.Entry, len(found))
	for i := range found {
		res[i] = found[i].entry
	}
	return res, nil
}

func (b *bleveIndex) Close() error {
	if b.index == nil {
		return nil
	}
	err := b.index.Close()
	b.index = nil
	return err
}

// search runs the name query restricted to the kind and the context of q.
// Entries come sorted by name and then by their build order, capped by
// iograph.MaxHits.
func (b *bleveIndex) search(
	ctx context.Context,
	nameQuery query.Query,
	q iograph.Query,
) ([]iograph.Entry, error) {
	if b.index == nil {
		return nil, NotBuiltError()
	}
	if q.Text == "" {
		return nil, nil
	}

	kq := bleve.NewTermQuery(q.Kind.Prefix())
	kq.SetField(fieldKinds)
	cq := bleve.NewTermQuery(q.Context.Name)
	cq.SetField(fieldContexts)

	req := bleve.NewSearchRequest(bleve.NewConjunctionQuery(nameQuery, kq, cq))
	req.Size = iograph.MaxHits
	req.SortBy([]string{fieldName})

	sr, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}

	idxs := make([]int, 0, len(sr.Hits))
	for _, h := range sr.Hits {
		i, err := strconv.Atoi(h.ID)
		if err != nil || i < 0 || i >= len(b.entries) {
			continue
		}
		idxs = append(idxs, i)
	}
	slices.SortFunc(idxs, func(i, j int) int {
		return cmp.Or(
			cmp.Compare(b.entries[i].NameLower(), b.entries[j].NameLower()),
			cmp.Compare(i, j),
		)
	})

	res := make([]iograph.Entry, len(idxs))
	for k, i := range idxs {
		res[k] = b.entries[i]
	}
	return res, nil
}
