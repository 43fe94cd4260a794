package ioindex_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/internal/iograph"
	"github.com/gnames/gntnrs/internal/ioindex"
	"github.com/gnames/gntnrs/internal/iotesting"
	"github.com/gnames/gntnrs/pkg/errcode"
	"github.com/gnames/gntnrs/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
)

func ids(nms []taxonomy.NameMatch) []int64 {
	res := make([]int64, len(nms))
	for i := range nms {
		res[i] = nms[i].ID
	}
	return res
}

func TestExact(t *testing.T) {
	ctx := context.Background()
	g := iotesting.Graph(t, iograph.OptNameIndex(ioindex.New("")))
	plants, err := taxonomy.ContextByName("Flowering plants")
	assert.Nil(t, err)

	tests := []struct {
		msg     string
		context taxonomy.Context
		kind    taxonomy.IndexKind
		name    string
		ids     []int64
	}{
		{"homonym", taxonomy.AllLife, taxonomy.PrefName, "Rosa",
			[]int64{iotesting.RosaInsectID, iotesting.RosaPlantID}},
		{"case", taxonomy.AllLife, taxonomy.PrefName, "ROSA canina",
			[]int64{iotesting.RosaCaninaID}},
		{"context", plants, taxonomy.PrefName, "Rosa",
			[]int64{iotesting.RosaPlantID}},
		{"dubious", taxonomy.AllLife, taxonomy.PrefName, "Hiddenia", []int64{}},
		{"dubious all", taxonomy.AllLife, taxonomy.Name, "Hiddenia",
			[]int64{iotesting.HiddeniaID}},
		{"synonym", taxonomy.AllLife, taxonomy.PrefSynonym,
			"Homo sapiens sapiens", []int64{iotesting.HomoSapiensID}},
		{"deprecated", taxonomy.AllLife, taxonomy.Deprecated,
			"Homo neanderthalensis", []int64{iotesting.NeanderID}},
		{"empty", taxonomy.AllLife, taxonomy.PrefName, "", []int64{}},
	}

	for _, v := range tests {
		nms, err := g.ExactMatch(ctx, v.context, v.kind, v.name)
		assert.Nil(t, err, v.msg)
		assert.ElementsMatch(t, v.ids, ids(nms), v.msg)
	}
}

func TestPrefix(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	g := iotesting.Graph(t, iograph.OptNameIndex(ioindex.New("")))

	nms, err := g.PrefixMatch(ctx, taxonomy.AllLife, taxonomy.PrefName, "aster a")
	assert.Nil(err)
	assert.Equal([]int64{iotesting.AsterAlpinusID, 1000054}, ids(nms))
}

func TestFuzzy(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	g := iotesting.Graph(t, iograph.OptNameIndex(ioindex.New("")))

	nms, err := g.FuzzyMatch(
		ctx, taxonomy.AllLife, taxonomy.PrefNameOrSynonym, "Homo sapien", 0.7,
	)
	assert.Nil(err)
	assert.Equal([]int64{iotesting.HomoSapiensID}, ids(nms))

	nms, err = g.FuzzyMatch(
		ctx, taxonomy.AllLife, taxonomy.PrefNameOrSynonym, "Aster sibiricos", 0.7,
	)
	assert.Nil(err)
	assert.Len(nms, 1)
	assert.True(nms[0].IsSynonym)

	nms, err = g.FuzzyMatch(
		ctx, taxonomy.AllLife, taxonomy.PrefNameOrSynonym, "Homo sapien", 0.95,
	)
	assert.Nil(err)
	assert.Empty(nms)
}

// TestSameAsMemIndex compares bleve results with the default index.
func TestSameAsMemIndex(t *testing.T) {
	ctx := context.Background()
	mem := iotesting.Graph(t)
	blv := iotesting.Graph(t,
		iograph.OptNameIndex(ioindex.New(filepath.Join(t.TempDir(), "idx"))),
	)

	names := []string{"Rosa", "Homo", "Aster", "Canis lupus", "Dupla dupla"}
	for _, c := range taxonomy.AllContexts() {
		for _, k := range taxonomy.AllIndexKinds {
			for _, n := range names {
				exp, err := mem.ExactMatch(ctx, c, k, n)
				assert.Nil(t, err)
				got, err := blv.ExactMatch(ctx, c, k, n)
				assert.Nil(t, err)
				assert.ElementsMatch(t, ids(exp), ids(got), c.Name+" "+n)

				exp, err = mem.PrefixMatch(ctx, c, k, n[:2])
				assert.Nil(t, err)
				got, err = blv.PrefixMatch(ctx, c, k, n[:2])
				assert.Nil(t, err)
				assert.ElementsMatch(t, ids(exp), ids(got), c.Name+" "+n[:2])
			}
		}
	}
}

func TestNotBuilt(t *testing.T) {
	assert := assert.New(t)
	idx := ioindex.New("")
	_, err := idx.Exact(context.Background(), iograph.Query{
		Kind:    taxonomy.PrefName,
		Context: taxonomy.AllLife,
		Text:    "Rosa",
	})
	var gnErr *gn.Error
	assert.True(errors.As(err, &gnErr))
	assert.Equal(errcode.IndexQueryError, gnErr.Code)
	assert.Nil(idx.Close())
}
