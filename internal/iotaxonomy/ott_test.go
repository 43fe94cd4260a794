package iotaxonomy_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/internal/iotaxonomy"
	"github.com/gnames/gntnrs/pkg/errcode"
	"github.com/gnames/gntnrs/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const taxaTSV = `uid	|	parent_uid	|	name	|	rank	|	sourceinfo	|	uniqname	|	flags	|
805080	|		|	life	|	no rank	|		|		|		|
304358	|	805080	|	Eukaryota	|	domain	|		|		|		|
770315	|	304358	|	Homo sapiens	|	species	|	ncbi:9606	|		|	sibling_higher	|
1001	|	304358	|	Rosa	|	genus	|		|	Rosa (genus in Eukaryota)	|	incertae_sedis,hidden	|
`

const synonymsTSV = `name	|	uid	|	type	|	uniqname	|	sourceinfo	|
Homo sapiens sapiens	|	770315	|	synonym	|		|		|
`

const deprecatedTSV = `id	name	sourceinfo	reason
ott123	Oldus taxonus	ncbi:1	pruned
	ignored	ncbi:2	pruned
`

func writeOTT(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for k, v := range files {
		err := os.WriteFile(filepath.Join(dir, k), []byte(v), 0644)
		require.Nil(t, err)
	}
	return dir
}

func TestLoadOTT(t *testing.T) {
	assert := assert.New(t)
	dir := writeOTT(t, map[string]string{
		iotaxonomy.TaxonomyFile:   taxaTSV,
		iotaxonomy.SynonymsFile:   synonymsTSV,
		iotaxonomy.DeprecatedFile: deprecatedTSV,
		iotaxonomy.VersionFile:    "3.7\n",
	})

	src, err := iotaxonomy.LoadOTT(dir)
	assert.Nil(err)
	assert.Len(src.Taxa, 4)
	assert.Equal(int64(0), src.Taxa[0].ParentID)
	assert.Equal("Homo sapiens", src.Taxa[2].Name)
	assert.Equal(int64(304358), src.Taxa[2].ParentID)
	assert.Equal("species", src.Taxa[2].Rank)
	assert.False(src.Taxa[2].IsDubious())
	assert.Equal("Rosa (genus in Eukaryota)", src.Taxa[3].UniqueName)
	assert.True(src.Taxa[3].IsDubious())

	assert.Len(src.Synonyms, 1)
	assert.Equal(int64(770315), src.Synonyms[0].TaxonID)
	assert.Equal("synonym", src.Synonyms[0].Type)

	assert.Len(src.Deprecated, 1)
	assert.Equal(int64(123), src.Deprecated[0].ID)
	assert.True(src.Deprecated[0].IsDeprecated)

	assert.Equal("3.7", src.Metadata["version"])
}

func TestLoadOTTOptional(t *testing.T) {
	assert := assert.New(t)
	dir := writeOTT(t, map[string]string{iotaxonomy.TaxonomyFile: taxaTSV})
	src, err := iotaxonomy.LoadOTT(dir)
	assert.Nil(err)
	assert.Len(src.Taxa, 4)
	assert.Empty(src.Synonyms)
	assert.Empty(src.Deprecated)
}

func TestLoadOTTErrors(t *testing.T) {
	tests := []struct {
		msg   string
		files map[string]string
		code  gn.ErrorCode
	}{
		{"no taxonomy", map[string]string{}, errcode.TaxonomyReadError},
		{"empty", map[string]string{iotaxonomy.TaxonomyFile: ""},
			errcode.TaxonomyParseError},
		{"bad id", map[string]string{
			iotaxonomy.TaxonomyFile: "uid\t|\tname\t|\nabc\t|\tBad\t|\n",
		}, errcode.TaxonomyParseError},
	}

	for _, v := range tests {
		dir := writeOTT(t, v.files)
		_, err := iotaxonomy.LoadOTT(dir)
		var gnErr *gn.Error
		assert.True(t, errors.As(err, &gnErr), v.msg)
		if gnErr != nil {
			assert.Equal(t, v.code, gnErr.Code, v.msg)
		}
	}
}

const yamlDoc = `
taxa:
  - {id: 1, name: life, rank: no rank}
  - {id: 2, parent_id: 1, name: Plantae, rank: kingdom, code: ICN}
  - {id: 3, parent_id: 2, name: Rosa, rank: genus, flags: hidden}
synonyms:
  - {taxon_id: 3, name: Rhodon}
deprecated:
  - {id: 99, name: Oldia}
metadata:
  version: test
`

func TestReadYAML(t *testing.T) {
	assert := assert.New(t)
	src, err := iotaxonomy.ReadYAML(strings.NewReader(yamlDoc), "doc.yaml")
	assert.Nil(err)
	assert.Len(src.Taxa, 3)
	assert.Equal(taxonomy.NewNomenclature("ICN"), src.Taxa[1].Code)
	assert.True(src.Taxa[2].IsDubious())
	assert.Equal("Rhodon", src.Synonyms[0].Name)
	assert.True(src.Deprecated[0].IsDeprecated)
	assert.Equal("test", src.Metadata["version"])

	_, err = iotaxonomy.ReadYAML(strings.NewReader("taxa: [1"), "bad.yaml")
	assert.NotNil(err)
}
