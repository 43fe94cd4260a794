package iotaxonomy

import (
	"io"
	"os"

	"github.com/gnames/gntnrs/pkg/taxonomy"
	"gopkg.in/yaml.v3"
)

// LoadYAML reads a taxonomy from a YAML file.
func LoadYAML(path string) (taxonomy.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return taxonomy.Source{}, TaxonomyReadError(path, err)
	}
	defer f.Close()
	return ReadYAML(f, path)
}

// ReadYAML decodes a taxonomy document. The path is used in error
// messages only.
func ReadYAML(r io.Reader, path string) (taxonomy.Source, error) {
	var res taxonomy.Source
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&res); err != nil {
		return res, TaxonomyParseError(path, 0, err)
	}
	for i := range res.Deprecated {
		res.Deprecated[i].IsDeprecated = true
	}
	if res.Metadata == nil {
		res.Metadata = make(map[string]any)
	}
	return res, nil
}
