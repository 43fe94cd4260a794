package tnrs

import "context"

// Adapter is an external source of matches. It is asked only about names
// the local taxonomy could not match. Adapters must bound the time they
// spend on a request.
type Adapter interface {
	// Name is a short name of the source.
	Name() string

	// Match returns hits found for query names, keyed by query id.
	Match(ctx context.Context, names []QueryName) (map[string][]Hit, error)
}

// Normalizer converts a name string to the form kept in name indexes,
// for example to a canonical form without authors.
type Normalizer interface {
	Normalize(name string) string
}
