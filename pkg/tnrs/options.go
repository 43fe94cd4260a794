package tnrs

// Option configures a MultiNameQuery.
type Option func(*MultiNameQuery)

// OptMinScore sets the lowest score of fuzzy matches.
func OptMinScore(f float64) Option {
	return func(q *MultiNameQuery) {
		q.minScore = f
	}
}

// OptDoFuzzy enables fuzzy matching of names without exact matches.
func OptDoFuzzy(b bool) Option {
	return func(q *MultiNameQuery) {
		q.doFuzzy = b
	}
}

// OptIncludeDubious makes queries use indexes with dubious taxa.
func OptIncludeDubious(b bool) Option {
	return func(q *MultiNameQuery) {
		q.includeDubious = b
	}
}

// OptIncludeDeprecated adds matches to deprecated taxa.
func OptIncludeDeprecated(b bool) Option {
	return func(q *MultiNameQuery) {
		q.includeDeprecated = b
	}
}

// OptMatchSpToGenus matches "Genus sp." names to the genus.
func OptMatchSpToGenus(b bool) Option {
	return func(q *MultiNameQuery) {
		q.matchSpToGenus = b
	}
}

// OptInferContext enables context inference when no context is given.
// Without inference such queries run in the AllLife context.
func OptInferContext(b bool) Option {
	return func(q *MultiNameQuery) {
		q.inferContext = b
	}
}

// OptJobs sets the number of workers that process names of one stage.
func OptJobs(i int) Option {
	return func(q *MultiNameQuery) {
		q.jobs = i
	}
}

func OptNormalizer(n Normalizer) Option {
	return func(q *MultiNameQuery) {
		q.normalizer = n
	}
}

// OptAdapters sets external sources for names left without matches.
func OptAdapters(aa ...Adapter) Option {
	return func(q *MultiNameQuery) {
		q.adapters = aa
	}
}
