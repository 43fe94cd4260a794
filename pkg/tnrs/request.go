package tnrs

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxNames limits the number of names in one request.
	MaxNames = 10_000

	// MaxFuzzyNames limits the number of names in a request with fuzzy
	// matching.
	MaxFuzzyNames = 250
)

// Request is a batch of names to resolve.
type Request struct {
	// Names to resolve.
	Names []string `json:"names" validate:"required,min=1,max=10000"`

	// IDs are optional caller ids of names. When given, they must be
	// unique and match Names one to one. Otherwise indices are used.
	IDs []string `json:"ids,omitempty" validate:"omitempty,unique"`

	// Context is a context name. Empty context triggers inference.
	Context string `json:"context,omitempty"`

	DoFuzzy           bool `json:"doFuzzy"`
	IncludeDubious    bool `json:"includeDubious"`
	IncludeDeprecated bool `json:"includeDeprecated"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	res := validator.New(validator.WithRequiredStructEnabled())
	res.RegisterStructValidation(requestRules, Request{})
	return res
}

func requestRules(sl validator.StructLevel) {
	r := sl.Current().Interface().(Request)
	if len(r.IDs) > 0 && len(r.IDs) != len(r.Names) {
		sl.ReportError(r.IDs, "IDs", "IDs", "eqlen", "Names")
	}
	if r.DoFuzzy && len(r.Names) > MaxFuzzyNames {
		sl.ReportError(r.Names, "Names", "Names", "maxfuzzy", "250")
	}
}

// Validate checks limits of the request.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return InvalidRequestError(err)
	}
	return nil
}

// QueryNames pairs names with their ids.
func (r Request) QueryNames() []QueryName {
	res := make([]QueryName, len(r.Names))
	for i, name := range r.Names {
		id := strconv.Itoa(i)
		if len(r.IDs) == len(r.Names) {
			id = r.IDs[i]
		}
		res[i] = QueryName{ID: id, Name: name}
	}
	return res
}
