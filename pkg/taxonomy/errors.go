package taxonomy

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/pkg/errcode"
)

func callerName() string {
	pc, _, _, _ := runtime.Caller(2)
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return "unknown"
}

// EmptyInputError is returned when an operation needs at least one taxon.
func EmptyInputError(op string) error {
	msg := "Operation <em>%s</em> needs at least one taxon"
	vars := []any{op}
	return &gn.Error{
		Code: errcode.EmptyInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: empty input for %s", callerName(), op),
	}
}

// HierarchyIntegrityError reports a broken taxonomy: a cycle or
// disconnected ancestor paths.
func HierarchyIntegrityError(id int64, reason string) error {
	msg := "Taxonomy hierarchy is broken near taxon %d: %s"
	vars := []any{id, reason}
	return &gn.Error{
		Code: errcode.HierarchyIntegrityError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: hierarchy integrity at %d: %s",
			callerName(), id, reason),
	}
}

func ContextNotFoundError(name string) error {
	msg := "Context <em>%s</em> is unknown"
	vars := []any{name}
	return &gn.Error{
		Code: errcode.ContextNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no context named %q", callerName(), name),
	}
}

// TaxonNotFoundError is returned by graphs for unknown taxon ids.
func TaxonNotFoundError(id int64) error {
	msg := "Taxon with id %d is not found"
	vars := []any{id}
	return &gn.Error{
		Code: errcode.TaxonNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: taxon %d not found", callerName(), id),
	}
}

// IndexQueryError wraps a failure of a name index backend.
func IndexQueryError(index, name string, err error) error {
	msg := "Cannot query index <em>%s</em> for '%s'"
	vars := []any{index, name}
	return &gn.Error{
		Code: errcode.IndexQueryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: query %s for %q: %w",
			callerName(), index, name, err),
	}
}
