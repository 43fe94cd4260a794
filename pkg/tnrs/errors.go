package tnrs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/pkg/errcode"
)

func MultipleMatchError(results, matches int) error {
	msg := "Expected a single match, got %d results with %d matches"
	vars := []any{results, matches}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.MultipleMatchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: more than one match (%d results, %d matches)",
			fn, results, matches),
	}
}

func NoMatchError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.NoMatchError,
		Msg:  "No matches found",
		Err:  fmt.Errorf("from %s: no matches", fn),
	}
}

// InvalidRequestError wraps validation failures of a Request.
func InvalidRequestError(err error) error {
	msg := "Invalid request: %s"
	vars := []any{err.Error()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.InvalidRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: invalid request: %w", fn, err),
	}
}

// AdapterError is logged when an external source fails. It never stops
// the local matching.
func AdapterError(adapter string, err error) error {
	msg := "External source <em>%s</em> failed"
	vars := []any{adapter}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.AdapterError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: adapter %s: %w", fn, adapter, err),
	}
}
