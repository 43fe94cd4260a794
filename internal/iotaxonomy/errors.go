package iotaxonomy

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/pkg/errcode"
)

func TaxonomyReadError(path string, err error) error {
	msg := "Cannot read taxonomy file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.TaxonomyReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

func TaxonomyParseError(path string, line int, err error) error {
	msg := "Cannot parse line %d of <em>%s</em>"
	vars := []any{line, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.TaxonomyParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s:%d: %w", fn, path, line, err),
	}
}
