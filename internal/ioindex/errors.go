package ioindex

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/pkg/errcode"
)

func BuildError(path string, err error) error {
	msg := "Cannot build name index"
	var vars []any
	if path != "" {
		msg += " at <em>%s</em>"
		vars = []any{path}
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.IndexBuildError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func NotBuiltError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.IndexQueryError,
		Msg:  "Name index is not built",
		Err:  fmt.Errorf("from %s: %w", fn, errors.New("index is closed")),
	}
}
