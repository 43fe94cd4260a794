package iooptimize

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/pkg/errcode"
)

func callerName() string {
	pc, _, _, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name()
}

func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database not connected",
		Err:  fmt.Errorf("from %s: optimizer without connection", callerName()),
	}
}

// OrphansError is returned when orphaned name entries cannot be removed.
func OrphansError(err error) error {
	msg := `<title>Cannot Remove Orphaned Name Entries</title>
<warn>Failed to delete name entries without taxa.</warn>

<em>How to fix:</em>
  1. Verify the database connection is active
  2. Ensure the database was populated: <em>gntnrs populate</em>
`
	return &gn.Error{
		Code: errcode.OptimizeOrphansError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: remove orphans: %w", callerName(), err),
	}
}

func VacuumError(err error) error {
	return &gn.Error{
		Code: errcode.OptimizeVacuumError,
		Msg:  "Failed to run VACUUM ANALYZE",
		Err:  fmt.Errorf("from %s: vacuum: %w", callerName(), err),
	}
}
