package ioverifier

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

// RequestError is returned when GNverifier cannot be reached.
func RequestError(url string, err error) error {
	return &gn.Error{
		Code: errcode.VerifierRequestError,
		Msg:  "Cannot reach GNverifier at <em>%s</em>",
		Vars: []any{url},
		Err:  fmt.Errorf("from %s: request to %s: %w", callerName(), url, err),
	}
}

// StatusError is returned when GNverifier answers with a status other
// than 200.
func StatusError(url string, status int) error {
	return &gn.Error{
		Code: errcode.VerifierRequestError,
		Msg:  "GNverifier at <em>%s</em> returned status %d",
		Vars: []any{url, status},
		Err:  fmt.Errorf("from %s: %s status %d", callerName(), url, status),
	}
}

func ResponseError(url string, err error) error {
	return &gn.Error{
		Code: errcode.VerifierResponseError,
		Msg:  "Cannot decode GNverifier response",
		Err:  fmt.Errorf("from %s: decode %s response: %w", callerName(), url, err),
	}
}
