package tnrs

import (
	"regexp"
	"strings"

	"github.com/gnames/gnlib"
)

var scrubRe = regexp.MustCompile("[_~`:;/\\[\\]{}|<>,!@#$%^&*()?+=\\\\\\s]+")

// ScrubName replaces runs of punctuation that never occurs in scientific
// names and whitespace with a single space. Broken UTF-8 is repaired.
func ScrubName(s string) string {
	s = scrubRe.ReplaceAllString(s, " ")
	s = gnlib.FixUtf8(s)
	return strings.TrimSpace(s)
}

