package demo

import (
	_ "embed"

	"golang.org/x/text/unicode/norm"
)

// defaultLog stands in for dkp.cc's bundled data/dkp.log-small: a small
// sample ledger used whenever the caller supplies no input of its own.
//
//go:embed data/dkp.log-small
var defaultLog []byte

// DefaultLog returns the bundled sample DKP ledger.
func DefaultLog() []byte { return defaultLog }

// normalizeField applies Unicode NFC normalization to a record field
// before it is interned as a Str object, so two spellings of the same
// name that differ only in combining-character form group together.
func normalizeField(s string) string {
	return norm.NFC.String(s)
}
