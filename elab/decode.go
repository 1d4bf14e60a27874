// Package elab parses the supplier ".elab" flat-file export: a
// semicolon-delimited text file with ten columns per line, produced by a
// legacy system that is inconsistent about encodings and numeric formats.
package elab

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decode turns the raw upload bytes into text. UTF-8 is tried first; any
// invalid sequence falls back to a full Latin-1 interpretation, which maps
// every byte and therefore never fails.
func Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// ISO 8859-1 maps every byte, so this branch is unreachable.
		return string(utf8.RuneError)
	}
	return string(decoded)
}
