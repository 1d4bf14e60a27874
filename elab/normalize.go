package elab

import (
	"strconv"
	"strings"
)

// NormalizeCode returns the canonical key variants to try when matching an
// article code across systems that disagree on zero padding and numeric
// formatting: the trimmed value as-is, the value with leading zeros
// stripped ("0" if nothing remains), and the float-then-int restring when
// the value is numeric. Variants are de-duplicated preserving order; an
// empty input yields no variants.
func NormalizeCode(value string) []string {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}

	keys := []string{s}

	stripped := strings.TrimLeft(s, "0")
	if stripped == "" {
		stripped = "0"
	}
	keys = append(keys, stripped)

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		keys = append(keys, strconv.FormatInt(int64(f), 10))
	}

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		seen := false
		for _, existing := range out {
			if existing == k {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, k)
		}
	}
	return out
}
