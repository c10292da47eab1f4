package curate

import (
	"regexp"
	"strings"
)

// sizePattern matches a trailing -<W>x<H> size token, e.g. "-40x60".
var sizePattern = regexp.MustCompile(`-\d+x\d+$`)

// mediumSuffixes are the recognized trailing medium/material markers, longest
// first so "original-painting" wins over a bare "painting"-like overlap.
var mediumSuffixes = []string{
	"original-painting",
	"canvas",
	"paper",
	"print",
}

// BaseIdentity derives the canonical product key from a handle so that
// size/format/crop variants of the same underlying artwork collapse to one
// entry. Stripping is best-effort: unknown suffixes are left untouched.
// The function is idempotent; stripping runs to a fixpoint so a handle that
// stacks several markers ("x-print-40x60-variant-2") still normalizes fully.
func BaseIdentity(handle string) string {
	h := handle
	for {
		next := stripOnce(h)
		if next == h {
			return h
		}
		h = next
	}
}

func stripOnce(h string) string {
	if i := strings.Index(h, "-variant-"); i > 0 {
		return h[:i]
	}
	if i := strings.Index(h, "-v-"); i > 0 {
		return h[:i]
	}
	if loc := sizePattern.FindStringIndex(h); loc != nil && loc[0] > 0 {
		return h[:loc[0]]
	}
	for _, m := range mediumSuffixes {
		suffix := "-" + m
		if strings.HasSuffix(h, suffix) && len(h) > len(suffix) {
			return h[:len(h)-len(suffix)]
		}
	}
	return h
}
