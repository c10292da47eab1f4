package curate

import "strings"

// collapse removes near-duplicate hits, preserving first-occurrence order.
// A hit is dropped when its base identity was already seen, or — when title
// collapsing is enabled — when its title is judged near-identical to the
// title of any already-kept hit. The title check compares each candidate
// against the whole accumulator (O(n²)); first match wins.
func collapse(entries []entry, opts Options) []entry {
	seen := make(map[string]struct{}, len(entries))
	kept := make([]entry, 0, len(entries))

	var keptTitles []string   // normalized titles of kept hits, accumulator order
	var keptTokens [][]string // similarity tokens per kept hit

	for _, e := range entries {
		if _, dup := seen[e.baseID]; dup {
			continue
		}

		if opts.CollapseTitles {
			norm := normalizeTitle(e.hit.Title)
			tokens := similarityTokens(norm, opts.MinTokenLen)
			if titleSeen(norm, tokens, keptTitles, keptTokens, opts.SimilarityThreshold) {
				continue
			}
			keptTitles = append(keptTitles, norm)
			keptTokens = append(keptTokens, tokens)
		}

		seen[e.baseID] = struct{}{}
		kept = append(kept, e)
	}

	return kept
}

// titleSeen reports whether title is near-identical to any kept title.
// Two empty titles are never judged similar; exact equality after
// normalization always counts regardless of threshold.
func titleSeen(norm string, tokens []string, keptTitles []string, keptTokens [][]string, threshold float64) bool {
	if norm == "" {
		return false
	}
	for i, kept := range keptTitles {
		if kept == "" {
			continue
		}
		if norm == kept {
			return true
		}
		if tokenOverlap(tokens, keptTokens[i]) >= threshold {
			return true
		}
	}
	return false
}

// tokenOverlap computes 2*common / (len(a) + len(b)) over the filtered token
// lists. Tokens of a are matched against the set of b; no ratio is defined
// when either side has no countable tokens.
func tokenOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(b))
	for _, tok := range b {
		set[tok] = struct{}{}
	}
	common := 0
	for _, tok := range a {
		if _, ok := set[tok]; ok {
			common++
		}
	}
	return 2 * float64(common) / float64(len(a)+len(b))
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// similarityTokens splits a normalized title on whitespace, keeping only
// tokens strictly longer than minLen.
func similarityTokens(norm string, minLen int) []string {
	fields := strings.Fields(norm)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > minLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
