package curate

import "github.com/artloci/nearby/internal/domain/hit"

// Curate runs the full pipeline: annotate, collapse near-duplicates,
// optionally split priority tiers, cap location groups, and distribute into
// a bounded ordered output. Total over its input: an empty batch or a
// non-positive target yields an empty output, and missing titles or handles
// are treated as empty strings. Curate never mutates the input slice.
func Curate(hits []hit.Hit, opts Options) []hit.Hit {
	opts = opts.withDefaults()
	if len(hits) == 0 || opts.TargetCount <= 0 {
		return nil
	}

	entries := annotate(hits, opts.Policy)
	entries = collapse(entries, opts)

	var picked []entry
	if opts.FeaturedFirst {
		picked = distributeTiered(entries, opts)
	} else {
		entries = capGroups(entries, opts.MaxPerGroup)
		picked = distribute(entries, opts.TargetCount)
	}

	out := make([]hit.Hit, len(picked))
	for i, e := range picked {
		out[i] = e.hit
	}
	return out
}

// distributeTiered drains the featured tier first, fills the remaining
// budget from the regular tier under the same grouping rules, then appends
// hits with no location detail at all, truncated to what is left.
func distributeTiered(entries []entry, opts Options) []entry {
	located, unlocated := splitLocated(entries)
	featured, regular := splitTiers(located)

	out := distribute(capGroups(featured, opts.MaxPerGroup), opts.TargetCount)

	if remaining := opts.TargetCount - len(out); remaining > 0 {
		out = append(out, distribute(capGroups(regular, opts.MaxPerGroup), remaining)...)
	}

	if remaining := opts.TargetCount - len(out); remaining > 0 {
		if len(unlocated) > remaining {
			unlocated = unlocated[:remaining]
		}
		out = append(out, unlocated...)
	}

	return out
}
