// Package curate implements the deduplication and spatial distribution
// engine: it takes an over-fetched batch of raw search hits and produces a
// bounded, visually diverse ordered subset for display. The engine is a
// pure in-memory computation with no I/O; it never reorders by score
// (ranking belongs to the upstream index) and it is a greedy single-pass
// heuristic per phase, not an optimizer.
package curate

// Policy selects how hits are assigned to location groups.
type Policy string

const (
	// PolicyCoordinate groups by rounded GPS cell, falling back to place ID,
	// formatted address and location-photo ID when coordinates are absent.
	PolicyCoordinate Policy = "coordinate"
	// PolicyPhoto groups by explicit location-photo ID, falling back to
	// place ID and formatted address. Coordinates are ignored.
	PolicyPhoto Policy = "photo"
)

// Engine defaults. The similarity threshold and token-length cutoff are
// inherited constants with no documented rationale; they are configurable
// rather than hard-coded, but no other value has been validated.
const (
	DefaultMaxPerGroup         = 2
	DefaultSimilarityThreshold = 0.8
	DefaultMinTokenLen         = 2
)

// Options configures one engine invocation. The zero value is usable:
// coordinate policy, no tiering, no title collapsing, defaults for the rest.
// Options is threaded explicitly into Curate; the engine keeps no state
// between calls and is safe for concurrent use.
type Options struct {
	// Policy selects the location grouping policy. Exactly one policy is
	// active per invocation.
	Policy Policy
	// FeaturedFirst drains the featured tier before regular hits.
	FeaturedFirst bool
	// MaxPerGroup caps how many hits from one location group survive at all.
	MaxPerGroup int
	// TargetCount bounds the output length.
	TargetCount int
	// CollapseTitles additionally drops hits whose title is near-identical
	// to an already-kept hit's title.
	CollapseTitles bool
	// SimilarityThreshold is the token-overlap ratio at or above which two
	// titles are judged near-identical.
	SimilarityThreshold float64
	// MinTokenLen: only tokens strictly longer than this count toward the
	// overlap ratio.
	MinTokenLen int
}

func (o Options) withDefaults() Options {
	if o.Policy == "" {
		o.Policy = PolicyCoordinate
	}
	if o.MaxPerGroup <= 0 {
		o.MaxPerGroup = DefaultMaxPerGroup
	}
	if o.SimilarityThreshold <= 0 {
		o.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if o.MinTokenLen <= 0 {
		o.MinTokenLen = DefaultMinTokenLen
	}
	return o
}
