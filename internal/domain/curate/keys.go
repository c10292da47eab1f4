package curate

import (
	"github.com/artloci/nearby/internal/domain/geo"
	"github.com/artloci/nearby/internal/domain/hit"
)

// entry is the per-hit annotation carried through the pipeline. Hits are
// never mutated after annotation; all later phases work on these records
// and on per-group index bookkeeping.
type entry struct {
	hit      hit.Hit
	baseID   string
	locKey   string
	grouped  bool // real location group, not the singleton fallback
	styleKey string
}

// annotate derives the base identity and grouping keys for every hit.
func annotate(hits []hit.Hit, policy Policy) []entry {
	entries := make([]entry, len(hits))
	for i, h := range hits {
		key, grouped := locationKey(&h, policy)
		entries[i] = entry{
			hit:      h,
			baseID:   BaseIdentity(h.Handle),
			locKey:   key,
			grouped:  grouped,
			styleKey: styleKey(&h),
		}
	}
	return entries
}

// locationKey derives the "same physical place" key for a hit. The priority
// chain degrades rung by rung when a detail is absent or malformed; the
// final fallback keys the hit by its own handle, forming a singleton group
// (grouped=false).
func locationKey(h *hit.Hit, policy Policy) (string, bool) {
	l := h.Location
	if l == nil {
		return "handle:" + h.Handle, false
	}

	if policy == PolicyCoordinate && l.HasCoords &&
		geo.ValidateCoordinates(l.Latitude, l.Longitude) {
		return "cell:" + geo.CellKey(l.Latitude, l.Longitude), true
	}
	if policy == PolicyPhoto && l.LocationPhotoID != "" {
		return "photo:" + l.LocationPhotoID, true
	}
	if l.PlaceID != "" {
		return "place:" + l.PlaceID, true
	}
	if l.FormattedAddress != "" {
		return "addr:" + l.FormattedAddress, true
	}
	if l.LocationPhotoID != "" {
		return "photo:" + l.LocationPhotoID, true
	}
	return "handle:" + h.Handle, false
}

// styleKey returns the soft adjacency key, or "" when the hit has no style.
// An empty style never conflicts with another empty style.
func styleKey(h *hit.Hit) string {
	if h.Location == nil {
		return ""
	}
	return h.Location.StyleName
}
