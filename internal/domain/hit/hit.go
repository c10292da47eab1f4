// Package hit defines the candidate product record flowing through the
// search and curation pipeline.
package hit

// Location carries the physical-place attributes of a hit. All fields are
// optional; HasCoords distinguishes a real (0,0) coordinate from an absent one.
type Location struct {
	Latitude         float64
	Longitude        float64
	HasCoords        bool
	PlaceID          string
	FormattedAddress string
	LocationPhotoID  string
	StyleName        string
}

// Hit is one candidate result from the upstream search index.
// Handle and Title are guaranteed present downstream (empty string at worst);
// ImageURL and Price are optional passthrough for the renderer.
type Hit struct {
	Handle   string
	Title    string
	ImageURL string
	Price    float64
	HasPrice bool
	Featured bool
	// DistanceM is the great-circle distance from the query point in meters,
	// as reported by the index. Informational only.
	DistanceM float64
	Location  *Location
}

// HasLocation reports whether the hit carries any location detail at all.
func (h *Hit) HasLocation() bool {
	if h.Location == nil {
		return false
	}
	l := h.Location
	return l.HasCoords || l.PlaceID != "" || l.FormattedAddress != "" || l.LocationPhotoID != ""
}
