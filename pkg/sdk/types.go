package sdk

// Product is one curated product in a nearby result page.
type Product struct {
	Handle    string    `json:"handle"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url,omitempty"`
	Price     *float64  `json:"price,omitempty"`
	Featured  bool      `json:"featured,omitempty"`
	DistanceM float64   `json:"distance_m,omitempty"`
	Location  *Location `json:"location,omitempty"`
}

// Location describes where a product was made or photographed.
type Location struct {
	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lng,omitempty"`
	PlaceID   string   `json:"place_id,omitempty"`
	Address   string   `json:"address,omitempty"`
	Style     string   `json:"style,omitempty"`
}

// NearbyRequest holds the query parameters for a nearby search.
// Lat and Lng are required; zero values for the rest use server defaults.
type NearbyRequest struct {
	Lat         float64
	Lng         float64
	RadiusM     float64
	Count       int
	MaxPerGroup int
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type nearbyResponse struct {
	Items []Product `json:"items"`
	Count int       `json:"count"`
}
