package chi

import "github.com/artloci/nearby/internal/domain/hit"

type errorCode string

const (
	codeInvalidQuery      errorCode = "invalid_query"
	codeSearchUnavailable errorCode = "search_unavailable"
	codeUnauthorized      errorCode = "unauthorized"
	codeInternalError     errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type nearbyResponse struct {
	Items []productItem `json:"items"`
	Count int           `json:"count"`
}

type productItem struct {
	Handle    string        `json:"handle"`
	Title     string        `json:"title"`
	ImageURL  string        `json:"image_url,omitempty"`
	Price     *float64      `json:"price,omitempty"`
	Featured  bool          `json:"featured,omitempty"`
	DistanceM float64       `json:"distance_m,omitempty"`
	Location  *locationItem `json:"location,omitempty"`
}

type locationItem struct {
	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lng,omitempty"`
	PlaceID   string   `json:"place_id,omitempty"`
	Address   string   `json:"address,omitempty"`
	Style     string   `json:"style,omitempty"`
}

func productToItem(h hit.Hit) productItem {
	item := productItem{
		Handle:    h.Handle,
		Title:     h.Title,
		ImageURL:  h.ImageURL,
		Featured:  h.Featured,
		DistanceM: h.DistanceM,
	}
	if h.HasPrice {
		p := h.Price
		item.Price = &p
	}
	if h.Location != nil {
		loc := &locationItem{
			PlaceID: h.Location.PlaceID,
			Address: h.Location.FormattedAddress,
			Style:   h.Location.StyleName,
		}
		if h.Location.HasCoords {
			lat, lng := h.Location.Latitude, h.Location.Longitude
			loc.Latitude = &lat
			loc.Longitude = &lng
		}
		item.Location = loc
	}
	return item
}
