package resultcache

import "github.com/artloci/nearby/internal/domain/hit"

// cachedHit is the JSON shape of one stored hit.
type cachedHit struct {
	Handle    string          `json:"handle"`
	Title     string          `json:"title"`
	ImageURL  string          `json:"image_url,omitempty"`
	Price     *float64        `json:"price,omitempty"`
	Featured  bool            `json:"featured,omitempty"`
	DistanceM float64         `json:"distance_m,omitempty"`
	Location  *cachedLocation `json:"location,omitempty"`
}

type cachedLocation struct {
	Latitude        *float64 `json:"lat,omitempty"`
	Longitude       *float64 `json:"lng,omitempty"`
	PlaceID         string   `json:"place_id,omitempty"`
	Address         string   `json:"address,omitempty"`
	LocationPhotoID string   `json:"location_photo_id,omitempty"`
	StyleName       string   `json:"style,omitempty"`
}

func fromDomain(h hit.Hit) cachedHit {
	d := cachedHit{
		Handle:    h.Handle,
		Title:     h.Title,
		ImageURL:  h.ImageURL,
		Featured:  h.Featured,
		DistanceM: h.DistanceM,
	}
	if h.HasPrice {
		p := h.Price
		d.Price = &p
	}
	if h.Location != nil {
		l := &cachedLocation{
			PlaceID:         h.Location.PlaceID,
			Address:         h.Location.FormattedAddress,
			LocationPhotoID: h.Location.LocationPhotoID,
			StyleName:       h.Location.StyleName,
		}
		if h.Location.HasCoords {
			lat, lng := h.Location.Latitude, h.Location.Longitude
			l.Latitude = &lat
			l.Longitude = &lng
		}
		d.Location = l
	}
	return d
}

func (d cachedHit) toDomain() hit.Hit {
	h := hit.Hit{
		Handle:    d.Handle,
		Title:     d.Title,
		ImageURL:  d.ImageURL,
		Featured:  d.Featured,
		DistanceM: d.DistanceM,
	}
	if d.Price != nil {
		h.Price = *d.Price
		h.HasPrice = true
	}
	if d.Location != nil {
		l := &hit.Location{
			PlaceID:          d.Location.PlaceID,
			FormattedAddress: d.Location.Address,
			LocationPhotoID:  d.Location.LocationPhotoID,
			StyleName:        d.Location.StyleName,
		}
		if d.Location.Latitude != nil && d.Location.Longitude != nil {
			l.Latitude = *d.Location.Latitude
			l.Longitude = *d.Location.Longitude
			l.HasCoords = true
		}
		h.Location = l
	}
	return h
}
