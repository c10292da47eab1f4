package products

import (
	"strconv"
	"strings"

	"github.com/artloci/nearby/internal/db"
	"github.com/artloci/nearby/internal/domain/geo"
	"github.com/artloci/nearby/internal/domain/hit"
)

// Hash field names in the product index.
const (
	fieldTitle    = "title"
	fieldImageURL = "image_url"
	fieldPrice    = "price"
	fieldLat      = "lat"
	fieldLng      = "lng"
	fieldPlaceID  = "place_id"
	fieldAddress  = "address"
	fieldPhotoID  = "location_photo_id"
	fieldStyle    = "style"
	fieldFeatured = "featured"
)

var returnFields = []string{
	fieldTitle, fieldImageURL, fieldPrice,
	fieldLat, fieldLng, fieldPlaceID, fieldAddress, fieldPhotoID,
	fieldStyle, fieldFeatured,
}

// parseEntry converts one FT.SEARCH entry into a domain hit. The document
// key minus the store prefix is the product handle; malformed numeric
// fields degrade to "absent" rather than failing the whole batch.
func parseEntry(entry db.SearchEntry, prefix string) hit.Hit {
	h := hit.Hit{
		Handle:    strings.TrimPrefix(entry.Key, prefix),
		Title:     entry.Fields[fieldTitle],
		ImageURL:  entry.Fields[fieldImageURL],
		DistanceM: geo.L2ToMeters(entry.Score),
		Featured:  parseBool(entry.Fields[fieldFeatured]),
	}

	if p, err := strconv.ParseFloat(entry.Fields[fieldPrice], 64); err == nil {
		h.Price = p
		h.HasPrice = true
	}

	loc := hit.Location{
		PlaceID:          entry.Fields[fieldPlaceID],
		FormattedAddress: entry.Fields[fieldAddress],
		LocationPhotoID:  entry.Fields[fieldPhotoID],
		StyleName:        entry.Fields[fieldStyle],
	}

	lat, latErr := strconv.ParseFloat(entry.Fields[fieldLat], 64)
	lng, lngErr := strconv.ParseFloat(entry.Fields[fieldLng], 64)
	if latErr == nil && lngErr == nil {
		loc.Latitude = lat
		loc.Longitude = lng
		loc.HasCoords = true
	}

	if loc != (hit.Location{}) {
		h.Location = &loc
	}
	return h
}

func parseBool(s string) bool {
	return s == "1" || s == "true"
}
