package geocode

import (
	"context"
	"errors"
	"fmt"

	"restaurant-api/models"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"
)

// ErrNoResult means the address could not be resolved to a location.
var ErrNoResult = errors.New("geocode: address not found")

// Geocoder converts a free-text address into structured location data.
type Geocoder interface {
	Locate(ctx context.Context, address string) (*models.Location, error)
}

// OSMGeocoder resolves addresses through OpenStreetMap's Nominatim service.
type OSMGeocoder struct {
	geo geo.Geocoder
}

func NewOSMGeocoder() *OSMGeocoder {
	return &OSMGeocoder{geo: openstreetmap.Geocoder()}
}

// Locate forward-geocodes the address for coordinates, then reverse-geocodes
// them to fill in the structured address fields.
func (g *OSMGeocoder) Locate(ctx context.Context, address string) (*models.Location, error) {
	loc, err := g.geo.Geocode(address)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}
	if loc == nil {
		return nil, ErrNoResult
	}

	result := &models.Location{
		Type:      "Point",
		Latitude:  loc.Lat,
		Longitude: loc.Lng,
	}
	addr, err := g.geo.ReverseGeocode(loc.Lat, loc.Lng)
	if err == nil && addr != nil {
		result.FormattedAddress = addr.FormattedAddress
		result.City = addr.City
		result.State = addr.State
		result.Zipcode = addr.Postcode
		result.Country = addr.Country
	}
	return result, nil
}
