// Package geo provides the user-location and nearby-supermarket
// collaborators consumed by the comparison session.
package geo

import (
	"context"
	"errors"
	"math"

	"github.com/samirnagib/app-lista-compras/internal/domain"
)

// ErrLocationUnavailable signals that no user position could be
// resolved. Callers treat it as an empty state, not a fault.
var ErrLocationUnavailable = errors.New("user location unavailable")

// LocationProvider resolves the user's current position.
type LocationProvider interface {
	UserLocation(ctx context.Context) (*domain.Location, error)
}

// Finder returns candidate supermarkets near a position, sorted
// ascending by distance.
type Finder interface {
	NearbySupermarkets(ctx context.Context, loc domain.Location) ([]domain.Supermarket, error)
}

// StaticLocation is a LocationProvider pinned to a fixed position,
// typically loaded from configuration. The zero value reports
// ErrLocationUnavailable.
type StaticLocation struct {
	Location *domain.Location
}

func (s StaticLocation) UserLocation(context.Context) (*domain.Location, error) {
	if s.Location == nil {
		return nil, ErrLocationUnavailable
	}
	return s.Location, nil
}

const earthRadiusKm = 6371

// Distance returns the haversine distance between two points in km.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
