package ports

import (
	"context"
	"field-rounds-service/internal/domain"
)

// Resolved coordinates for a free-text address.
type GeocodeResult struct {
	Coords           domain.Coordinates
	FormattedAddress string
}

// Contract for resolving free-text addresses to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (GeocodeResult, error)
}
