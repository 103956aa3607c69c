package ports

import (
	"context"

	"field-rounds-service/internal/domain"
)

// ImportedMap is the outcome of pulling stops from a shared map document.
type ImportedMap struct {
	Name       string
	Stops      []domain.Stop
	Layers     []string
	Advisories []string
}

// Contract for importing a stop selection from an external map source.
type MapImporter interface {
	// Import fetches the map with the given id and converts its placemarks in
	// the included layers into stops. An empty includeLayers means all layers.
	Import(ctx context.Context, mapID string, includeLayers []string) (*ImportedMap, error)
}
