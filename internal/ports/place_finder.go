package ports

import (
	"context"
	"field-rounds-service/internal/domain"
)

// A nearby point of interest, used only to label the meal-break leg.
type Place struct {
	Name     string
	Vicinity string
	Rating   float64
	Coords   domain.Coordinates
}

// Contract for the cosmetic point-of-interest lookup. Absence or failure of
// an implementation must never block timetable generation.
type PlaceFinder interface {
	// FindRestaurants returns up to limit restaurants near the given point,
	// best-rated first.
	FindRestaurants(ctx context.Context, at domain.Coordinates, limit int) ([]Place, error)
}
