package ports

import (
	"context"
	"field-rounds-service/internal/domain"
)

// Contract for the external travel-time oracle.
type TravelTimeProvider interface {
	// DurationMatrix returns directional travel times in seconds between all
	// ordered pairs of the given locations. Every pair must carry a value;
	// unresolved pairs are represented with domain.UnreachableSeconds rather
	// than omitted.
	DurationMatrix(ctx context.Context, locations []domain.Coordinates) ([][]int, error)
}
