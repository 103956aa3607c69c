package traveltime

import (
	"context"
	"math"

	"github.com/golang/geo/s2"

	"field-rounds-service/internal/domain"
)

const (
	earthRadiusMeters = 6371000.0

	// Average road speed assumed when estimating drive times offline.
	// Rural-road figure; surface routes are slower than the straight line,
	// so the detour factor pads the great-circle distance.
	estimatorSpeedKmh   = 40.0
	estimatorDetourCoef = 1.3
)

// GreatCircleEstimator is an offline TravelTimeProvider used when no API key
// is configured. It estimates drive times from great-circle distances at a
// fixed road speed with a detour factor.
//
// Estimates are symmetric and deterministic, which keeps the planner fully
// functional for development and tests.
type GreatCircleEstimator struct{}

func NewGreatCircleEstimator() *GreatCircleEstimator {
	return &GreatCircleEstimator{}
}

func (e *GreatCircleEstimator) DurationMatrix(_ context.Context, locations []domain.Coordinates) ([][]int, error) {
	n := len(locations)
	points := make([]s2.LatLng, n)
	for i, loc := range locations {
		points[i] = s2.LatLngFromDegrees(loc.Lat, loc.Lon)
	}

	matrix := make([][]int, n)
	for i := range matrix {
		matrix[i] = make([]int, n)
		for j := range matrix[i] {
			if i == j {
				continue
			}
			meters := points[i].Distance(points[j]).Radians() * earthRadiusMeters
			roadMeters := meters * estimatorDetourCoef
			seconds := roadMeters / (estimatorSpeedKmh * 1000 / 3600)
			matrix[i][j] = int(math.Round(seconds))
		}
	}
	return matrix, nil
}
