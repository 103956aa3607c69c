package traveltime

import (
	"context"
	"testing"

	"field-rounds-service/internal/domain"
)

func TestGreatCircleEstimatorMatrix(t *testing.T) {
	e := NewGreatCircleEstimator()

	locations := []domain.Coordinates{
		{Lat: 39.0, Lon: 141.0},
		{Lat: 40.0, Lon: 141.0}, // ~111km due north
		{Lat: 39.0, Lon: 141.0}, // same point as the first
	}

	m, err := e.DurationMatrix(context.Background(), locations)
	if err != nil {
		t.Fatalf("DurationMatrix: %v", err)
	}

	if len(m) != 3 {
		t.Fatalf("got %d rows, want 3", len(m))
	}
	for i := range m {
		if m[i][i] != 0 {
			t.Errorf("diagonal (%d,%d) = %d, want 0", i, i, m[i][i])
		}
	}

	// One degree of latitude is ~111km; with the 1.3 detour factor at 40km/h
	// that is roughly 3.6h of driving.
	got := m[0][1]
	if got < 12000 || got > 14500 {
		t.Errorf("estimate = %ds, want roughly 13000s", got)
	}

	if m[0][1] != m[1][0] {
		t.Errorf("estimates must be symmetric: %d vs %d", m[0][1], m[1][0])
	}
	if m[0][2] != 0 {
		t.Errorf("identical points should cost 0, got %d", m[0][2])
	}
}
