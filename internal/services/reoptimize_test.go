package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-rounds-service/internal/domain"
)

func TestReoptimizeDayKeepsAnchorAtTail(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	stops := []domain.Stop{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Wellness Center", Role: domain.RoleFixedTimeAnchor},
		{ID: 3, Name: "Bravo"},
		{ID: 4, Name: "Charlie"},
	}
	m := uniformMatrix(t, len(stops), 600)

	// Manual edits can leave the anchor anywhere; re-optimizing must push it
	// back to the tail.
	out := ReoptimizeDay(domain.DayRoute{1, 0, 2, 3}, stops, m, cfg)

	require.Len(t, out, 4)
	assert.Equal(t, 1, out[len(out)-1])
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, []int(out))
}

func TestReoptimizeDayIsIdempotent(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	stops := []domain.Stop{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Bravo"},
		{ID: 3, Name: "Charlie"},
	}
	m := uniformMatrix(t, len(stops), 600)

	once := ReoptimizeDay(domain.DayRoute{2, 0, 1}, stops, m, cfg)
	twice := ReoptimizeDay(once, stops, m, cfg)

	assert.Equal(t, once, twice)
}

func TestReoptimizeDaySmallRoutesPassThrough(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	stops := []domain.Stop{{ID: 1, Name: "Alpha"}}
	m := uniformMatrix(t, len(stops), 600)

	assert.Equal(t, domain.DayRoute{0}, ReoptimizeDay(domain.DayRoute{0}, stops, m, cfg))
	assert.Empty(t, ReoptimizeDay(domain.DayRoute{}, stops, m, cfg))
}
