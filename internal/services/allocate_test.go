package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-rounds-service/internal/domain"
)

// uniformMatrix builds a travel-time matrix for stopCount stops where every
// distinct pair costs travelSec seconds.
func uniformMatrix(t *testing.T, stopCount, travelSec int) *domain.TravelTimeMatrix {
	t.Helper()

	n := stopCount + 2
	seconds := make([][]int, n)
	for i := range seconds {
		seconds[i] = make([]int, n)
		for j := range seconds[i] {
			if i != j {
				seconds[i][j] = travelSec
			}
		}
	}

	m, err := domain.NewTravelTimeMatrix(seconds, stopCount)
	require.NoError(t, err)
	return m
}

func ordinaryStops(names ...string) []domain.Stop {
	stops := make([]domain.Stop, 0, len(names))
	for i, name := range names {
		stops = append(stops, domain.Stop{ID: i + 1, Name: name})
	}
	return stops
}

// collectPositions flattens routes into the set of visited stop positions.
func collectPositions(routes []domain.DayRoute) map[int]int {
	seen := map[int]int{}
	for _, route := range routes {
		for _, pos := range route {
			seen[pos]++
		}
	}
	return seen
}

func TestAllocateDaysNoStops(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	m := uniformMatrix(t, 0, 600)

	routes, outcome := AllocateDays(nil, m, cfg)

	require.Len(t, routes, cfg.DayCount)
	for _, r := range routes {
		assert.Empty(t, r)
	}
	assert.Equal(t, OutcomeOptimized, outcome)
}

func TestAllocateDaysSingleStop(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	m := uniformMatrix(t, 1, 600)

	routes, outcome := AllocateDays(ordinaryStops("Alpha"), m, cfg)

	require.Len(t, routes, cfg.DayCount)
	assert.Equal(t, domain.DayRoute{0}, routes[0])
	assert.Empty(t, routes[1])
	assert.Equal(t, OutcomeOptimized, outcome)
}

func TestAllocateDaysCoversEveryStopExactlyOnce(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	stops := ordinaryStops("Alpha", "Bravo", "Charlie", "Delta")
	// 2.5h between every pair: two stops fit per day before the 17:30 cutoff.
	m := uniformMatrix(t, len(stops), 9000)

	routes, _ := AllocateDays(stops, m, cfg)

	require.Len(t, routes, 2)
	assert.Len(t, routes[0], 2)
	assert.Len(t, routes[1], 2)

	seen := collectPositions(routes)
	for pos := range stops {
		assert.Equal(t, 1, seen[pos], "stop position %d", pos)
	}
}

func TestAllocateDaysAnchorGoesLast(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	stops := ordinaryStops("Alpha", "Bravo", "Charlie")
	stops = append(stops, domain.Stop{ID: 4, Name: "Wellness Center", Role: domain.RoleFixedTimeAnchor})
	// Short hops: everything fits on day one even with the 17:00 anchor floor.
	m := uniformMatrix(t, len(stops), 60)

	routes, _ := AllocateDays(stops, m, cfg)

	require.Len(t, routes, 2)
	require.Len(t, routes[0], 4)
	assert.Empty(t, routes[1])

	last := routes[0][len(routes[0])-1]
	assert.Equal(t, domain.RoleFixedTimeAnchor, stops[last].Role)
}

func TestAllocateDaysOverflowAppendsToFinalDay(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	cfg.DayCount = 1
	stops := ordinaryStops("Alpha", "Bravo", "Charlie", "Delta")
	m := uniformMatrix(t, len(stops), 9000)

	routes, _ := AllocateDays(stops, m, cfg)

	require.Len(t, routes, 1)
	// Two stops fit by simulation; the remainder is appended rather than dropped.
	assert.Len(t, routes[0], 4)

	seen := collectPositions(routes)
	for pos := range stops {
		assert.Equal(t, 1, seen[pos], "stop position %d", pos)
	}
}

func TestAllocateDaysOnlyAnchors(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	stops := []domain.Stop{
		{ID: 1, Name: "Wellness Center", Role: domain.RoleFixedTimeAnchor},
		{ID: 2, Name: "Wellness Center east wing", Role: domain.RoleFixedTimeAnchor},
	}
	m := uniformMatrix(t, len(stops), 600)

	routes, outcome := AllocateDays(stops, m, cfg)

	assert.Equal(t, domain.DayRoute{0, 1}, routes[0])
	assert.Equal(t, OutcomeOptimized, outcome)
}
