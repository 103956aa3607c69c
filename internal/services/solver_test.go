package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveRouteFindsOptimumOnSmallInstance(t *testing.T) {
	// Symmetric instance where the greedy construction (0-1-2-3, cost 11) is
	// beaten by 0-1-3-2 (cost 10); 2-opt must close the gap.
	cost := [][]int{
		{0, 1, 2, 4},
		{1, 0, 5, 6},
		{2, 5, 0, 1},
		{4, 6, 1, 0},
	}

	sol := SolveRoute(cost, 0, time.Second)

	require.Equal(t, OutcomeOptimized, sol.Outcome)
	assert.Equal(t, 10, sol.CostSeconds)
	assert.ElementsMatch(t, []int{1, 2, 3}, sol.Order)
}

func TestSolveRouteSortedLineIsOptimal(t *testing.T) {
	// Points on a line; visiting in coordinate order is optimal.
	coords := []int{0, 10, 20, 30}
	n := len(coords)
	cost := make([][]int, n)
	for i := range cost {
		cost[i] = make([]int, n)
		for j := range cost[i] {
			d := coords[i] - coords[j]
			if d < 0 {
				d = -d
			}
			cost[i][j] = d
		}
	}

	sol := SolveRoute(cost, 0, time.Second)

	require.Equal(t, OutcomeOptimized, sol.Outcome)
	assert.Equal(t, []int{1, 2, 3}, sol.Order)
	assert.Equal(t, 60, sol.CostSeconds)
}

func TestSolveRouteDegenerateSizes(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		sol := SolveRoute([][]int{}, 0, time.Second)
		assert.Equal(t, OutcomeFallback, sol.Outcome)
		assert.Empty(t, sol.Order)
	})

	t.Run("single node", func(t *testing.T) {
		sol := SolveRoute([][]int{{0}}, 0, time.Second)
		assert.Equal(t, OutcomeOptimized, sol.Outcome)
		assert.Empty(t, sol.Order)
	})

	t.Run("two nodes", func(t *testing.T) {
		sol := SolveRoute([][]int{{0, 7}, {9, 0}}, 0, time.Second)
		assert.Equal(t, OutcomeOptimized, sol.Outcome)
		assert.Equal(t, []int{1}, sol.Order)
		assert.Equal(t, 16, sol.CostSeconds)
	})
}

func TestSolveRouteMalformedInputFallsBack(t *testing.T) {
	t.Run("ragged matrix", func(t *testing.T) {
		cost := [][]int{
			{0, 1, 2},
			{1, 0},
			{2, 1, 0},
		}
		sol := SolveRoute(cost, 0, time.Second)
		assert.Equal(t, OutcomeFallback, sol.Outcome)
		assert.Equal(t, []int{1, 2}, sol.Order)
	})

	t.Run("depot out of range", func(t *testing.T) {
		cost := [][]int{{0, 1}, {1, 0}}
		sol := SolveRoute(cost, 5, time.Second)
		assert.Equal(t, OutcomeFallback, sol.Outcome)
		assert.Equal(t, []int{0, 1}, sol.Order)
	})
}

func TestSolveRouteExhaustedBudgetStillReturnsValidTour(t *testing.T) {
	cost := randomCostMatrix(12, 1)

	sol := SolveRoute(cost, 0, 0)

	assert.Equal(t, OutcomeBudgetExhausted, sol.Outcome)
	assertPermutation(t, sol.Order, 1, 11)
}

func TestSolveRouteIsDeterministic(t *testing.T) {
	cost := randomCostMatrix(10, 42)

	first := SolveRoute(cost, 0, time.Second)
	second := SolveRoute(cost, 0, time.Second)

	assert.Equal(t, first.Order, second.Order)
	assert.Equal(t, first.CostSeconds, second.CostSeconds)
}

func randomCostMatrix(n int, seed int64) [][]int {
	rng := rand.New(rand.NewSource(seed))
	cost := make([][]int, n)
	for i := range cost {
		cost[i] = make([]int, n)
		for j := range cost[i] {
			if i != j {
				cost[i][j] = 60 + rng.Intn(3600)
			}
		}
	}
	return cost
}

// assertPermutation checks that order contains each of lo..hi exactly once.
func assertPermutation(t *testing.T, order []int, lo, hi int) {
	t.Helper()

	require.Len(t, order, hi-lo+1)
	seen := map[int]bool{}
	for _, v := range order {
		require.GreaterOrEqual(t, v, lo)
		require.LessOrEqual(t, v, hi)
		require.False(t, seen[v], "node %d visited twice", v)
		seen[v] = true
	}
}
