package services

import (
	"time"
)

// SolveOutcome distinguishes how a route solution was obtained, so callers
// can choose to warn on best-effort results.
type SolveOutcome int

const (
	// OutcomeOptimized: local search converged within the time budget.
	OutcomeOptimized SolveOutcome = iota
	// OutcomeBudgetExhausted: the budget expired before convergence; the
	// returned order is valid but possibly suboptimal.
	OutcomeBudgetExhausted
	// OutcomeFallback: the input was malformed and the natural order was
	// returned unchanged.
	OutcomeFallback
)

func (o SolveOutcome) String() string {
	switch o {
	case OutcomeBudgetExhausted:
		return "budget_exhausted"
	case OutcomeFallback:
		return "fallback"
	default:
		return "optimized"
	}
}

// RouteSolution is the result of a single-route solve.
type RouteSolution struct {
	// Order lists the non-depot node indices of the cost matrix in visiting order.
	Order []int
	// CostSeconds is the closed-tour cost including the return arc to the depot.
	CostSeconds int
	Outcome     SolveOutcome
}

// SolveRoute computes a visiting order of all non-depot nodes of a cost
// matrix, minimizing total arc cost. The tour is built with a greedy
// nearest-arc construction and improved with deterministic first-improvement
// 2-opt and Or-opt local search under a wall-clock budget.
//
// SolveRoute never fails: a malformed matrix degrades to the natural order
// and a budget expiry returns the best tour found so far.
func SolveRoute(cost [][]int, depot int, budget time.Duration) RouteSolution {
	n := len(cost)

	if depot < 0 || depot >= n || !isSquare(cost) {
		return RouteSolution{Order: naturalOrder(n, depot), Outcome: OutcomeFallback}
	}

	switch n {
	case 0, 1:
		return RouteSolution{Order: []int{}, Outcome: OutcomeOptimized}
	case 2:
		other := 1 - depot
		return RouteSolution{
			Order:       []int{other},
			CostSeconds: cost[depot][other] + cost[other][depot],
			Outcome:     OutcomeOptimized,
		}
	}

	deadline := time.Now().Add(budget)

	tour := nearestArcTour(cost, depot)
	outcome := OutcomeOptimized
	if !improveTour(cost, tour, deadline) {
		outcome = OutcomeBudgetExhausted
	}

	return RouteSolution{
		Order:       tour[1:],
		CostSeconds: tourCost(cost, tour),
		Outcome:     outcome,
	}
}

func isSquare(cost [][]int) bool {
	for _, row := range cost {
		if len(row) != len(cost) {
			return false
		}
	}
	return true
}

func naturalOrder(n, depot int) []int {
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i != depot {
			order = append(order, i)
		}
	}
	return order
}

// nearestArcTour builds an initial closed tour greedily, always taking the
// cheapest arc to an unvisited node. Ties break on the lower index so the
// construction is deterministic.
func nearestArcTour(cost [][]int, depot int) []int {
	n := len(cost)
	tour := make([]int, 0, n)
	tour = append(tour, depot)

	visited := make([]bool, n)
	visited[depot] = true
	current := depot

	for len(tour) < n {
		best := -1
		for cand := 0; cand < n; cand++ {
			if visited[cand] {
				continue
			}
			if best == -1 || cost[current][cand] < cost[current][best] {
				best = cand
			}
		}
		visited[best] = true
		tour = append(tour, best)
		current = best
	}

	return tour
}

func tourCost(cost [][]int, tour []int) int {
	total := 0
	for i := 0; i < len(tour); i++ {
		total += cost[tour[i]][tour[(i+1)%len(tour)]]
	}
	return total
}

// improveTour runs first-improvement 2-opt and Or-opt passes until a full
// sweep finds no improving move or the deadline expires. Returns false when
// the deadline cut the search short. The tour is modified in place; its
// first element (the depot) never moves.
func improveTour(cost [][]int, tour []int, deadline time.Time) bool {
	var step int
	expired := func() bool {
		step++
		if step&255 != 0 {
			return false
		}
		return time.Now().After(deadline)
	}

	for {
		improved := false

		twoOptPass(cost, tour, expired, &improved)
		if time.Now().After(deadline) {
			return false
		}
		orOptPass(cost, tour, expired, &improved)
		if time.Now().After(deadline) {
			return false
		}

		if !improved {
			return true
		}
	}
}

// twoOptPass reverses a segment when doing so shortens the tour. The delta
// is evaluated over all affected arcs, including the reversed inner arcs,
// so asymmetric matrices are handled correctly.
func twoOptPass(cost [][]int, tour []int, expired func() bool, improved *bool) {
	n := len(tour)
	for i := 1; i < n-1; i++ {
		for k := i + 1; k < n; k++ {
			if expired() {
				return
			}
			if segmentReversalDelta(cost, tour, i, k) < 0 {
				reverse(tour, i, k)
				*improved = true
			}
		}
	}
}

func segmentReversalDelta(cost [][]int, tour []int, i, k int) int {
	n := len(tour)
	prev := tour[i-1]
	next := tour[(k+1)%n]

	before := cost[prev][tour[i]] + cost[tour[k]][next]
	after := cost[prev][tour[k]] + cost[tour[i]][next]
	for p := i; p < k; p++ {
		before += cost[tour[p]][tour[p+1]]
		after += cost[tour[p+1]][tour[p]]
	}
	return after - before
}

func reverse(tour []int, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}

// orOptPass relocates short segments (lengths 1..3) to a cheaper position.
// Segment orientation is preserved, so the move is exact for asymmetric
// matrices with a constant-time delta.
func orOptPass(cost [][]int, tour []int, expired func() bool, improved *bool) {
	n := len(tour)
	for segLen := 1; segLen <= 3 && segLen < n-1; segLen++ {
		for i := 1; i+segLen <= n; i++ {
			if expired() {
				return
			}

			segStart := tour[i]
			segEnd := tour[i+segLen-1]
			prev := tour[i-1]
			next := tour[(i+segLen)%n]

			removeGain := cost[prev][segStart] + cost[segEnd][next] - cost[prev][next]

			for j := 0; j < n; j++ {
				// Insertion point must lie outside the segment.
				if j >= i-1 && j < i+segLen {
					continue
				}
				a := tour[j]
				b := tour[(j+1)%n]
				insertCost := cost[a][segStart] + cost[segEnd][b] - cost[a][b]
				if insertCost-removeGain < 0 {
					relocate(tour, i, segLen, j)
					*improved = true
					// Positions shifted; rescan on the next sweep.
					i = 0
					break
				}
			}
			if i == 0 {
				break
			}
		}
	}
}

// relocate moves tour[i:i+segLen] so it follows the element currently at
// position j (j outside the segment).
func relocate(tour []int, i, segLen, j int) {
	seg := make([]int, segLen)
	copy(seg, tour[i:i+segLen])

	rest := make([]int, 0, len(tour)-segLen)
	rest = append(rest, tour[:i]...)
	rest = append(rest, tour[i+segLen:]...)

	// Index of the insertion anchor within rest.
	anchor := j
	if j > i {
		anchor = j - segLen
	}

	out := make([]int, 0, len(tour))
	out = append(out, rest[:anchor+1]...)
	out = append(out, seg...)
	out = append(out, rest[anchor+1:]...)
	copy(tour, out)
}
