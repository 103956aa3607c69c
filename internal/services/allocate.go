package services

import (
	"time"

	"field-rounds-service/internal/domain"
)

// planDay is the reference date all simulated clock times are anchored to.
// Only times of day matter; the date never leaves the planner.
func planDay() time.Time {
	return time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func secondsDur(s int) time.Duration { return time.Duration(s) * time.Second }
func minutesDur(m int) time.Duration { return time.Duration(m) * time.Minute }

// solveVisitOrder runs the route solver over the secondary base plus the
// given stop positions (secondary base as depot) and maps the solved order
// back to stop positions.
func solveVisitOrder(positions []int, m *domain.TravelTimeMatrix, budget time.Duration) ([]int, SolveOutcome) {
	if len(positions) <= 1 {
		out := make([]int, len(positions))
		copy(out, positions)
		return out, OutcomeOptimized
	}

	indices := make([]domain.MatrixIndex, 0, 1+len(positions))
	indices = append(indices, domain.SecondaryBaseIndex)
	for _, p := range positions {
		indices = append(indices, domain.StopMatrixIndex(p))
	}

	sub, err := m.SubMatrix(indices)
	if err != nil {
		out := make([]int, len(positions))
		copy(out, positions)
		return out, OutcomeFallback
	}

	sol := SolveRoute(sub, 0, budget)

	order := make([]int, 0, len(sol.Order))
	for _, local := range sol.Order {
		order = append(order, positions[local-1])
	}
	return order, sol.Outcome
}

// AllocateDays produces one day route per reserved day, covering every stop
// exactly once.
//
// A single route solve over the flexible stops yields a geographically
// coherent global order; fixed-time anchors are appended at the tail. The
// combined order is then cut into days by forward time simulation against
// the daily end cutoff. Stops left over after the last day opens are
// appended in full to the final day rather than dropped.
func AllocateDays(stops []domain.Stop, m *domain.TravelTimeMatrix, cfg domain.PlanConfig) ([]domain.DayRoute, SolveOutcome) {
	routes := make([]domain.DayRoute, cfg.DayCount)
	for i := range routes {
		routes[i] = domain.DayRoute{}
	}

	switch len(stops) {
	case 0:
		return routes, OutcomeOptimized
	case 1:
		routes[0] = domain.DayRoute{0}
		return routes, OutcomeOptimized
	}

	var fixed, flexible []int
	for pos, s := range stops {
		if s.Role == domain.RoleFixedTimeAnchor {
			fixed = append(fixed, pos)
		} else {
			flexible = append(flexible, pos)
		}
	}

	if len(flexible) == 0 {
		routes[0] = domain.DayRoute(fixed)
		return routes, OutcomeOptimized
	}

	order, outcome := solveVisitOrder(flexible, m, cfg.SolverBudget)
	order = append(order, fixed...)

	ref := planDay()
	secondary := domain.SecondaryBase()

	day := 0
	cursor := 0
	for cursor < len(order) && day < cfg.DayCount {
		dayVisits := domain.DayRoute{}

		firstArrival := cfg.FirstArrival.On(ref)
		endLimit := cfg.DayEndCutoff.On(ref)

		current := firstArrival
		prevIdx := domain.SecondaryBaseIndex

		for cursor < len(order) {
			pos := order[cursor]
			stop := stops[pos]
			mi := domain.StopMatrixIndex(pos)
			stay := ResolveStayMinutes(stop, cfg)

			var arrival time.Time
			if len(dayVisits) == 0 {
				arrival = firstArrival
			} else {
				arrival = current.Add(secondsDur(m.Seconds(prevIdx, mi)))
			}

			// Anchors keep their slot in the geographic order but never
			// begin before the floor.
			if stop.Role == domain.RoleFixedTimeAnchor {
				arrival, _ = ApplyArrivalFloor(arrival, cfg.AnchorFloor)
			}

			departure := arrival.Add(minutesDur(stay))
			if len(dayVisits) == 0 {
				departure = departure.Add(minutesDur(cfg.MeetingMinutes))
			}

			// Projected day end includes the full return: stop -> secondary
			// base dwell -> primary base.
			estimatedEnd := departure.
				Add(secondsDur(m.Seconds(mi, domain.SecondaryBaseIndex))).
				Add(minutesDur(secondary.StayMin)).
				Add(secondsDur(m.Seconds(domain.SecondaryBaseIndex, domain.PrimaryBaseIndex)))

			if estimatedEnd.After(endLimit) && len(dayVisits) > 0 {
				break
			}

			dayVisits = append(dayVisits, pos)
			current = departure
			prevIdx = mi
			cursor++
		}

		routes[day] = dayVisits
		day++
	}

	// Soft overflow: whatever remains goes to the final day.
	if cursor < len(order) {
		routes[cfg.DayCount-1] = append(routes[cfg.DayCount-1], order[cursor:]...)
	}

	return routes, outcome
}
