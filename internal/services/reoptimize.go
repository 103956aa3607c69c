package services

import "field-rounds-service/internal/domain"

// ReoptimizeDay re-solves the visiting order for one day's stop set, with
// the secondary base as depot. Fixed-time anchors are separated first and
// re-appended at the tail in their original relative order, so the anchor
// invariant survives arbitrary manual edits. Sizes 0 and 1 pass through
// unchanged.
func ReoptimizeDay(route domain.DayRoute, stops []domain.Stop, m *domain.TravelTimeMatrix, cfg domain.PlanConfig) domain.DayRoute {
	if len(route) <= 1 {
		return route.Clone()
	}

	var anchors, rest []int
	for _, idx := range route {
		if stops[idx].Role == domain.RoleFixedTimeAnchor {
			anchors = append(anchors, idx)
		} else {
			rest = append(rest, idx)
		}
	}

	if len(rest) == 0 {
		return domain.DayRoute(anchors)
	}

	order, _ := solveVisitOrder(rest, m, cfg.SolverBudget)
	return domain.DayRoute(append(order, anchors...))
}
