package services

import (
	"log"
	"sort"
	"time"

	"field-rounds-service/internal/domain"
)

type fillerHit struct {
	day int
	pos int
	idx int
}

// RelocateFillers moves the two relocatable filler tasks (head-office work
// block, warehouse check) into the idle gap before the fixed-time anchor when
// that gap is large enough to hold both plus the connecting travel.
//
// The input routes are never mutated; a fresh route set is returned. When no
// anchor exists, the gap is too small, or a filler is absent, the routes are
// returned unchanged.
func RelocateFillers(routes []domain.DayRoute, stops []domain.Stop, m *domain.TravelTimeMatrix, cfg domain.PlanConfig) []domain.DayRoute {
	out := domain.CloneRoutes(routes)

	anchorDay, _ := findAnchor(out, stops)
	if anchorDay < 0 {
		return out
	}

	gap := anchorGapMinutes(out[anchorDay], stops, m, cfg)
	if gap < cfg.GapThresholdMin {
		log.Printf("gapfill: skipped gap_min=%d threshold=%d", gap, cfg.GapThresholdMin)
		return out
	}

	hqStay := masterStay(domain.RoleFillerHQTask, cfg)
	warehouseStay := masterStay(domain.RoleFillerWarehouse, cfg)
	requiredMin := hqStay + cfg.HQToWarehouseSeconds/60 + warehouseStay + cfg.WarehouseToAnchorSeconds/60
	if gap < requiredMin {
		log.Printf("gapfill: skipped gap_min=%d required_min=%d", gap, requiredMin)
		return out
	}

	var hqHit, warehouseHit *fillerHit
	for day, route := range out {
		if day == anchorDay {
			continue
		}
		for pos, idx := range route {
			switch stops[idx].Role {
			case domain.RoleFillerHQTask:
				if hqHit == nil {
					hqHit = &fillerHit{day: day, pos: pos, idx: idx}
				}
			case domain.RoleFillerWarehouse:
				if warehouseHit == nil {
					warehouseHit = &fillerHit{day: day, pos: pos, idx: idx}
				}
			}
		}
	}

	var hits []fillerHit
	if hqHit != nil {
		hits = append(hits, *hqHit)
	}
	if warehouseHit != nil {
		hits = append(hits, *warehouseHit)
	}
	if len(hits) == 0 {
		return out
	}

	// Remove higher positions first so earlier removals in the same day do
	// not invalidate later ones.
	removals := append([]fillerHit(nil), hits...)
	sort.Slice(removals, func(a, b int) bool {
		if removals[a].day != removals[b].day {
			return removals[a].day > removals[b].day
		}
		return removals[a].pos > removals[b].pos
	})
	for _, h := range removals {
		route := out[h.day]
		out[h.day] = append(route[:h.pos], route[h.pos+1:]...)
	}

	// Re-locate the anchor (positions may have shifted) and insert the
	// fillers immediately before it, HQ task first.
	_, insertAt := findAnchorInRoute(out[anchorDay], stops)
	if insertAt < 0 {
		return out
	}
	if hqHit != nil {
		out[anchorDay] = insertStop(out[anchorDay], insertAt, hqHit.idx)
		insertAt++
	}
	if warehouseHit != nil {
		out[anchorDay] = insertStop(out[anchorDay], insertAt, warehouseHit.idx)
	}

	return out
}

// anchorGapMinutes simulates the anchor day up to the anchor's raw arrival
// (before any floor snap) and returns the idle minutes until the floor.
func anchorGapMinutes(route domain.DayRoute, stops []domain.Stop, m *domain.TravelTimeMatrix, cfg domain.PlanConfig) int {
	anchorIdx, anchorPos := findAnchorInRoute(route, stops)
	if anchorPos < 0 {
		return 0
	}

	ref := planDay()
	current := cfg.FirstArrival.On(ref)
	prevIdx := domain.SecondaryBaseIndex

	for i, pos := range route {
		if i == anchorPos {
			break
		}
		stop := stops[pos]
		mi := domain.StopMatrixIndex(pos)
		stay := ResolveStayMinutes(stop, cfg)

		arrival := current
		if i > 0 {
			arrival = current.Add(secondsDur(m.Seconds(prevIdx, mi)))
		}

		departure := arrival.Add(minutesDur(stay))
		if i == 0 {
			departure = departure.Add(minutesDur(cfg.MeetingMinutes))
		}

		current = departure
		prevIdx = mi
	}

	anchorMatrixIdx := domain.StopMatrixIndex(anchorIdx)
	var travel time.Duration
	if anchorPos > 0 {
		travel = secondsDur(m.Seconds(domain.StopMatrixIndex(route[anchorPos-1]), anchorMatrixIdx))
	} else {
		travel = secondsDur(m.Seconds(domain.SecondaryBaseIndex, anchorMatrixIdx))
	}

	arrival := current.Add(travel)
	floor := cfg.AnchorFloor.On(ref)
	if arrival.Before(floor) {
		return int(floor.Sub(arrival).Minutes())
	}
	return 0
}

func findAnchor(routes []domain.DayRoute, stops []domain.Stop) (day, pos int) {
	for d, route := range routes {
		if _, p := findAnchorInRoute(route, stops); p >= 0 {
			return d, p
		}
	}
	return -1, -1
}

// findAnchorInRoute returns the anchor's stop position and its index within
// the route, or (-1, -1) when the route has no anchor.
func findAnchorInRoute(route domain.DayRoute, stops []domain.Stop) (stopPos, routePos int) {
	for p, idx := range route {
		if stops[idx].Role == domain.RoleFixedTimeAnchor {
			return idx, p
		}
	}
	return -1, -1
}

func insertStop(route domain.DayRoute, at, idx int) domain.DayRoute {
	route = append(route, 0)
	copy(route[at+1:], route[at:])
	route[at] = idx
	return route
}

// masterStay returns the canonical dwell for the singleton filler roles.
func masterStay(role domain.StopRole, cfg domain.PlanConfig) int {
	for _, m := range domain.MasterLocations {
		if m.Role == role {
			return m.StayMin
		}
	}
	return cfg.DefaultStayMin
}
