package services

import (
	"time"

	"field-rounds-service/internal/domain"
)

// OverlapsClosure reports whether the occupied interval [arrival, departure)
// overlaps the daily forbidden visiting window.
func OverlapsClosure(arrival, departure time.Time, cfg domain.PlanConfig) bool {
	start := cfg.ClosureStart.On(arrival)
	end := cfg.ClosureEnd.On(arrival)
	return arrival.Before(end) && departure.After(start)
}

// DeferForClosure shifts an arrival past the forbidden visiting window when
// the stop's occupied interval would overlap it. Meal-break legs are exempt.
// Returns the (possibly shifted) arrival, the induced wait in minutes, and
// whether an adjustment was made.
func DeferForClosure(arrival time.Time, stayMinutes int, kind domain.EntryKind, cfg domain.PlanConfig) (time.Time, int, bool) {
	if kind == domain.EntryMealBreak {
		return arrival, 0, false
	}

	departure := arrival.Add(time.Duration(stayMinutes) * time.Minute)
	if !OverlapsClosure(arrival, departure, cfg) {
		return arrival, 0, false
	}

	adjusted := cfg.ClosureEnd.On(arrival)
	wait := int(adjusted.Sub(arrival).Minutes())
	return adjusted, wait, true
}

// ApplyArrivalFloor snaps an arrival up to the fixed floor time.
// Arrivals at or after the floor pass through unchanged; late arrivals are
// never penalized or rescheduled.
func ApplyArrivalFloor(arrival time.Time, floor domain.ClockTime) (time.Time, int) {
	target := floor.On(arrival)
	if arrival.Before(target) {
		return target, int(target.Sub(arrival).Minutes())
	}
	return arrival, 0
}
