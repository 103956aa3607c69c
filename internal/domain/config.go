package domain

import (
	"fmt"
	"time"
)

// ClockTime is a time of day independent of any date.
type ClockTime struct {
	Hour   int
	Minute int
}

// On anchors the clock time to the date of ref.
func (c ClockTime) On(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), c.Hour, c.Minute, 0, 0, ref.Location())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// PlanConfig carries the scheduling constants for one planning run.
type PlanConfig struct {
	// DayCount is the number of days reserved for the rounds.
	DayCount int

	// FirstArrival is the fixed arrival time at each day's first stop.
	FirstArrival ClockTime
	// DayEndCutoff is the per-day effective-end-time limit used when slicing
	// the global order into days.
	DayEndCutoff ClockTime

	// MeetingMinutes is the on-site meeting overhead added to each day's first stop.
	MeetingMinutes int

	// LunchEarliest is the clock threshold after which the meal break is
	// inserted before the next stop.
	LunchEarliest ClockTime
	// LunchMinutes is the fixed meal-break duration.
	LunchMinutes int

	// ClosureStart/ClosureEnd bound the counterparty lunch closure during
	// which no non-exempt stop may be occupied.
	ClosureStart ClockTime
	ClosureEnd   ClockTime

	// AnchorFloor is the earliest allowed start time at the fixed-time anchor.
	AnchorFloor ClockTime

	// DefaultStayMin is the dwell applied when no resolver rule matches.
	DefaultStayMin int

	// GapThresholdMin is the minimum pre-anchor idle gap that triggers
	// filler relocation.
	GapThresholdMin int
	// HQToWarehouseSeconds and WarehouseToAnchorSeconds are the fixed travel
	// estimates used when sizing the filler block.
	HQToWarehouseSeconds     int
	WarehouseToAnchorSeconds int

	// SolverBudget bounds the local-search phase of the route solver.
	SolverBudget time.Duration

	// WorkHoursPerDay is the standard working time used for overtime advisories.
	WorkHoursPerDay float64
}

// DefaultPlanConfig returns the production scheduling constants.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		DayCount:                 2,
		FirstArrival:             ClockTime{Hour: 8},
		DayEndCutoff:             ClockTime{Hour: 17, Minute: 30},
		MeetingMinutes:           10,
		LunchEarliest:            ClockTime{Hour: 11, Minute: 30},
		LunchMinutes:             60,
		ClosureStart:             ClockTime{Hour: 12},
		ClosureEnd:               ClockTime{Hour: 13},
		AnchorFloor:              ClockTime{Hour: 17},
		DefaultStayMin:           20,
		GapThresholdMin:          100,
		HQToWarehouseSeconds:     600,
		WarehouseToAnchorSeconds: 900,
		SolverBudget:             15 * time.Second,
		WorkHoursPerDay:          8,
	}
}
