package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"field-rounds-service/internal/domain"
	"field-rounds-service/internal/ports"
)

// BuildDayTimetable runs the deterministic forward pass over one day's route
// and produces the per-leg schedule plus aggregate metrics.
//
// The day always has the same frame: primary-base departure, secondary-base
// pickup, the stops in route order (the first split into meeting and work
// legs, with a meal break inserted once the clock passes the lunch
// threshold), secondary-base drop-off, primary-base return. The lunch
// closure and anchor-floor policies are applied per stop.
//
// finder may be nil; it only affects the meal-break label.
func BuildDayTimetable(
	ctx context.Context,
	day int,
	route domain.DayRoute,
	stops []domain.Stop,
	m *domain.TravelTimeMatrix,
	cfg domain.PlanConfig,
	finder ports.PlaceFinder,
) domain.DayTimetable {
	if len(route) == 0 {
		return domain.DayTimetable{Day: day, Entries: []domain.TimetableEntry{}}
	}

	ref := planDay()
	primary := domain.PrimaryBase()
	secondary := domain.SecondaryBase()

	firstArrival := cfg.FirstArrival.On(ref)
	firstMi := domain.StopMatrixIndex(route[0])
	secToFirst := m.Seconds(domain.SecondaryBaseIndex, firstMi)
	priToSec := m.Seconds(domain.PrimaryBaseIndex, domain.SecondaryBaseIndex)

	// The outbound legs are back-computed so the first stop is reached at
	// exactly the configured arrival time.
	secDeparture := firstArrival.Add(-secondsDur(secToFirst))
	secArrival := secDeparture.Add(-minutesDur(secondary.StayMin))
	priDeparture := secArrival.Add(-secondsDur(priToSec))

	entries := []domain.TimetableEntry{
		{
			Kind:   domain.EntryBaseDeparture,
			Name:   primary.Name + " (departure)",
			Depart: timePtr(priDeparture),
			Remark: "prepared previous day",
		},
		{
			Kind:          domain.EntryPickup,
			Name:          secondary.Name + " (pickup)",
			Arrive:        timePtr(secArrival),
			Depart:        timePtr(secDeparture),
			StayMinutes:   secondary.StayMin,
			TravelMinutes: priToSec / 60,
			Remark:        "director on board",
		},
	}

	totalTravelSeconds := priToSec + secToFirst
	totalStayMinutes := secondary.StayMin

	current := firstArrival
	lunchInserted := false
	prevMi := firstMi

	for i, stopPos := range route {
		stop := stops[stopPos]
		mi := domain.StopMatrixIndex(stopPos)
		stay := ResolveStayMinutes(stop, cfg)

		var travel int
		var arrival time.Time
		if i == 0 {
			travel = secToFirst
			arrival = firstArrival
		} else {
			travel = m.Seconds(prevMi, mi)
			arrival = current.Add(secondsDur(travel))
			totalTravelSeconds += travel
		}

		// Meal break: inserted once, before the first stop whose pre-travel
		// clock has passed the threshold, and never between an office/site
		// pair of the same place. Its end is pinned to the next arrival so
		// it cannot delay the following stop.
		if !lunchInserted && i > 0 && !current.Before(cfg.LunchEarliest.On(ref)) &&
			!domain.SameSite(stops[route[i-1]].Name, stop.Name) {
			lunchEnd := arrival
			lunchStart := lunchEnd.Add(-minutesDur(cfg.LunchMinutes))

			entries = append(entries, domain.TimetableEntry{
				Kind:        domain.EntryMealBreak,
				Name:        mealBreakLabel(ctx, finder, stops[route[i-1]].Coords),
				Arrive:      timePtr(lunchStart),
				Depart:      timePtr(lunchEnd),
				StayMinutes: cfg.LunchMinutes,
				Remark:      "lunch break",
			})
			totalStayMinutes += cfg.LunchMinutes
			lunchInserted = true
		}

		// Lunch-closure deferral applies to every stop except the anchor,
		// which is pinned at or after the floor anyway.
		closureWait := 0
		closureAdjusted := false
		if stop.Role != domain.RoleFixedTimeAnchor {
			occupied := stay
			if i == 0 {
				occupied = cfg.MeetingMinutes + stay
			}
			arrival, closureWait, closureAdjusted = DeferForClosure(arrival, occupied, domain.EntryVisit, cfg)
		}

		floorWait := 0
		remark := ""
		if stop.Role == domain.RoleFixedTimeAnchor {
			arrival, floorWait = ApplyArrivalFloor(arrival, cfg.AnchorFloor)
			if floorWait > 0 {
				remark = fmt.Sprintf("%dmin wait (fixed %s start)", floorWait, cfg.AnchorFloor)
			}
		}

		totalWait := floorWait + closureWait

		if i == 0 {
			// The first stop is split into a meeting sub-leg and a work
			// sub-leg, both clocked as one occupied block.
			meetingEnd := arrival.Add(minutesDur(cfg.MeetingMinutes))

			firstRemark := "on-site meeting"
			if closureAdjusted {
				firstRemark = fmt.Sprintf("%dmin lunch-closure wait, then meeting", closureWait)
			} else if floorWait > 0 {
				firstRemark = fmt.Sprintf("%dmin wait, then meeting", floorWait)
			}

			entries = append(entries, domain.TimetableEntry{
				Kind:          domain.EntryMeeting,
				Name:          stop.Name + " (meeting)",
				Arrive:        timePtr(arrival),
				Depart:        timePtr(meetingEnd),
				StayMinutes:   cfg.MeetingMinutes,
				TravelMinutes: secToFirst / 60,
				WaitMinutes:   totalWait,
				Remark:        firstRemark,
			})
			totalStayMinutes += cfg.MeetingMinutes + totalWait

			workEnd := meetingEnd.Add(minutesDur(stay))
			entries = append(entries, domain.TimetableEntry{
				Kind:        domain.EntryWork,
				Name:        stop.Name + " (work start)",
				Arrive:      timePtr(meetingEnd),
				Depart:      timePtr(workEnd),
				StayMinutes: stay,
			})
			totalStayMinutes += stay
			current = workEnd
		} else {
			departure := arrival.Add(minutesDur(stay))

			finalRemark := remark
			if closureAdjusted {
				finalRemark = fmt.Sprintf("%dmin lunch-closure wait (resumes %s)", closureWait, cfg.ClosureEnd)
			}

			entries = append(entries, domain.TimetableEntry{
				Kind:          domain.EntryVisit,
				Name:          stop.Name,
				Arrive:        timePtr(arrival),
				Depart:        timePtr(departure),
				StayMinutes:   stay,
				TravelMinutes: travel / 60,
				WaitMinutes:   totalWait,
				Remark:        finalRemark,
			})
			totalStayMinutes += stay + totalWait
			current = departure
		}

		prevMi = mi
	}

	// Return legs: last stop -> secondary base drop-off -> primary base.
	lastToSec := m.Seconds(prevMi, domain.SecondaryBaseIndex)
	totalTravelSeconds += lastToSec
	dropArrival := current.Add(secondsDur(lastToSec))
	dropDeparture := dropArrival.Add(minutesDur(secondary.StayMin))
	entries = append(entries, domain.TimetableEntry{
		Kind:          domain.EntryDropoff,
		Name:          secondary.Name + " (drop-off)",
		Arrive:        timePtr(dropArrival),
		Depart:        timePtr(dropDeparture),
		StayMinutes:   secondary.StayMin,
		TravelMinutes: lastToSec / 60,
		Remark:        "director drop-off",
	})
	totalStayMinutes += secondary.StayMin

	secToPri := m.Seconds(domain.SecondaryBaseIndex, domain.PrimaryBaseIndex)
	totalTravelSeconds += secToPri
	returnArrival := dropDeparture.Add(secondsDur(secToPri))
	entries = append(entries, domain.TimetableEntry{
		Kind:          domain.EntryBaseReturn,
		Name:          primary.Name + " (return)",
		Arrive:        timePtr(returnArrival),
		TravelMinutes: secToPri / 60,
		Remark:        "end of day",
	})

	return domain.DayTimetable{
		Day:                day,
		Entries:            entries,
		TotalTravelSeconds: totalTravelSeconds,
		TotalStayMinutes:   totalStayMinutes,
		Start:              priDeparture,
		End:                returnArrival,
		Advisories:         dayAdvisories(returnArrival),
	}
}

func timePtr(t time.Time) *time.Time { return &t }

// mealBreakLabel resolves a restaurant name near the previous stop.
// Lookup failure degrades to the generic label and never blocks the
// timetable.
func mealBreakLabel(ctx context.Context, finder ports.PlaceFinder, near domain.Coordinates) string {
	const generic = "Lunch break"
	if finder == nil {
		return generic
	}

	places, err := finder.FindRestaurants(ctx, near, 3)
	if err != nil {
		log.Printf("timetable: restaurant lookup failed: %v", err)
		return generic
	}
	if len(places) == 0 {
		return generic
	}
	return "Lunch: " + places[0].Name
}

func dayAdvisories(end time.Time) []string {
	switch {
	case end.Hour() >= 20:
		return []string{fmt.Sprintf("day ends at %s — consider reserving another day", end.Format("15:04"))}
	case end.Hour() >= 18:
		return []string{fmt.Sprintf("day ends at %s (past the 18:00 guideline)", end.Format("15:04"))}
	default:
		return nil
	}
}
