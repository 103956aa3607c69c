package domain

import "time"

// EntryKind classifies a timetable row.
type EntryKind int

const (
	EntryBaseDeparture EntryKind = iota
	EntryPickup
	EntryMeeting
	EntryWork
	EntryVisit
	EntryMealBreak
	EntryDropoff
	EntryBaseReturn
)

func (k EntryKind) String() string {
	switch k {
	case EntryBaseDeparture:
		return "base_departure"
	case EntryPickup:
		return "pickup"
	case EntryMeeting:
		return "meeting"
	case EntryWork:
		return "work"
	case EntryMealBreak:
		return "meal_break"
	case EntryDropoff:
		return "dropoff"
	case EntryBaseReturn:
		return "base_return"
	default:
		return "visit"
	}
}

// TimetableEntry is one physical leg of a day's schedule.
// Arrive is nil only for the base departure row; Depart is nil only for the
// base return row.
type TimetableEntry struct {
	Kind          EntryKind
	Name          string
	Arrive        *time.Time
	Depart        *time.Time
	StayMinutes   int
	TravelMinutes int
	WaitMinutes   int
	Remark        string
}

// DayTimetable is a derived, disposable projection of one day's route.
// It is rebuilt from the DayRoute whenever the route or matrix changes and
// never mutated in place.
type DayTimetable struct {
	Day     int
	Entries []TimetableEntry

	TotalTravelSeconds int
	TotalStayMinutes   int
	Start              time.Time
	End                time.Time

	Advisories []string
}
