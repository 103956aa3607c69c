package export

import (
	"fmt"
	"strings"
	"time"

	"field-rounds-service/internal/domain"
)

// CalendarText renders one day's timetable as a plain-text block suitable for
// pasting into a shared calendar entry.
func CalendarText(t domain.DayTimetable) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Day %d  %s - %s\n", t.Day, clock(t.Start), clock(t.End))
	fmt.Fprintf(&b, "travel %s / on-site %dmin\n", travelDuration(t.TotalTravelSeconds), t.TotalStayMinutes)
	b.WriteString(strings.Repeat("-", 40))
	b.WriteByte('\n')

	for _, e := range t.Entries {
		fmt.Fprintf(&b, "%s  %-14s %s", entryWindow(e), e.Kind, e.Name)
		if e.Remark != "" {
			fmt.Fprintf(&b, "  [%s]", e.Remark)
		}
		b.WriteByte('\n')
	}

	for _, a := range t.Advisories {
		fmt.Fprintf(&b, "! %s\n", a)
	}

	return b.String()
}

// PlanText renders every day, separated by blank lines.
func PlanText(tables []domain.DayTimetable) string {
	parts := make([]string, 0, len(tables))
	for _, t := range tables {
		parts = append(parts, CalendarText(t))
	}
	return strings.Join(parts, "\n")
}

func clock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Format("15:04")
}

func clockPtr(t *time.Time) string {
	if t == nil {
		return "--:--"
	}
	return clock(*t)
}

func entryWindow(e domain.TimetableEntry) string {
	return clockPtr(e.Arrive) + " " + clockPtr(e.Depart)
}

func travelDuration(seconds int) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dmin", m)
	}
	return fmt.Sprintf("%dh%02dmin", h, m)
}
