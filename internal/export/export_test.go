package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"field-rounds-service/internal/domain"
)

func entryTime(hour, minute int) *time.Time {
	t := time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC)
	return &t
}

func sampleTimetable() domain.DayTimetable {
	return domain.DayTimetable{
		Day: 1,
		Entries: []domain.TimetableEntry{
			{Kind: domain.EntryBaseDeparture, Name: "Head Office (departure)", Depart: entryTime(7, 35)},
			{Kind: domain.EntryPickup, Name: "Director Residence (pickup)", Arrive: entryTime(7, 45), Depart: entryTime(7, 50), StayMinutes: 5, TravelMinutes: 10},
			{Kind: domain.EntryVisit, Name: "Riverside Plant (office)", Arrive: entryTime(8, 0), Depart: entryTime(8, 20), StayMinutes: 20, TravelMinutes: 10, Remark: "gate code 4412"},
			{Kind: domain.EntryBaseReturn, Name: "Head Office (return)", Arrive: entryTime(8, 40), TravelMinutes: 5},
		},
		TotalTravelSeconds: 2100,
		TotalStayMinutes:   25,
		Start:              *entryTime(7, 35),
		End:                *entryTime(8, 40),
		Advisories:         []string{"day ends at 20:10 — check the reservation"},
	}
}

func TestCalendarText(t *testing.T) {
	got := CalendarText(sampleTimetable())

	for _, want := range []string{
		"Day 1  07:35 - 08:40",
		"travel 35min / on-site 25min",
		"Riverside Plant (office)",
		"[gate code 4412]",
		"--:-- 07:35", // departure row has no arrival
		"! day ends at 20:10",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("calendar text missing %q:\n%s", want, got)
		}
	}
}

func TestPlanTextJoinsDays(t *testing.T) {
	first := sampleTimetable()
	second := sampleTimetable()
	second.Day = 2

	got := PlanText([]domain.DayTimetable{first, second})

	if !strings.Contains(got, "Day 1") || !strings.Contains(got, "Day 2") {
		t.Errorf("plan text missing a day:\n%s", got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []domain.DayTimetable{sampleTimetable()}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header + 4 rows:\n%s", len(lines), buf.String())
	}
	if lines[0] != "day,kind,name,arrive,depart,stay_min,travel_min,wait_min,remark" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[3], "visit,Riverside Plant (office),08:00,08:20,20,10,0,gate code 4412") {
		t.Errorf("visit row = %q", lines[3])
	}
}
