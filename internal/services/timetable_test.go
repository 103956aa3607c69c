package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-rounds-service/internal/domain"
)

// legMatrix builds a matrix for the given stop count where every pair costs
// 600s except sec->primary, which costs 300s. This keeps the outbound and
// return legs distinguishable in the totals.
func legMatrix(t *testing.T, stopCount int) *domain.TravelTimeMatrix {
	t.Helper()

	n := stopCount + 2
	seconds := make([][]int, n)
	for i := range seconds {
		seconds[i] = make([]int, n)
		for j := range seconds[i] {
			if i != j {
				seconds[i][j] = 600
			}
		}
	}
	seconds[1][0] = 300

	m, err := domain.NewTravelTimeMatrix(seconds, stopCount)
	require.NoError(t, err)
	return m
}

func findEntry(entries []domain.TimetableEntry, kind domain.EntryKind) *domain.TimetableEntry {
	for i := range entries {
		if entries[i].Kind == kind {
			return &entries[i]
		}
	}
	return nil
}

func TestBuildDayTimetableSingleStop(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	stops := []domain.Stop{{ID: 1, Name: "Alpha"}}
	m := legMatrix(t, 1)

	tt := BuildDayTimetable(context.Background(), 1, domain.DayRoute{0}, stops, m, cfg, nil)

	require.Len(t, tt.Entries, 6)
	kinds := make([]domain.EntryKind, 0, len(tt.Entries))
	for _, e := range tt.Entries {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []domain.EntryKind{
		domain.EntryBaseDeparture,
		domain.EntryPickup,
		domain.EntryMeeting,
		domain.EntryWork,
		domain.EntryDropoff,
		domain.EntryBaseReturn,
	}, kinds)

	// Outbound legs are back-computed from the fixed 08:00 first arrival.
	assert.Equal(t, at(7, 35), tt.Start)
	pickup := findEntry(tt.Entries, domain.EntryPickup)
	assert.Equal(t, at(7, 45), *pickup.Arrive)
	assert.Equal(t, at(7, 50), *pickup.Depart)

	meeting := findEntry(tt.Entries, domain.EntryMeeting)
	assert.Equal(t, at(8, 0), *meeting.Arrive)
	assert.Equal(t, at(8, 10), *meeting.Depart)

	work := findEntry(tt.Entries, domain.EntryWork)
	assert.Equal(t, at(8, 10), *work.Arrive)
	assert.Equal(t, at(8, 30), *work.Depart)
	assert.Equal(t, 20, work.StayMinutes)

	drop := findEntry(tt.Entries, domain.EntryDropoff)
	assert.Equal(t, at(8, 40), *drop.Arrive)
	assert.Equal(t, at(8, 45), *drop.Depart)

	assert.Equal(t, at(8, 50), tt.End)
	assert.Equal(t, 2100, tt.TotalTravelSeconds)
	assert.Equal(t, 40, tt.TotalStayMinutes)

	// A lunch-free day has no hidden time: elapsed == travel + stays.
	elapsed := tt.End.Sub(tt.Start)
	accounted := time.Duration(tt.TotalTravelSeconds)*time.Second +
		time.Duration(tt.TotalStayMinutes)*time.Minute
	assert.Equal(t, accounted, elapsed)

	assert.Empty(t, tt.Advisories)
}

func TestBuildDayTimetableLunchAndClosure(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	long := 210
	stops := []domain.Stop{
		{ID: 1, Name: "Alpha", StayOverrideMin: &long},
		{ID: 2, Name: "Bravo"},
	}
	m := legMatrix(t, 2)

	tt := BuildDayTimetable(context.Background(), 1, domain.DayRoute{0, 1}, stops, m, cfg, nil)

	// First stop runs 08:00-11:40; the clock is past 11:30, so the meal break
	// is inserted before the second stop, pinned to its 11:50 arrival.
	meal := findEntry(tt.Entries, domain.EntryMealBreak)
	require.NotNil(t, meal)
	assert.Equal(t, "Lunch break", meal.Name)
	assert.Equal(t, at(10, 50), *meal.Arrive)
	assert.Equal(t, at(11, 50), *meal.Depart)
	assert.Equal(t, cfg.LunchMinutes, meal.StayMinutes)

	// The 11:50 arrival would occupy the counterparty closure; it defers to
	// 13:00 with the wait reported.
	visit := findEntry(tt.Entries, domain.EntryVisit)
	require.NotNil(t, visit)
	assert.Equal(t, "Bravo", visit.Name)
	assert.Equal(t, at(13, 0), *visit.Arrive)
	assert.Equal(t, 70, visit.WaitMinutes)
	assert.Contains(t, visit.Remark, "lunch-closure wait")
}

func TestBuildDayTimetableLunchSuppressedBetweenSameSite(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	long := 210
	stops := []domain.Stop{
		{ID: 1, Name: "Riverside Plant (office)", StayOverrideMin: &long},
		{ID: 2, Name: "Riverside Plant (site)"},
	}
	m := legMatrix(t, 2)

	tt := BuildDayTimetable(context.Background(), 1, domain.DayRoute{0, 1}, stops, m, cfg, nil)

	assert.Nil(t, findEntry(tt.Entries, domain.EntryMealBreak),
		"no meal break between an office/site pair of the same place")
}

func TestBuildDayTimetableAnchorFloor(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	stops := []domain.Stop{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Wellness Center", Role: domain.RoleFixedTimeAnchor},
	}
	m := legMatrix(t, 2)

	tt := BuildDayTimetable(context.Background(), 1, domain.DayRoute{0, 1}, stops, m, cfg, nil)

	visit := findEntry(tt.Entries, domain.EntryVisit)
	require.NotNil(t, visit)
	assert.Equal(t, "Wellness Center", visit.Name)
	// Raw arrival 08:40 snaps to the 17:00 floor.
	assert.Equal(t, at(17, 0), *visit.Arrive)
	assert.Equal(t, at(17, 15), *visit.Depart)
	assert.Equal(t, 500, visit.WaitMinutes)
	assert.Contains(t, visit.Remark, "fixed 17:00 start")
}

func TestBuildDayTimetableLateEndAdvisory(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	long := 600
	stops := []domain.Stop{{ID: 1, Name: "Alpha", StayOverrideMin: &long}}
	m := legMatrix(t, 1)

	tt := BuildDayTimetable(context.Background(), 1, domain.DayRoute{0}, stops, m, cfg, nil)

	// Work runs 08:10-18:10; the day ends 18:30.
	assert.Equal(t, at(18, 30), tt.End)
	require.Len(t, tt.Advisories, 1)
	assert.Contains(t, tt.Advisories[0], "18:00")
}

func TestBuildDayTimetableEmptyRoute(t *testing.T) {
	cfg := domain.DefaultPlanConfig()
	m := legMatrix(t, 1)

	tt := BuildDayTimetable(context.Background(), 3, domain.DayRoute{}, nil, m, cfg, nil)

	assert.Equal(t, 3, tt.Day)
	assert.Empty(t, tt.Entries)
}
