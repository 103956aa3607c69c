package services

import (
	"testing"
	"time"

	"field-rounds-service/internal/domain"
)

func at(hour, minute int) time.Time {
	return time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC)
}

func TestOverlapsClosure(t *testing.T) {
	cfg := domain.DefaultPlanConfig()

	tests := []struct {
		name      string
		arrival   time.Time
		departure time.Time
		want      bool
	}{
		{"fully before", at(11, 0), at(11, 30), false},
		{"ends exactly at closure start", at(11, 30), at(12, 0), false},
		{"straddles closure start", at(11, 50), at(12, 20), true},
		{"inside the closure", at(12, 10), at(12, 40), true},
		{"starts exactly at closure end", at(13, 0), at(13, 20), false},
		{"straddles closure end", at(12, 50), at(13, 10), true},
		{"fully after", at(14, 0), at(14, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlapsClosure(tt.arrival, tt.departure, cfg); got != tt.want {
				t.Errorf("OverlapsClosure(%v, %v) = %v, want %v", tt.arrival, tt.departure, got, tt.want)
			}
		})
	}
}

func TestDeferForClosure(t *testing.T) {
	cfg := domain.DefaultPlanConfig()

	t.Run("overlapping visit shifts to closure end", func(t *testing.T) {
		adjusted, wait, ok := DeferForClosure(at(11, 50), 30, domain.EntryVisit, cfg)
		if !ok {
			t.Fatal("expected adjustment")
		}
		if !adjusted.Equal(at(13, 0)) {
			t.Errorf("adjusted = %v, want 13:00", adjusted)
		}
		if wait != 70 {
			t.Errorf("wait = %d, want 70", wait)
		}
	})

	t.Run("non overlapping visit passes through", func(t *testing.T) {
		adjusted, wait, ok := DeferForClosure(at(11, 0), 30, domain.EntryVisit, cfg)
		if ok {
			t.Fatal("unexpected adjustment")
		}
		if !adjusted.Equal(at(11, 0)) || wait != 0 {
			t.Errorf("got %v wait %d", adjusted, wait)
		}
	})

	t.Run("meal break is exempt", func(t *testing.T) {
		adjusted, wait, ok := DeferForClosure(at(12, 0), 60, domain.EntryMealBreak, cfg)
		if ok || wait != 0 || !adjusted.Equal(at(12, 0)) {
			t.Errorf("meal break must not shift: got %v wait %d ok %v", adjusted, wait, ok)
		}
	})

	t.Run("arrival inside closure", func(t *testing.T) {
		adjusted, wait, ok := DeferForClosure(at(12, 30), 20, domain.EntryVisit, cfg)
		if !ok {
			t.Fatal("expected adjustment")
		}
		if !adjusted.Equal(at(13, 0)) || wait != 30 {
			t.Errorf("got %v wait %d, want 13:00 wait 30", adjusted, wait)
		}
	})
}

func TestApplyArrivalFloor(t *testing.T) {
	floor := domain.ClockTime{Hour: 17}

	t.Run("early arrival snaps up", func(t *testing.T) {
		got, wait := ApplyArrivalFloor(at(16, 0), floor)
		if !got.Equal(at(17, 0)) || wait != 60 {
			t.Errorf("got %v wait %d, want 17:00 wait 60", got, wait)
		}
	})

	t.Run("late arrival passes through", func(t *testing.T) {
		got, wait := ApplyArrivalFloor(at(17, 30), floor)
		if !got.Equal(at(17, 30)) || wait != 0 {
			t.Errorf("got %v wait %d, want unchanged", got, wait)
		}
	})

	t.Run("exact arrival passes through", func(t *testing.T) {
		got, wait := ApplyArrivalFloor(at(17, 0), floor)
		if !got.Equal(at(17, 0)) || wait != 0 {
			t.Errorf("got %v wait %d, want unchanged", got, wait)
		}
	})
}
