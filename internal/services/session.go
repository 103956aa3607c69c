package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"field-rounds-service/internal/domain"
	"field-rounds-service/internal/ports"
)

// PlanSession owns all state of one planning run: the stop list, the
// materialized travel-time matrix, and the current per-day routes. Every
// planning or edit operation replaces the route set wholesale with a freshly
// computed value; nothing mutates a route in place across call sites.
type PlanSession struct {
	Stops  []domain.Stop
	Matrix *domain.TravelTimeMatrix
	Config domain.PlanConfig

	Routes []domain.DayRoute
	Solve  SolveOutcome

	// Advisories carried over from import (naming-rule violations etc).
	ImportAdvisories []string
}

// NewPlanSession materializes the travel-time matrix for the given stops and
// computes the initial allocation. The head-office work block is added
// automatically when the selection does not already contain it.
//
// An oracle failure is fatal to the planning attempt; no partial matrix is
// ever used.
func NewPlanSession(ctx context.Context, stops []domain.Stop, provider ports.TravelTimeProvider, cfg domain.PlanConfig) (*PlanSession, error) {
	if provider == nil {
		return nil, errors.New("new plan session: travel time provider is nil")
	}
	if cfg.DayCount < 1 {
		return nil, fmt.Errorf("new plan session: day count must be >= 1, got %d", cfg.DayCount)
	}

	stops = ensureHQTask(stops)

	locations := make([]domain.Coordinates, 0, 2+len(stops))
	locations = append(locations, domain.PrimaryBase().Coords, domain.SecondaryBase().Coords)
	for _, s := range stops {
		locations = append(locations, s.Coords)
	}

	raw, err := provider.DurationMatrix(ctx, locations)
	if err != nil {
		return nil, fmt.Errorf("new plan session: duration matrix: %w", err)
	}

	matrix, err := domain.NewTravelTimeMatrix(raw, len(stops))
	if err != nil {
		return nil, fmt.Errorf("new plan session: %w", err)
	}

	s := &PlanSession{
		Stops:  stops,
		Matrix: matrix,
		Config: cfg,
	}
	s.Plan()
	return s, nil
}

// ensureHQTask appends the standing head-office work block when no stop in
// the selection carries that role.
func ensureHQTask(stops []domain.Stop) []domain.Stop {
	for _, s := range stops {
		if s.Role == domain.RoleFillerHQTask {
			return stops
		}
	}
	out := make([]domain.Stop, 0, len(stops)+1)
	out = append(out, stops...)
	out = append(out, domain.HQWorkTask())
	log.Printf("session: auto-added stop=%q", domain.HQWorkTask().Name)
	return out
}

// Plan recomputes the full allocation (global order, time slicing, filler
// relocation) and replaces the session's routes.
func (s *PlanSession) Plan() {
	routes, outcome := AllocateDays(s.Stops, s.Matrix, s.Config)
	s.Routes = RelocateFillers(routes, s.Stops, s.Matrix, s.Config)
	s.Solve = outcome
}

// Reset discards manual edits and restores the automatic allocation.
func (s *PlanSession) Reset() { s.Plan() }

// MoveStops moves the given stop positions from one day to another and
// re-optimizes both affected days. Positions absent from the source day are
// skipped. The route set is replaced atomically.
func (s *PlanSession) MoveStops(fromDay, toDay int, stopPositions []int) error {
	if err := s.checkDay(fromDay); err != nil {
		return fmt.Errorf("move stops: %w", err)
	}
	if err := s.checkDay(toDay); err != nil {
		return fmt.Errorf("move stops: %w", err)
	}
	if fromDay == toDay {
		return errors.New("move stops: source and target day are the same")
	}

	routes := domain.CloneRoutes(s.Routes)
	for _, pos := range stopPositions {
		at := indexOf(routes[fromDay], pos)
		if at < 0 {
			log.Printf("session: move skipped stop_pos=%d not on day=%d", pos, fromDay+1)
			continue
		}
		routes[fromDay] = append(routes[fromDay][:at], routes[fromDay][at+1:]...)
		routes[toDay] = append(routes[toDay], pos)
	}

	routes[fromDay] = ReoptimizeDay(routes[fromDay], s.Stops, s.Matrix, s.Config)
	routes[toDay] = ReoptimizeDay(routes[toDay], s.Stops, s.Matrix, s.Config)

	s.Routes = routes
	return nil
}

// ReoptimizeDay re-solves a single day in place of the current route set.
func (s *PlanSession) ReoptimizeDay(day int) error {
	if err := s.checkDay(day); err != nil {
		return fmt.Errorf("reoptimize day: %w", err)
	}

	routes := domain.CloneRoutes(s.Routes)
	routes[day] = ReoptimizeDay(routes[day], s.Stops, s.Matrix, s.Config)
	s.Routes = routes
	return nil
}

// Timetables rebuilds the per-day timetable projection for every day.
func (s *PlanSession) Timetables(ctx context.Context, finder ports.PlaceFinder) []domain.DayTimetable {
	out := make([]domain.DayTimetable, 0, len(s.Routes))
	for i, route := range s.Routes {
		out = append(out, BuildDayTimetable(ctx, i+1, route, s.Stops, s.Matrix, s.Config, finder))
	}
	return out
}

// PlanAdvisories aggregates plan-level warnings: solver degradation and
// projected overtime against the standard working hours.
func (s *PlanSession) PlanAdvisories(tables []domain.DayTimetable) []string {
	var out []string
	out = append(out, s.ImportAdvisories...)

	if s.Solve == OutcomeBudgetExhausted {
		out = append(out, "route order is best-effort (solver time budget exhausted)")
	}

	totalTravelSeconds := 0
	totalStayMinutes := 0
	for _, t := range tables {
		totalTravelSeconds += t.TotalTravelSeconds
		totalStayMinutes += t.TotalStayMinutes
	}

	totalHours := float64(totalTravelSeconds)/3600 + float64(totalStayMinutes)/60
	breakHours := float64(s.Config.LunchMinutes) / 60 * float64(s.Config.DayCount)
	actualWorkHours := totalHours - breakHours
	limitHours := s.Config.WorkHoursPerDay * float64(s.Config.DayCount)

	if actualWorkHours > limitHours {
		out = append(out, fmt.Sprintf(
			"exceeds standard working hours by %.1fh (%.1fh worked vs %.1fh limit)",
			actualWorkHours-limitHours, actualWorkHours, limitHours,
		))
	}
	return out
}

func (s *PlanSession) checkDay(day int) error {
	if day < 0 || day >= len(s.Routes) {
		return fmt.Errorf("day %d out of range (1-%d)", day+1, len(s.Routes))
	}
	return nil
}

func indexOf(route domain.DayRoute, pos int) int {
	for i, v := range route {
		if v == pos {
			return i
		}
	}
	return -1
}
