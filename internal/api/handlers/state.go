package handlers

import (
	"errors"
	"sync"

	"field-rounds-service/internal/domain"
	"field-rounds-service/internal/services"
)

// ErrNoPlan is returned when a plan operation runs before any plan exists.
var ErrNoPlan = errors.New("no active plan")

// PlannerState holds the mutable planning state shared by the handlers: the
// current stop pool (from the repository, a map import, or manual additions)
// and the active plan session. The service runs one plan at a time.
type PlannerState struct {
	mu         sync.Mutex
	stops      []domain.Stop
	advisories []string
	session    *services.PlanSession
}

func NewPlannerState() *PlannerState {
	return &PlannerState{}
}

// SetPool replaces the stop pool and its import advisories, and drops any
// session planned against the previous pool.
func (p *PlannerState) SetPool(stops []domain.Stop, advisories []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stops = append([]domain.Stop(nil), stops...)
	p.advisories = append([]string(nil), advisories...)
	p.session = nil
}

// AddStop appends one stop to the pool, assigning the next free id, and
// returns the stored stop. The active session (if any) is left untouched; the
// new stop participates from the next plan.
func (p *PlannerState) AddStop(stop domain.Stop) domain.Stop {
	p.mu.Lock()
	defer p.mu.Unlock()

	maxID := 0
	for _, s := range p.stops {
		if s.ID > maxID {
			maxID = s.ID
		}
	}
	stop.ID = maxID + 1
	p.stops = append(p.stops, stop)
	return stop
}

// Pool returns a copy of the stop pool and its advisories.
func (p *PlannerState) Pool() ([]domain.Stop, []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Stop(nil), p.stops...), append([]string(nil), p.advisories...)
}

// SetSession installs a freshly planned session.
func (p *PlannerState) SetSession(s *services.PlanSession) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = s
}

// WithSession runs fn under the state lock against the active session.
// Session edits must go through here so concurrent requests serialize.
func (p *PlannerState) WithSession(fn func(*services.PlanSession) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return ErrNoPlan
	}
	return fn(p.session)
}
