package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"field-rounds-service/internal/api/dto"
	"field-rounds-service/internal/domain"
	"field-rounds-service/internal/export"
	"field-rounds-service/internal/ports"
	"field-rounds-service/internal/services"
)

// PlanHandler owns the plan lifecycle: creation, inspection, manual edits,
// and exports. All session access goes through the shared planner state so
// concurrent requests serialize.
type PlanHandler struct {
	State    *PlannerState
	Provider ports.TravelTimeProvider
	Finder   ports.PlaceFinder
}

func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.view(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *PlanHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	cfg := domain.DefaultPlanConfig()
	if req.DayCount != 0 {
		if req.DayCount < 1 || req.DayCount > 14 {
			writeError(w, r, http.StatusBadRequest, "day_count must be between 1 and 14")
			return
		}
		cfg.DayCount = req.DayCount
	}

	pool, advisories := h.State.Pool()

	selected, err := selectStops(pool, req.StopIDs)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(selected) == 0 {
		writeError(w, r, http.StatusBadRequest, "no stops to plan")
		return
	}

	session, err := services.NewPlanSession(r.Context(), selected, h.Provider, cfg)
	if err != nil {
		log.Printf("plan failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "plan could not be computed")
		return
	}
	session.ImportAdvisories = advisories

	h.State.SetSession(session)
	h.respondWithPlan(w, r)
}

func (h *PlanHandler) view(w http.ResponseWriter, r *http.Request) {
	h.respondWithPlan(w, r)
}

// Move relocates stops between days and re-optimizes both.
func (h *PlanHandler) Move(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.MoveStopsRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}
	if len(req.StopIDs) == 0 {
		writeError(w, r, http.StatusBadRequest, "stop_ids is required")
		return
	}

	err := h.State.WithSession(func(s *services.PlanSession) error {
		positions := make([]int, 0, len(req.StopIDs))
		for _, id := range req.StopIDs {
			pos := stopPosition(s.Stops, id)
			if pos < 0 {
				return fmt.Errorf("unknown stop_id %d", id)
			}
			positions = append(positions, pos)
		}
		return s.MoveStops(req.FromDay-1, req.ToDay-1, positions)
	})
	if err != nil {
		h.writePlanError(w, r, "move stops", err)
		return
	}

	h.respondWithPlan(w, r)
}

// Reoptimize re-solves one day's visiting order.
func (h *PlanHandler) Reoptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ReoptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	err := h.State.WithSession(func(s *services.PlanSession) error {
		return s.ReoptimizeDay(req.Day - 1)
	})
	if err != nil {
		h.writePlanError(w, r, "reoptimize", err)
		return
	}

	h.respondWithPlan(w, r)
}

// Reset discards manual edits and restores the automatic allocation.
func (h *PlanHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	err := h.State.WithSession(func(s *services.PlanSession) error {
		s.Reset()
		return nil
	})
	if err != nil {
		h.writePlanError(w, r, "reset", err)
		return
	}

	h.respondWithPlan(w, r)
}

// ExportCSV streams the combined timetable rows of every day.
func (h *PlanHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var tables []domain.DayTimetable
	err := h.State.WithSession(func(s *services.PlanSession) error {
		tables = s.Timetables(r.Context(), h.Finder)
		return nil
	})
	if err != nil {
		h.writePlanError(w, r, "export csv", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="rounds.csv"`)
	if err := export.WriteCSV(w, tables); err != nil {
		log.Printf("export csv failed: %v", err)
	}
}

// ExportCalendar returns the per-day calendar text blocks.
func (h *PlanHandler) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var tables []domain.DayTimetable
	err := h.State.WithSession(func(s *services.PlanSession) error {
		tables = s.Timetables(r.Context(), h.Finder)
		return nil
	})
	if err != nil {
		h.writePlanError(w, r, "export calendar", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, export.PlanText(tables)); err != nil {
		log.Printf("export calendar failed: %v", err)
	}
}

func (h *PlanHandler) respondWithPlan(w http.ResponseWriter, r *http.Request) {
	var res dto.PlanResponse
	err := h.State.WithSession(func(s *services.PlanSession) error {
		tables := s.Timetables(r.Context(), h.Finder)
		res = planResponse(s, tables)
		return nil
	})
	if err != nil {
		h.writePlanError(w, r, "view plan", err)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PlanHandler) writePlanError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, ErrNoPlan) {
		writeError(w, r, http.StatusNotFound, "no active plan")
		return
	}
	log.Printf("%s failed: %v", op, err)
	writeError(w, r, http.StatusBadRequest, err.Error())
}

func planResponse(s *services.PlanSession, tables []domain.DayTimetable) dto.PlanResponse {
	res := dto.PlanResponse{
		SolveOutcome: s.Solve.String(),
		Days:         make([]dto.DayPlanResponse, 0, len(tables)),
		Advisories:   s.PlanAdvisories(tables),
	}

	for i, t := range tables {
		day := dto.DayPlanResponse{
			Day:                t.Day,
			StopIDs:            make([]int, 0, len(s.Routes[i])),
			Entries:            make([]dto.TimetableEntryResponse, 0, len(t.Entries)),
			TotalTravelSeconds: t.TotalTravelSeconds,
			TotalStayMinutes:   t.TotalStayMinutes,
			Start:              clockString(t.Start),
			End:                clockString(t.End),
			Advisories:         t.Advisories,
		}
		for _, pos := range s.Routes[i] {
			day.StopIDs = append(day.StopIDs, s.Stops[pos].ID)
		}
		for _, e := range t.Entries {
			day.Entries = append(day.Entries, dto.TimetableEntryResponse{
				Kind:          e.Kind.String(),
				Name:          e.Name,
				Arrive:        clockPtrString(e.Arrive),
				Depart:        clockPtrString(e.Depart),
				StayMinutes:   e.StayMinutes,
				TravelMinutes: e.TravelMinutes,
				WaitMinutes:   e.WaitMinutes,
				Remark:        e.Remark,
			})
		}
		res.Days = append(res.Days, day)
	}

	return res
}

func selectStops(pool []domain.Stop, ids []int) ([]domain.Stop, error) {
	if len(ids) == 0 {
		return pool, nil
	}

	byID := make(map[int]domain.Stop, len(pool))
	for _, s := range pool {
		byID[s.ID] = s
	}

	out := make([]domain.Stop, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown stop_id %d", id)
		}
		out = append(out, s)
	}
	return out, nil
}

func stopPosition(stops []domain.Stop, id int) int {
	for i, s := range stops {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func clockString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}

func clockPtrString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return clockString(*t)
}
