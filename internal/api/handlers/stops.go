package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"field-rounds-service/internal/api/dto"
	"field-rounds-service/internal/domain"
	"field-rounds-service/internal/ports"
)

// StopHandler exposes the stop pool: listing, and manual addition via
// geocoding.
type StopHandler struct {
	State    *PlannerState
	Geocoder ports.Geocoder
}

func (h *StopHandler) Stops(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.add(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *StopHandler) list(w http.ResponseWriter, r *http.Request) {
	stops, advisories := h.State.Pool()

	res := dto.ListStopsResponse{
		Stops:      make([]dto.StopResponse, 0, len(stops)),
		Advisories: advisories,
	}
	for _, s := range stops {
		res.Stops = append(res.Stops, stopResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// add geocodes a free-text address and appends the resulting stop to the
// pool, with an optional explicit dwell override.
func (h *StopHandler) add(w http.ResponseWriter, r *http.Request) {
	if h.Geocoder == nil {
		writeError(w, r, http.StatusServiceUnavailable, "geocoding is not configured")
		return
	}

	var req dto.AddStopRequest

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

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}
	address := strings.TrimSpace(req.Address)
	if address == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}
	if req.StayMin != nil && *req.StayMin < 0 {
		writeError(w, r, http.StatusBadRequest, "stay_min must not be negative")
		return
	}

	result, err := h.Geocoder.Geocode(r.Context(), address)
	if err != nil {
		log.Printf("geocode failed: address=%q err=%v", address, err)
		writeError(w, r, http.StatusBadGateway, "address could not be resolved")
		return
	}

	stop := h.State.AddStop(domain.Stop{
		Name:            name,
		Layer:           strings.TrimSpace(req.Layer),
		Coords:          result.Coords,
		StayOverrideMin: req.StayMin,
		Role:            domain.RoleForName(name),
	})

	writeJSON(w, r, http.StatusCreated, dto.AddStopResponse{
		Stop:             stopResponse(stop),
		FormattedAddress: result.FormattedAddress,
	})
}

func stopResponse(s domain.Stop) dto.StopResponse {
	return dto.StopResponse{
		StopID:          s.ID,
		Name:            s.Name,
		Layer:           s.Layer,
		Note:            s.Note,
		Lon:             s.Coords.Lon,
		Lat:             s.Coords.Lat,
		StayOverrideMin: s.StayOverrideMin,
		Role:            s.Role.String(),
	}
}
