package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"field-rounds-service/internal/api/dto"
	"field-rounds-service/internal/ports"
)

// ImportHandler replaces the stop pool from a shared map document.
type ImportHandler struct {
	State    *PlannerState
	Importer ports.MapImporter
}

func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Importer == nil {
		writeError(w, r, http.StatusServiceUnavailable, "map import is not configured")
		return
	}

	var req dto.ImportRequest

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

	mapID := strings.TrimSpace(req.MapID)
	if mapID == "" {
		writeError(w, r, http.StatusBadRequest, "map_id is required")
		return
	}

	imported, err := h.Importer.Import(r.Context(), mapID, req.Layers)
	if err != nil {
		log.Printf("map import failed: map_id=%s err=%v", mapID, err)
		writeError(w, r, http.StatusBadGateway, "map could not be imported")
		return
	}

	// The imported selection becomes the new pool; any previous plan is
	// discarded with it.
	h.State.SetPool(imported.Stops, imported.Advisories)

	res := dto.ImportResponse{
		MapName:    imported.Name,
		Stops:      make([]dto.StopResponse, 0, len(imported.Stops)),
		Layers:     imported.Layers,
		Advisories: imported.Advisories,
	}
	for _, s := range imported.Stops {
		res.Stops = append(res.Stops, stopResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}
