package api

import (
	"net/http"

	"field-rounds-service/internal/api/handlers"
	"field-rounds-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
//
// geocoder, finder, and importer may be nil; the corresponding endpoints then
// respond 503 (or fall back to generic labels).
func NewRouter(
	state *handlers.PlannerState,
	provider ports.TravelTimeProvider,
	geocoder ports.Geocoder,
	finder ports.PlaceFinder,
	importer ports.MapImporter,
) http.Handler {
	mux := http.NewServeMux()

	stopHandler := &handlers.StopHandler{State: state, Geocoder: geocoder}
	importHandler := &handlers.ImportHandler{State: state, Importer: importer}
	planHandler := &handlers.PlanHandler{
		State:    state,
		Provider: provider,
		Finder:   finder,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stops", stopHandler.Stops)
	mux.HandleFunc("/import", importHandler.Import)
	mux.HandleFunc("/plan", planHandler.Plan)
	mux.HandleFunc("/plan/move", planHandler.Move)
	mux.HandleFunc("/plan/reoptimize", planHandler.Reoptimize)
	mux.HandleFunc("/plan/reset", planHandler.Reset)
	mux.HandleFunc("/plan/export/csv", planHandler.ExportCSV)
	mux.HandleFunc("/plan/export/calendar", planHandler.ExportCalendar)

	return loggingMiddleware(mux)
}
