package services

import (
	"regexp"
	"strconv"
	"strings"

	"field-rounds-service/internal/domain"

	"golang.org/x/text/width"
)

// Dwell minutes embedded in a free-text note, e.g. "(45min)" or "（45分）".
var stayNotePattern = regexp.MustCompile(`[（(](\d+)\s*(?:min|分)[）)]`)

// normalizeCategory folds full-width characters to half-width and lowercases,
// so category tags match regardless of the import source's text width.
func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(width.Fold.String(s)))
}

// ResolveStayMinutes returns the dwell time for a stop in minutes.
//
// Precedence, first match wins: explicit override, a minutes value embedded
// in the free-text note, the master-location table, category heuristics,
// the global default. The function is total; it always returns a value.
func ResolveStayMinutes(stop domain.Stop, cfg domain.PlanConfig) int {
	if stop.StayOverrideMin != nil {
		return *stop.StayOverrideMin
	}

	if m := stayNotePattern.FindStringSubmatch(stop.Note); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return v
		}
	}

	if m, ok := domain.MatchMasterLocation(stop.Name); ok {
		return m.StayMin
	}

	layer := normalizeCategory(stop.Layer)
	switch {
	case strings.Contains(layer, "construction"):
		hasOffice := strings.Contains(stop.Name, "office")
		hasSite := strings.Contains(stop.Name, "site")
		switch {
		case hasOffice && hasSite:
			return 20
		case hasOffice:
			return 10
		case hasSite:
			return 10
		default:
			return 20
		}
	case strings.Contains(layer, "vendor"):
		return 20
	case strings.Contains(layer, "group"):
		return 10
	}

	return cfg.DefaultStayMin
}
