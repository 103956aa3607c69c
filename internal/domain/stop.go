package domain

import "strings"

// StopRole discriminates the scheduling behavior of a stop.
// Roles are assigned once at import/construction time so downstream
// planning logic dispatches on the tag instead of re-parsing display names.
type StopRole int

const (
	// RoleOrdinary stops have no time constraint beyond the shared lunch closure.
	RoleOrdinary StopRole = iota
	// RoleFixedTimeAnchor stops must not begin before the configured arrival floor
	// and are always pinned to the tail of their day's route.
	RoleFixedTimeAnchor
	// RoleFillerHQTask is the relocatable head-office work block (filler task A).
	RoleFillerHQTask
	// RoleFillerWarehouse is the relocatable warehouse check (filler task B).
	RoleFillerWarehouse
)

func (r StopRole) String() string {
	switch r {
	case RoleFixedTimeAnchor:
		return "fixed_time_anchor"
	case RoleFillerHQTask:
		return "filler_hq_task"
	case RoleFillerWarehouse:
		return "filler_warehouse"
	default:
		return "ordinary"
	}
}

// Stop is a single location the party must visit.
// Immutable during a planning run except for membership in a day's route.
type Stop struct {
	ID              int
	Name            string
	Layer           string // category tag from the import source (free text)
	Note            string // free-text description from the import source
	Coords          Coordinates
	StayOverrideMin *int // explicit per-stop dwell override, nil when unset
	Role            StopRole
}

// Suffix qualifiers for construction-layer stop names. Both ASCII and
// full-width parentheses occur in imported data.
var siteQualifierSuffixes = []string{
	"（office/site）", "(office/site)",
	"（office）", "(office)",
	"（site）", "(site)",
}

// BaseLocationName strips a trailing office/site qualifier from a stop name.
func BaseLocationName(name string) string {
	name = strings.TrimSpace(name)
	for _, suf := range siteQualifierSuffixes {
		if strings.HasSuffix(name, suf) {
			return strings.TrimSpace(strings.TrimSuffix(name, suf))
		}
	}
	return name
}

// SameSite reports whether two stop names denote the same physical place
// (an office/site pair), i.e. their stripped base names are equal and non-empty.
func SameSite(name1, name2 string) bool {
	b1 := BaseLocationName(name1)
	b2 := BaseLocationName(name2)
	return b1 != "" && b1 == b2
}

// HasSiteQualifier reports whether a name carries a valid office/site suffix.
// Construction-layer stops are expected to follow this naming rule.
func HasSiteQualifier(name string) bool {
	name = strings.TrimSpace(name)
	for _, suf := range siteQualifierSuffixes {
		if strings.HasSuffix(name, suf) {
			return true
		}
	}
	return false
}
