package domain

import "strings"

// MasterLocation is a fixed, well-known location with canonical coordinates,
// a canonical dwell time, and the scheduling role its stops carry.
type MasterLocation struct {
	Name    string
	Coords  Coordinates
	StayMin int
	Role    StopRole
}

// The master-location table. Imported stops whose names contain a master name
// get that location's coordinates and dwell; the role tag is assigned here and
// nowhere else.
var MasterLocations = []MasterLocation{
	{Name: "Head Office", Coords: Coordinates{Lat: 39.29462, Lon: 141.11325}, StayMin: 80, Role: RoleFillerHQTask},
	{Name: "Old Office", Coords: Coordinates{Lat: 39.31273, Lon: 141.00406}, StayMin: 15, Role: RoleOrdinary},
	{Name: "Wellness Center", Coords: Coordinates{Lat: 39.29352, Lon: 141.09822}, StayMin: 15, Role: RoleFixedTimeAnchor},
	{Name: "North Warehouse", Coords: Coordinates{Lat: 39.31066, Lon: 141.11238}, StayMin: 15, Role: RoleFillerWarehouse},
	{Name: "Eastside Builders", Coords: Coordinates{Lat: 39.14443, Lon: 141.57198}, StayMin: 10, Role: RoleOrdinary},
	{Name: "Tozawa Depot", Coords: Coordinates{Lat: 40.05132, Lon: 141.00514}, StayMin: 10, Role: RoleOrdinary},
}

// MatchMasterLocation returns the first master location whose name is
// contained in the given stop name.
func MatchMasterLocation(name string) (MasterLocation, bool) {
	for _, m := range MasterLocations {
		if strings.Contains(name, m.Name) {
			return m, true
		}
	}
	return MasterLocation{}, false
}

// RoleForName derives the scheduling role for a stop name from the master
// table. Called once per stop at import/construction time.
func RoleForName(name string) StopRole {
	m, ok := MatchMasterLocation(name)
	if !ok {
		return RoleOrdinary
	}
	return m.Role
}

// HQWorkTask returns the relocatable head-office work block that every plan
// must contain exactly once.
func HQWorkTask() Stop {
	return Stop{
		Name:   "Head Office (work block)",
		Layer:  "Group",
		Note:   "Standing office work block (80min)",
		Coords: Coordinates{Lat: 39.29462, Lon: 141.11325},
		Role:   RoleFillerHQTask,
	}
}

// BaseLocation is one of the two fixed endpoints of every day's plan.
type BaseLocation struct {
	Name    string
	Coords  Coordinates
	StayMin int
}

// PrimaryBase returns the start/end location of every day (zero dwell).
func PrimaryBase() BaseLocation {
	return BaseLocation{
		Name:   "Head Office",
		Coords: Coordinates{Lat: 39.29462, Lon: 141.11325},
	}
}

// SecondaryBase returns the fixed pickup/drop-off point visited immediately
// after departing and immediately before returning each day.
func SecondaryBase() BaseLocation {
	return BaseLocation{
		Name:    "Director Residence",
		Coords:  Coordinates{Lat: 39.28791, Lon: 141.11858},
		StayMin: 5,
	}
}
