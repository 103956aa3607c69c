package ports

import "context"

// Contract for the persistent travel-time cache. Keys are coordinate keys
// (domain.Coordinates.Key); values are directional travel times in seconds.
type TravelTimeCache interface {
	// Fetch cached durations for one origin key and multiple destination keys.
	// Absent pairs are simply missing from the result map.
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]int, error)
	// Store durations for a single origin key.
	PutMany(ctx context.Context, origin string, results map[string]int) error
}
