package domain

// DayRoute is the ordered list of stop positions (indices into the planning
// stop list) assigned to one day. The two base points are implicit prefix and
// suffix and never appear in a route. A route containing the fixed-time
// anchor places it last.
type DayRoute []int

// Clone returns an independent copy of the route.
func (r DayRoute) Clone() DayRoute {
	out := make(DayRoute, len(r))
	copy(out, r)
	return out
}

// CloneRoutes deep-copies a per-day route set. Edits always operate on a copy
// and replace the session's routes wholesale.
func CloneRoutes(routes []DayRoute) []DayRoute {
	out := make([]DayRoute, len(routes))
	for i, r := range routes {
		out[i] = r.Clone()
	}
	return out
}
