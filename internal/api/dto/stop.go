package dto

type StopResponse struct {
	StopID          int     `json:"stop_id"`
	Name            string  `json:"name"`
	Layer           string  `json:"layer"`
	Note            string  `json:"note,omitempty"`
	Lon             float64 `json:"lon"`
	Lat             float64 `json:"lat"`
	StayOverrideMin *int    `json:"stay_override_min,omitempty"`
	Role            string  `json:"role"`
}

type ListStopsResponse struct {
	Stops      []StopResponse `json:"stops"`
	Advisories []string       `json:"advisories,omitempty"`
}

type AddStopRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Layer   string `json:"layer"`
	StayMin *int   `json:"stay_min"`
}

type AddStopResponse struct {
	Stop             StopResponse `json:"stop"`
	FormattedAddress string       `json:"formatted_address"`
}

type ImportRequest struct {
	MapID  string   `json:"map_id"`
	Layers []string `json:"layers"`
}

type ImportResponse struct {
	MapName    string         `json:"map_name"`
	Stops      []StopResponse `json:"stops"`
	Layers     []string       `json:"layers"`
	Advisories []string       `json:"advisories,omitempty"`
}
