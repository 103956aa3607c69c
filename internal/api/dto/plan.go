package dto

type PlanRequest struct {
	StopIDs  []int `json:"stop_ids"`
	DayCount int   `json:"day_count"`
}

type TimetableEntryResponse struct {
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	Arrive        string `json:"arrive,omitempty"`
	Depart        string `json:"depart,omitempty"`
	StayMinutes   int    `json:"stay_min"`
	TravelMinutes int    `json:"travel_min"`
	WaitMinutes   int    `json:"wait_min"`
	Remark        string `json:"remark,omitempty"`
}

type DayPlanResponse struct {
	Day                int                      `json:"day"`
	StopIDs            []int                    `json:"stop_ids"`
	Entries            []TimetableEntryResponse `json:"entries"`
	TotalTravelSeconds int                      `json:"total_travel_seconds"`
	TotalStayMinutes   int                      `json:"total_stay_minutes"`
	Start              string                   `json:"start,omitempty"`
	End                string                   `json:"end,omitempty"`
	Advisories         []string                 `json:"advisories,omitempty"`
}

type PlanResponse struct {
	SolveOutcome string            `json:"solve_outcome"`
	Days         []DayPlanResponse `json:"days"`
	Advisories   []string          `json:"advisories,omitempty"`
}

type MoveStopsRequest struct {
	FromDay int   `json:"from_day"`
	ToDay   int   `json:"to_day"`
	StopIDs []int `json:"stop_ids"`
}

type ReoptimizeRequest struct {
	Day int `json:"day"`
}
