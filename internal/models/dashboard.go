package models

// DashboardMode selects how bookings are assigned to buckets
type DashboardMode string

const (
	// DashboardModeOverlapping evaluates each bucket independently
	DashboardModeOverlapping DashboardMode = "overlapping"
	// DashboardModeExclusive assigns each booking to one bucket: cancelled > past > upcoming
	DashboardModeExclusive DashboardMode = "exclusive"
)

// DashboardSummary holds the dashboard stat cards
type DashboardSummary struct {
	Total             int    `json:"total"`
	Upcoming          int    `json:"upcoming"`
	Past              int    `json:"past"`
	Cancelled         int    `json:"cancelled"`
	TotalSpent        int    `json:"totalSpent"`
	TotalSpentDisplay string `json:"totalSpentDisplay"`
}

// Dashboard is the student dashboard payload
type Dashboard struct {
	Mode      DashboardMode    `json:"mode"`
	Upcoming  []BookingView    `json:"upcoming"`
	Past      []BookingView    `json:"past"`
	Cancelled []BookingView    `json:"cancelled"`
	Summary   DashboardSummary `json:"summary"`
}
