package response_models

import (
	"time"

	"tripplanner/internal/stats"
)

type TripSummary struct {
	ID           string    `json:"id"`
	TripName     string    `json:"tripName"`
	Destination  string    `json:"destination"`
	DurationDays int       `json:"durationDays"`
	BudgetTier   string    `json:"budgetTier"`
	StartDate    string    `json:"startDate,omitempty"`
	Upcoming     bool      `json:"upcoming"`
	CreatedAt    time.Time `json:"createdAt"`
}

type DashboardResponse struct {
	Stats stats.DashboardStats `json:"stats"`
	// PKR with thousands separators, for display
	TotalBudgetSpentText string        `json:"totalBudgetSpentText"`
	RecentTrips          []TripSummary `json:"recentTrips"`
}
