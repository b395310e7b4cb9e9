package request_models

type GenerateTripRequest struct {
	Destination    string `json:"destination" binding:"required"`
	DurationDays   int    `json:"durationDays" binding:"required"`
	BudgetTier     string `json:"budget" binding:"required"`
	CompanionType  string `json:"companion" binding:"required"`
	NumberOfPeople int    `json:"numberOfPeople"`
	// YYYY-MM-DD, optional
	StartDate string `json:"startDate"`
}

type TripChatRequest struct {
	Message string `json:"message" binding:"required"`
}
