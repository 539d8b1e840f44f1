package dto

// DashboardSuggestions is the parsed output of the dashboard advisory flow.
type DashboardSuggestions struct {
	SuggestedActions []string `json:"suggestedActions" validate:"required,min=1,dive,required"`
}

// StudentInsights is the parsed output of the student database advisory flow.
type StudentInsights struct {
	Insights    string `json:"insights" validate:"required"`
	Suggestions string `json:"suggestions" validate:"required"`
}
