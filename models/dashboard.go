package models

type DashboardStats struct {
	ChildrenTotal     int `json:"children_total"`
	TeamsTotal        int `json:"teams_total"`
	ActiveTournaments int `json:"active_tournaments"`
	MatchesPlayed     int `json:"matches_played"`
	PendingPayments   int `json:"pending_payments"`
}
