package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusFinished  MatchStatus = "finished"
	MatchStatusCanceled  MatchStatus = "canceled"
)

// Match is a single fixture between two teams of the same tournament.
// HomeScore and AwayScore are only meaningful while Status is finished;
// consumers must treat them as absent otherwise.
type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	HomeTeamID   int         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   int         `json:"away_team_id" db:"away_team_id"`
	Round        int         `json:"round" db:"round"`
	RoundLabel   string      `json:"round_label" db:"round_label"`
	GroupLabel   *string     `json:"group_label,omitempty" db:"group_label"`
	Date         time.Time   `json:"date" db:"date"`
	Status       MatchStatus `json:"status" db:"status"`
	HomeScore    *int        `json:"home_score,omitempty" db:"home_score"`
	AwayScore    *int        `json:"away_score,omitempty" db:"away_score"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}
