package fixtures

import (
	"github.com/albertofp/club-system/models"
)

// Pairing is one generated fixture: which team hosts, which visits, and the
// 1-based round it belongs to. Team IDs are opaque to the generator.
type Pairing struct {
	HomeTeamID int
	AwayTeamID int
	Round      int
}

type ScheduleGenerator interface {
	GenerateSchedule(teamIDs []int, format models.TournamentFormat) ([]Pairing, error)

	GetName() string
}
