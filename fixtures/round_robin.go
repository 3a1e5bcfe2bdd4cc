package fixtures

import (
	"fmt"

	"github.com/albertofp/club-system/models"
)

// byePlaceholder pads an odd-sized team list to even size. Real team IDs come
// from the database and are always positive, so zero can never collide.
const byePlaceholder = 0

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() ScheduleGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateSchedule builds a round-robin schedule using the circle method:
// position 0 stays fixed while the remaining positions rotate after each
// round, so every team meets every other exactly once across n-1 rounds.
// Pairings on odd rounds have home and away swapped, which spreads home
// advantage evenly instead of tying it to initial list position. For a
// double round-robin, every first-leg pairing is mirrored with the venue
// reversed and its round shifted by n-1.
func (g *RoundRobinGenerator) GenerateSchedule(teamIDs []int, format models.TournamentFormat) ([]Pairing, error) {
	if len(teamIDs) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: not enough teams (found %d, min 2 required)", len(teamIDs))
	}
	if format != models.FormatRoundRobin && format != models.FormatDoubleRoundRobin {
		return nil, fmt.Errorf("RoundRobinGenerator: unsupported format %q", format)
	}

	working := make([]int, len(teamIDs))
	copy(working, teamIDs)
	if len(working)%2 != 0 {
		working = append(working, byePlaceholder)
	}
	n := len(working)

	pairings := make([]Pairing, 0, n*(n-1)/2)
	for round := 0; round < n-1; round++ {
		for i := 0; i < n/2; i++ {
			home, away := working[i], working[n-1-i]
			if home == byePlaceholder || away == byePlaceholder {
				// The team paired against the placeholder rests this round.
				continue
			}
			if round%2 == 1 {
				home, away = away, home
			}
			pairings = append(pairings, Pairing{HomeTeamID: home, AwayTeamID: away, Round: round + 1})
		}

		// Rotate: slot 0 is fixed, the last element moves to the front of
		// the remaining slice.
		last := working[n-1]
		copy(working[2:], working[1:n-1])
		working[1] = last
	}

	if format == models.FormatDoubleRoundRobin {
		firstLeg := len(pairings)
		for i := 0; i < firstLeg; i++ {
			p := pairings[i]
			pairings = append(pairings, Pairing{
				HomeTeamID: p.AwayTeamID,
				AwayTeamID: p.HomeTeamID,
				Round:      p.Round + n - 1,
			})
		}
	}

	return pairings, nil
}
