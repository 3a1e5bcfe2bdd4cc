package services

import (
	"context"
	"testing"

	"github.com/albertofp/club-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func finished(home, away, homeScore, awayScore int) *models.Match {
	return &models.Match{
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
		Status:     models.MatchStatusFinished,
	}
}

func TestComputeTableConcreteScenario(t *testing.T) {
	teams := []*models.Team{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"},
	}
	matches := []*models.Match{
		finished(1, 2, 2, 1), // A 2-1 B
		finished(2, 3, 3, 3), // B 3-3 C
	}

	rows := ComputeTable(teams, matches)
	require.Len(t, rows, 3)

	// A first on points, then C before B on goal difference.
	assert.Equal(t, "A", rows[0].TeamName)
	assert.Equal(t, "C", rows[1].TeamName)
	assert.Equal(t, "B", rows[2].TeamName)

	a, c, b := rows[0], rows[1], rows[2]
	assert.Equal(t, 1, a.Played)
	assert.Equal(t, 3, a.Points)
	assert.Equal(t, 1, a.GoalDifference)
	assert.Equal(t, 2, a.GoalsFor)

	assert.Equal(t, 2, b.Played)
	assert.Equal(t, 1, b.Points)
	assert.Equal(t, -1, b.GoalDifference)
	assert.Equal(t, 4, b.GoalsFor)

	assert.Equal(t, 1, c.Played)
	assert.Equal(t, 1, c.Points)
	assert.Equal(t, 0, c.GoalDifference)
	assert.Equal(t, 3, c.GoalsFor)
}

func TestComputeTableSkipsUnfinishedAndScorelessMatches(t *testing.T) {
	teams := []*models.Team{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

	scheduled := &models.Match{HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusScheduled}
	// Marked finished but scores never entered.
	scoreless := &models.Match{HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusFinished}
	halfEntered := &models.Match{
		HomeTeamID: 1, AwayTeamID: 2,
		HomeScore: intPtr(2),
		Status:    models.MatchStatusFinished,
	}

	rows := ComputeTable(teams, []*models.Match{scheduled, scoreless, halfEntered})
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Zero(t, row.Played)
		assert.Zero(t, row.Points)
		assert.Zero(t, row.GoalsFor)
		assert.Zero(t, row.GoalsAgainst)
	}
}

func TestComputeTableGoalsForTieBreak(t *testing.T) {
	teams := []*models.Team{
		{ID: 1, Name: "Low"},
		{ID: 2, Name: "High"},
		{ID: 3, Name: "X"},
		{ID: 4, Name: "Y"},
	}
	// Both Low and High win once: equal points, equal goal difference (+1),
	// but High scores more goals.
	matches := []*models.Match{
		finished(1, 3, 1, 0), // Low  1-0
		finished(2, 4, 4, 3), // High 4-3
	}

	rows := ComputeTable(teams, matches)
	assert.Equal(t, "High", rows[0].TeamName)
	assert.Equal(t, "Low", rows[1].TeamName)
}

func TestComputeTableFullTieKeepsRegistrationOrder(t *testing.T) {
	teams := []*models.Team{
		{ID: 7, Name: "First"},
		{ID: 9, Name: "Second"},
	}

	rows := ComputeTable(teams, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, "First", rows[0].TeamName)
	assert.Equal(t, "Second", rows[1].TeamName)
}

func TestComputeTableEmptyTeams(t *testing.T) {
	rows := ComputeTable(nil, []*models.Match{finished(1, 2, 1, 0)})
	assert.Empty(t, rows)
}

func TestComputeTablePointsBound(t *testing.T) {
	teams := []*models.Team{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"},
	}
	matches := []*models.Match{
		finished(1, 2, 2, 0),
		finished(2, 3, 1, 1),
		finished(3, 1, 0, 3),
	}

	rows := ComputeTable(teams, matches)

	totalPoints, totalPlayed := 0, 0
	for _, row := range rows {
		totalPoints += row.Points
		totalPlayed += row.Played
	}
	// Each match hands out at most 3 points and counts twice in played.
	assert.LessOrEqual(t, totalPoints*2, totalPlayed*3)
}

func TestGetStandingsTournamentNotFound(t *testing.T) {
	svc := NewStandingsService(
		&stubTournamentRepo{tournaments: map[int]*models.Tournament{}},
		&stubTeamRepo{},
		&stubMatchRepo{},
	)

	_, err := svc.GetStandings(context.Background(), 5)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestGetStandingsComputesFromRepositories(t *testing.T) {
	tournaments := map[int]*models.Tournament{1: {ID: 1, Name: "Spring Cup"}}
	teams := map[int][]*models.Team{1: {{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}
	matchRepo := &stubMatchRepo{matches: []*models.Match{finished(1, 2, 1, 0)}}

	svc := NewStandingsService(
		&stubTournamentRepo{tournaments: tournaments},
		&stubTeamRepo{byTournament: teams},
		matchRepo,
	)

	rows, err := svc.GetStandings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].TeamName)
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, 0, rows[1].Points)
}
