package services

import (
	"context"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/albertofp/club-system/fixtures"
	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTournamentRepo struct {
	repositories.TournamentRepository
	tournaments map[int]*models.Tournament
}

func (s *stubTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	t, ok := s.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return t, nil
}

type stubTeamRepo struct {
	repositories.TeamRepository
	byTournament map[int][]*models.Team
}

func (s *stubTeamRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Team, error) {
	return s.byTournament[tournamentID], nil
}

type stubMatchRepo struct {
	repositories.MatchRepository
	existing int
	created  []*models.Match
	matches  []*models.Match
}

func (s *stubMatchRepo) CountByTournament(_ context.Context, _ int) (int, error) {
	return s.existing, nil
}

func (s *stubMatchRepo) CreateBatch(_ context.Context, matches []*models.Match) error {
	for i, m := range matches {
		m.ID = i + 1
	}
	s.created = matches
	return nil
}

func (s *stubMatchRepo) ListByTournament(_ context.Context, _ int, _ *int, _ *models.MatchStatus) ([]*models.Match, error) {
	return s.matches, nil
}

func newFixtureServiceForTest(
	tournaments map[int]*models.Tournament,
	teams map[int][]*models.Team,
	matchRepo *stubMatchRepo,
) FixtureService {
	return NewFixtureService(
		&stubTournamentRepo{tournaments: tournaments},
		&stubTeamRepo{byTournament: teams},
		matchRepo,
		fixtures.NewRoundRobinGenerator(),
		nil,
		slog.Default(),
	)
}

func teamsNamed(ids ...int) []*models.Team {
	teams := make([]*models.Team, len(ids))
	for i, id := range ids {
		teams[i] = &models.Team{ID: id, Name: "Team " + string(rune('A'+i))}
	}
	return teams
}

func TestGenerateFixturesTournamentNotFound(t *testing.T) {
	svc := newFixtureServiceForTest(map[int]*models.Tournament{}, nil, &stubMatchRepo{})

	_, err := svc.GenerateFixtures(context.Background(), 42, "")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestGenerateFixturesNotEnoughTeams(t *testing.T) {
	tournaments := map[int]*models.Tournament{1: {ID: 1, StartDate: time.Now()}}
	teams := map[int][]*models.Team{1: teamsNamed(10)}
	svc := newFixtureServiceForTest(tournaments, teams, &stubMatchRepo{})

	_, err := svc.GenerateFixtures(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrNotEnoughTeams)
}

func TestGenerateFixturesUnknownFormat(t *testing.T) {
	tournaments := map[int]*models.Tournament{1: {ID: 1, StartDate: time.Now()}}
	teams := map[int][]*models.Team{1: teamsNamed(10, 11, 12)}
	svc := newFixtureServiceForTest(tournaments, teams, &stubMatchRepo{})

	_, err := svc.GenerateFixtures(context.Background(), 1, "swiss")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestGenerateFixturesRejectsExistingSchedule(t *testing.T) {
	tournaments := map[int]*models.Tournament{1: {ID: 1, StartDate: time.Now()}}
	teams := map[int][]*models.Team{1: teamsNamed(10, 11, 12, 13)}
	svc := newFixtureServiceForTest(tournaments, teams, &stubMatchRepo{existing: 6})

	_, err := svc.GenerateFixtures(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrFixturesAlreadyExist)
}

func TestGenerateFixturesPersistsSchedule(t *testing.T) {
	start := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	tournaments := map[int]*models.Tournament{1: {ID: 1, StartDate: start}}
	teams := map[int][]*models.Team{1: teamsNamed(10, 11, 12, 13)}
	matchRepo := &stubMatchRepo{}
	svc := newFixtureServiceForTest(tournaments, teams, matchRepo)

	matches, err := svc.GenerateFixtures(context.Background(), 1, "round-robin")
	require.NoError(t, err)
	require.Len(t, matches, 6)
	assert.Equal(t, matches, matchRepo.created)

	for _, m := range matches {
		assert.Equal(t, 1, m.TournamentID)
		assert.Equal(t, models.MatchStatusScheduled, m.Status)
		assert.GreaterOrEqual(t, m.Round, 1)
		assert.LessOrEqual(t, m.Round, 3)

		// Date follows the round: start date plus round-1 days.
		wantDate := start.AddDate(0, 0, m.Round-1)
		assert.Equal(t, wantDate, m.Date)
		assert.Equal(t, "Round "+strconv.Itoa(m.Round), m.RoundLabel)
	}
}

func TestGenerateFixturesDoubleRoundRobin(t *testing.T) {
	start := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	tournaments := map[int]*models.Tournament{1: {ID: 1, StartDate: start}}
	teams := map[int][]*models.Team{1: teamsNamed(10, 11, 12, 13)}
	svc := newFixtureServiceForTest(tournaments, teams, &stubMatchRepo{})

	matches, err := svc.GenerateFixtures(context.Background(), 1, "double-round-robin")
	require.NoError(t, err)
	assert.Len(t, matches, 12)
}
