package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/repositories"
	"golang.org/x/sync/errgroup"
)

type StandingsService interface {
	// GetStandings recomputes the league table for a tournament from its
	// full match history. It never writes; the result reflects whatever the
	// two reads observed at call time.
	GetStandings(ctx context.Context, tournamentID int) ([]models.StandingsRow, error)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
	}
}

func (s *standingsService) GetStandings(ctx context.Context, tournamentID int) ([]models.StandingsRow, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}

	var (
		teams   []*models.Team
		matches []*models.Match
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gCtx, tournamentID, nil, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load standings inputs for tournament %d: %w", tournamentID, err)
	}

	return ComputeTable(teams, matches), nil
}

// ComputeTable reduces a match history into a ranked table. Only matches that
// are finished and carry both scores count; anything else contributes nothing
// to any row. Ranking is points, then goal difference, then goals for, each
// key only discriminating among rows tied on all previous keys. The sort is
// stable, so rows tied on all three keys keep team-registration order.
func ComputeTable(teams []*models.Team, matches []*models.Match) []models.StandingsRow {
	rows := make([]models.StandingsRow, 0, len(teams))
	index := make(map[int]int, len(teams))
	for i, team := range teams {
		rows = append(rows, models.StandingsRow{TeamID: team.ID, TeamName: team.Name})
		index[team.ID] = i
	}

	for _, m := range matches {
		if m.Status != models.MatchStatusFinished {
			continue
		}
		// Guards against partially entered results marked finished.
		if m.HomeScore == nil || m.AwayScore == nil {
			continue
		}
		homeIdx, homeOK := index[m.HomeTeamID]
		awayIdx, awayOK := index[m.AwayTeamID]
		if !homeOK || !awayOK {
			continue
		}

		home, away := &rows[homeIdx], &rows[awayIdx]
		homeGoals, awayGoals := *m.HomeScore, *m.AwayScore

		home.Played++
		away.Played++
		home.GoalsFor += homeGoals
		home.GoalsAgainst += awayGoals
		away.GoalsFor += awayGoals
		away.GoalsAgainst += homeGoals

		switch {
		case homeGoals > awayGoals:
			home.Wins++
			home.Points += 3
			away.Losses++
		case awayGoals > homeGoals:
			away.Wins++
			away.Points += 3
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	for i := range rows {
		rows[i].GoalDifference = rows[i].GoalsFor - rows[i].GoalsAgainst
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})

	return rows
}
