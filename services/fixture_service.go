package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/albertofp/club-system/fixtures"
	"github.com/albertofp/club-system/live"
	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/repositories"
)

type FixtureService interface {
	// GenerateFixtures builds and persists the full schedule for a
	// tournament. The whole batch is written atomically; a failure leaves no
	// partial fixture set behind.
	GenerateFixtures(ctx context.Context, tournamentID int, format string) ([]*models.Match, error)
}

type fixtureService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	generator      fixtures.ScheduleGenerator
	hub            *live.Hub
	logger         *slog.Logger
}

func NewFixtureService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	generator fixtures.ScheduleGenerator,
	hub *live.Hub,
	logger *slog.Logger,
) FixtureService {
	return &fixtureService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		generator:      generator,
		hub:            hub,
		logger:         logger,
	}
}

func (s *fixtureService) GenerateFixtures(ctx context.Context, tournamentID int, rawFormat string) ([]*models.Match, error) {
	format, err := parseFormat(rawFormat)
	if err != nil {
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}
	if len(teams) < 2 {
		return nil, ErrNotEnoughTeams
	}

	// Generating twice would silently double the schedule, so a tournament
	// that already has matches is rejected outright.
	existing, err := s.matchRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches for tournament %d: %w", tournamentID, err)
	}
	if existing > 0 {
		return nil, ErrFixturesAlreadyExist
	}

	teamIDs := make([]int, len(teams))
	for i, team := range teams {
		teamIDs[i] = team.ID
	}

	pairings, err := s.generator.GenerateSchedule(teamIDs, format)
	if err != nil {
		return nil, fmt.Errorf("schedule generation failed for tournament %d: %w", tournamentID, err)
	}

	matches := make([]*models.Match, len(pairings))
	for i, p := range pairings {
		matches[i] = &models.Match{
			TournamentID: tournamentID,
			HomeTeamID:   p.HomeTeamID,
			AwayTeamID:   p.AwayTeamID,
			Round:        p.Round,
			RoundLabel:   fmt.Sprintf("Round %d", p.Round),
			Date:         tournament.StartDate.AddDate(0, 0, p.Round-1),
			Status:       models.MatchStatusScheduled,
		}
	}

	if err := s.matchRepo.CreateBatch(ctx, matches); err != nil {
		return nil, fmt.Errorf("failed to persist fixtures for tournament %d: %w", tournamentID, err)
	}

	s.logger.Info("fixtures generated",
		slog.Int("tournament_id", tournamentID),
		slog.String("format", string(format)),
		slog.Int("matches", len(matches)),
	)

	if s.hub != nil {
		s.hub.BroadcastToRoom(live.TournamentRoom(tournamentID), live.Message{
			Type:    live.EventFixturesGenerated,
			Payload: map[string]interface{}{"tournament_id": tournamentID, "generated": len(matches)},
		})
	}

	return matches, nil
}
