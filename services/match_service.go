package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/albertofp/club-system/live"
	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/repositories"
)

type RecordResultInput struct {
	HomeScore int `json:"home_score"`
	AwayScore int `json:"away_score"`
}

type MatchService interface {
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListMatchesByTournament(ctx context.Context, tournamentID int, round *int, status *models.MatchStatus) ([]*models.Match, error)
	// RecordResult finalizes a scheduled match with its score and announces
	// the result on the tournament's live room.
	RecordResult(ctx context.Context, id int, input RecordResultInput) (*models.Match, error)
	RescheduleMatch(ctx context.Context, id int, date time.Time) (*models.Match, error)
}

type matchService struct {
	matchRepo repositories.MatchRepository
	hub       *live.Hub
	logger    *slog.Logger
}

func NewMatchService(matchRepo repositories.MatchRepository, hub *live.Hub, logger *slog.Logger) MatchService {
	return &matchService{matchRepo: matchRepo, hub: hub, logger: logger}
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) ListMatchesByTournament(ctx context.Context, tournamentID int, round *int, status *models.MatchStatus) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, round, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	if matches == nil {
		return []*models.Match{}, nil
	}
	return matches, nil
}

func (s *matchService) RecordResult(ctx context.Context, id int, input RecordResultInput) (*models.Match, error) {
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return nil, ErrMatchInvalidScore
	}

	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.Status == models.MatchStatusFinished {
		return nil, ErrMatchAlreadyFinished
	}

	if err := s.matchRepo.UpdateResult(ctx, id, input.HomeScore, input.AwayScore, models.MatchStatusFinished); err != nil {
		return nil, fmt.Errorf("failed to record result for match %d: %w", id, err)
	}

	match.HomeScore = &input.HomeScore
	match.AwayScore = &input.AwayScore
	match.Status = models.MatchStatusFinished

	s.logger.Info("match result recorded",
		slog.Int("match_id", id),
		slog.Int("tournament_id", match.TournamentID),
		slog.Int("home_score", input.HomeScore),
		slog.Int("away_score", input.AwayScore),
	)

	if s.hub != nil {
		s.hub.BroadcastToRoom(live.TournamentRoom(match.TournamentID), live.Message{
			Type:    live.EventMatchResult,
			Payload: match,
		})
	}
	return match, nil
}

func (s *matchService) RescheduleMatch(ctx context.Context, id int, date time.Time) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.Status == models.MatchStatusFinished {
		return nil, ErrMatchAlreadyFinished
	}

	if err := s.matchRepo.UpdateDate(ctx, id, date); err != nil {
		return nil, fmt.Errorf("failed to reschedule match %d: %w", id, err)
	}
	match.Date = date

	if s.hub != nil {
		s.hub.BroadcastToRoom(live.TournamentRoom(match.TournamentID), live.Message{
			Type:    live.EventMatchRescheduled,
			Payload: match,
		})
	}
	return match, nil
}
