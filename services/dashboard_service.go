package services

import (
	"context"
	"fmt"

	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	childRepo      repositories.ChildRepository
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	paymentRepo    repositories.PaymentRepository
}

func NewDashboardService(
	childRepo repositories.ChildRepository,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	paymentRepo repositories.PaymentRepository,
) DashboardService {
	return &dashboardService{
		childRepo:      childRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		paymentRepo:    paymentRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats

	g, groupCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.childRepo.Count(groupCtx)
		stats.ChildrenTotal = count
		return err
	})
	g.Go(func() error {
		count, err := s.teamRepo.Count(groupCtx)
		stats.TeamsTotal = count
		return err
	})
	g.Go(func() error {
		active := models.TournamentStatusActive
		count, err := s.tournamentRepo.Count(groupCtx, &active)
		stats.ActiveTournaments = count
		return err
	})
	g.Go(func() error {
		count, err := s.matchRepo.CountByStatus(groupCtx, models.MatchStatusFinished)
		stats.MatchesPlayed = count
		return err
	})
	g.Go(func() error {
		count, err := s.paymentRepo.CountByStatus(groupCtx, models.PaymentStatusPending)
		stats.PendingPayments = count
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to collect dashboard stats: %w", err)
	}
	return &stats, nil
}
