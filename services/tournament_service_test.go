package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusTrackingTournamentRepo struct {
	stubTournamentRepo
	updatedStatus *models.TournamentStatus
}

func (s *statusTrackingTournamentRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, _ int, status models.TournamentStatus) error {
	s.updatedStatus = &status
	return nil
}

func newTournamentServiceForTest(repo repositories.TournamentRepository, matchRepo *stubMatchRepo) TournamentService {
	return NewTournamentService(repo, &stubTeamRepo{}, matchRepo, slog.Default())
}

func TestUpdateTournamentStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current models.TournamentStatus
		next    models.TournamentStatus
		wantErr error
	}{
		{"upcoming to active", models.TournamentStatusUpcoming, models.TournamentStatusActive, nil},
		{"upcoming to canceled", models.TournamentStatusUpcoming, models.TournamentStatusCanceled, nil},
		{"active to completed", models.TournamentStatusActive, models.TournamentStatusCompleted, nil},
		{"same status is a no-op", models.TournamentStatusActive, models.TournamentStatusActive, nil},
		{"upcoming to completed", models.TournamentStatusUpcoming, models.TournamentStatusCompleted, ErrTournamentInvalidStatusTransition},
		{"completed is terminal", models.TournamentStatusCompleted, models.TournamentStatusActive, ErrTournamentInvalidStatusTransition},
		{"canceled is terminal", models.TournamentStatusCanceled, models.TournamentStatusUpcoming, ErrTournamentInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &statusTrackingTournamentRepo{
				stubTournamentRepo: stubTournamentRepo{
					tournaments: map[int]*models.Tournament{1: {ID: 1, Status: tt.current}},
				},
			}
			svc := newTournamentServiceForTest(repo, &stubMatchRepo{})

			tournament, err := svc.UpdateTournamentStatus(context.Background(), 1, tt.next)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, tournament.Status)
		})
	}
}

func TestUpdateTournamentStatusRejectsUnknownStatus(t *testing.T) {
	svc := newTournamentServiceForTest(&stubTournamentRepo{}, &stubMatchRepo{})

	_, err := svc.UpdateTournamentStatus(context.Background(), 1, "archived")
	assert.ErrorIs(t, err, ErrTournamentInvalidStatus)
}

func TestDeleteTournamentBlockedByMatches(t *testing.T) {
	repo := &stubTournamentRepo{tournaments: map[int]*models.Tournament{1: {ID: 1}}}
	svc := newTournamentServiceForTest(repo, &stubMatchRepo{existing: 6})

	err := svc.DeleteTournament(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTournamentHasMatches)
}

func TestCreateTournamentValidation(t *testing.T) {
	svc := newTournamentServiceForTest(&stubTournamentRepo{}, &stubMatchRepo{})

	_, err := svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "  "})
	assert.ErrorIs(t, err, ErrTournamentNameRequired)

	_, err = svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "Spring Cup"})
	assert.ErrorIs(t, err, ErrTournamentStartRequired)

	zero := time.Time{}
	_, err = svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "Spring Cup", StartDate: &zero})
	assert.ErrorIs(t, err, ErrTournamentStartRequired)
}
