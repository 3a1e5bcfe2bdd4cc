package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFixtureService struct {
	matches []*models.Match
	err     error
}

func (s *stubFixtureService) GenerateFixtures(_ context.Context, _ int, _ string) ([]*models.Match, error) {
	return s.matches, s.err
}

type stubStandingsService struct {
	rows []models.StandingsRow
	err  error
}

func (s *stubStandingsService) GetStandings(_ context.Context, _ int) ([]models.StandingsRow, error) {
	return s.rows, s.err
}

func newTestRouter(fs services.FixtureService, ss services.StandingsService) *chi.Mux {
	h := NewTournamentHandler(nil, fs, ss)
	router := chi.NewRouter()
	router.Post("/tournaments/{tournamentID}/fixtures", h.GenerateFixturesHandler)
	router.Get("/tournaments/{tournamentID}/standings", h.StandingsHandler)
	return router
}

func TestGenerateFixturesHandlerCreated(t *testing.T) {
	matches := []*models.Match{
		{ID: 1, TournamentID: 1, HomeTeamID: 10, AwayTeamID: 11, Round: 1},
		{ID: 2, TournamentID: 1, HomeTeamID: 12, AwayTeamID: 13, Round: 1},
	}
	router := newTestRouter(&stubFixtureService{matches: matches}, &stubStandingsService{})

	req := httptest.NewRequest(http.MethodPost, "/tournaments/1/fixtures", strings.NewReader(`{"format":"round-robin"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Generated int            `json:"generated"`
		Matches   []models.Match `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Generated)
	assert.Len(t, body.Matches, 2)
}

func TestGenerateFixturesHandlerAcceptsEmptyBody(t *testing.T) {
	router := newTestRouter(&stubFixtureService{matches: []*models.Match{}}, &stubStandingsService{})

	req := httptest.NewRequest(http.MethodPost, "/tournaments/1/fixtures", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestGenerateFixturesHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"tournament missing", services.ErrTournamentNotFound, http.StatusNotFound},
		{"too few teams", services.ErrNotEnoughTeams, http.StatusBadRequest},
		{"unknown format", services.ErrInvalidFormat, http.StatusBadRequest},
		{"already generated", services.ErrFixturesAlreadyExist, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubFixtureService{err: tt.serviceErr}, &stubStandingsService{})

			req := httptest.NewRequest(http.MethodPost, "/tournaments/1/fixtures", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGenerateFixturesHandlerInvalidID(t *testing.T) {
	router := newTestRouter(&stubFixtureService{}, &stubStandingsService{})

	req := httptest.NewRequest(http.MethodPost, "/tournaments/abc/fixtures", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStandingsHandlerReturnsOrderedRows(t *testing.T) {
	rows := []models.StandingsRow{
		{TeamID: 1, TeamName: "A", Points: 3},
		{TeamID: 3, TeamName: "C", Points: 1},
		{TeamID: 2, TeamName: "B", Points: 1},
	}
	router := newTestRouter(&stubFixtureService{}, &stubStandingsService{rows: rows})

	req := httptest.NewRequest(http.MethodGet, "/tournaments/1/standings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.StandingsRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].TeamName)
	assert.Equal(t, "C", got[1].TeamName)
	assert.Equal(t, "B", got[2].TeamName)
}

func TestStandingsHandlerEmptyTable(t *testing.T) {
	router := newTestRouter(&stubFixtureService{}, &stubStandingsService{rows: []models.StandingsRow{}})

	req := httptest.NewRequest(http.MethodGet, "/tournaments/1/standings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestStandingsHandlerTournamentNotFound(t *testing.T) {
	router := newTestRouter(&stubFixtureService{}, &stubStandingsService{err: services.ErrTournamentNotFound})

	req := httptest.NewRequest(http.MethodGet, "/tournaments/99/standings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
