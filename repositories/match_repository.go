package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/albertofp/club-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament reference invalid")
	ErrMatchTeamInvalid       = errors.New("match team reference invalid")
)

type MatchRepository interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, round *int, status *models.MatchStatus) ([]*models.Match, error)
	// CreateBatch inserts all matches inside a single transaction; either the
	// whole fixture set is persisted or none of it is.
	CreateBatch(ctx context.Context, matches []*models.Match) error
	CountByTournament(ctx context.Context, tournamentID int) (int, error)
	CountByStatus(ctx context.Context, status models.MatchStatus) (int, error)
	UpdateResult(ctx context.Context, id int, homeScore, awayScore int, status models.MatchStatus) error
	UpdateDate(ctx context.Context, id int, date time.Time) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := rowScanner.Scan(
		&m.ID,
		&m.TournamentID,
		&m.HomeTeamID,
		&m.AwayTeamID,
		&m.Round,
		&m.RoundLabel,
		&m.GroupLabel,
		&m.Date,
		&m.Status,
		&m.HomeScore,
		&m.AwayScore,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, home_team_id, away_team_id, round, round_label,
		       group_label, date, status, home_score, away_score, created_at
		FROM matches
		WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int, roundFilter *int, statusFilter *models.MatchStatus) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, tournament_id, home_team_id, away_team_id, round, round_label,
		       group_label, date, status, home_score, away_score, created_at
		FROM matches
		WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	if roundFilter != nil {
		args = append(args, *roundFilter)
		queryBuilder.WriteString(" AND round = $" + strconv.Itoa(len(args)))
	}
	if statusFilter != nil {
		args = append(args, *statusFilter)
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(len(args)))
	}
	queryBuilder.WriteString(" ORDER BY round ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("CreateBatch failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches
			(tournament_id, home_team_id, away_team_id, round, round_label, group_label, date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("CreateBatch failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		err = stmt.QueryRowContext(ctx,
			m.TournamentID,
			m.HomeTeamID,
			m.AwayTeamID,
			m.Round,
			m.RoundLabel,
			m.GroupLabel,
			m.Date,
			m.Status,
		).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("CreateBatch failed for round %d: %w", m.Round, r.handleMatchError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("CreateBatch failed to commit: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE tournament_id = $1`, tournamentID).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) CountByStatus(ctx context.Context, status models.MatchStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, id int, homeScore, awayScore int, status models.MatchStatus) error {
	query := `
		UPDATE matches
		SET home_score = $1, away_score = $2, status = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, homeScore, awayScore, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateDate(ctx context.Context, id int, date time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE matches SET date = $1 WHERE id = $2`, date, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "matches_tournament_id_fkey":
				return ErrMatchTournamentInvalid
			case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
				return ErrMatchTeamInvalid
			}
		}
	}
	return err
}
