package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/albertofp/club-system/models"
	"github.com/lib/pq"
)

var (
	ErrCheckInNotFound     = errors.New("check-in not found")
	ErrCheckInChildInvalid = errors.New("check-in child reference invalid")
)

type AttendanceRepository interface {
	Create(ctx context.Context, checkIn *models.CheckIn) error
	ListByChild(ctx context.Context, childID int, limit, offset int) ([]models.CheckIn, error)
	ListByDay(ctx context.Context, day time.Time) ([]models.CheckIn, error)
	Delete(ctx context.Context, id int) error
}

type postgresAttendanceRepository struct {
	db *sql.DB
}

func NewPostgresAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &postgresAttendanceRepository{db: db}
}

func (r *postgresAttendanceRepository) Create(ctx context.Context, c *models.CheckIn) error {
	query := `
		INSERT INTO check_ins (child_id, date, method, confidence)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, c.ChildID, c.Date, c.Method, c.Confidence).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "check_ins_child_id_fkey" {
				return ErrCheckInChildInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresAttendanceRepository) scanCheckIn(rowScanner interface{ Scan(...interface{}) error }) (*models.CheckIn, error) {
	var c models.CheckIn
	err := rowScanner.Scan(&c.ID, &c.ChildID, &c.Date, &c.Method, &c.Confidence, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCheckInNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresAttendanceRepository) ListByChild(ctx context.Context, childID int, limit, offset int) ([]models.CheckIn, error) {
	query := `
		SELECT id, child_id, date, method, confidence, created_at
		FROM check_ins
		WHERE child_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, childID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkIns := make([]models.CheckIn, 0)
	for rows.Next() {
		c, scanErr := r.scanCheckIn(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		checkIns = append(checkIns, *c)
	}
	return checkIns, rows.Err()
}

func (r *postgresAttendanceRepository) ListByDay(ctx context.Context, day time.Time) ([]models.CheckIn, error) {
	query := `
		SELECT id, child_id, date, method, confidence, created_at
		FROM check_ins
		WHERE date >= $1 AND date < $2
		ORDER BY date ASC`

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	rows, err := r.db.QueryContext(ctx, query, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkIns := make([]models.CheckIn, 0)
	for rows.Next() {
		c, scanErr := r.scanCheckIn(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		checkIns = append(checkIns, *c)
	}
	return checkIns, rows.Err()
}

func (r *postgresAttendanceRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM check_ins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCheckInNotFound)
}
