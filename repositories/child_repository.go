package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/albertofp/club-system/models"
	"github.com/lib/pq"
)

var (
	ErrChildNotFound        = errors.New("child not found")
	ErrChildGuardianInvalid = errors.New("child guardian reference invalid")
	ErrChildTeamInvalid     = errors.New("child team reference invalid")
)

type ListChildrenFilter struct {
	GuardianID *int
	TeamID     *int
	Limit      int
	Offset     int
}

type ChildRepository interface {
	Create(ctx context.Context, child *models.Child) error
	GetByID(ctx context.Context, id int) (*models.Child, error)
	List(ctx context.Context, filter ListChildrenFilter) ([]models.Child, error)
	Update(ctx context.Context, child *models.Child) error
	UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresChildRepository struct {
	db *sql.DB
}

func NewPostgresChildRepository(db *sql.DB) ChildRepository {
	return &postgresChildRepository{db: db}
}

func (r *postgresChildRepository) Create(ctx context.Context, c *models.Child) error {
	query := `
		INSERT INTO children (first_name, last_name, birth_date, guardian_id, team_id, photo_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		c.FirstName, c.LastName, c.BirthDate, c.GuardianID, c.TeamID, c.PhotoKey,
	).Scan(&c.ID, &c.CreatedAt)
	return r.handleChildError(err)
}

func (r *postgresChildRepository) scanChild(rowScanner interface{ Scan(...interface{}) error }) (*models.Child, error) {
	var c models.Child
	err := rowScanner.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.BirthDate,
		&c.GuardianID, &c.TeamID, &c.PhotoKey, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresChildRepository) GetByID(ctx context.Context, id int) (*models.Child, error) {
	query := `
		SELECT id, first_name, last_name, birth_date, guardian_id, team_id, photo_key, created_at
		FROM children
		WHERE id = $1`
	return r.scanChild(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresChildRepository) List(ctx context.Context, filter ListChildrenFilter) ([]models.Child, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, first_name, last_name, birth_date, guardian_id, team_id, photo_key, created_at
		FROM children
		WHERE 1=1`)

	args := make([]interface{}, 0, 4)
	if filter.GuardianID != nil {
		args = append(args, *filter.GuardianID)
		queryBuilder.WriteString(" AND guardian_id = $" + strconv.Itoa(len(args)))
	}
	if filter.TeamID != nil {
		args = append(args, *filter.TeamID)
		queryBuilder.WriteString(" AND team_id = $" + strconv.Itoa(len(args)))
	}
	queryBuilder.WriteString(" ORDER BY last_name ASC, first_name ASC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		queryBuilder.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		queryBuilder.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	children := make([]models.Child, 0)
	for rows.Next() {
		c, scanErr := r.scanChild(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		children = append(children, *c)
	}
	return children, rows.Err()
}

func (r *postgresChildRepository) Update(ctx context.Context, c *models.Child) error {
	query := `
		UPDATE children
		SET first_name = $1, last_name = $2, birth_date = $3, guardian_id = $4, team_id = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		c.FirstName, c.LastName, c.BirthDate, c.GuardianID, c.TeamID, c.ID)
	if err != nil {
		return r.handleChildError(err)
	}
	return checkAffectedRows(result, ErrChildNotFound)
}

func (r *postgresChildRepository) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE children SET photo_key = $1 WHERE id = $2`, photoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChildNotFound)
}

func (r *postgresChildRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM children WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChildNotFound)
}

func (r *postgresChildRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM children`).Scan(&count)
	return count, err
}

func (r *postgresChildRepository) handleChildError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "children_guardian_id_fkey":
				return ErrChildGuardianInvalid
			case "children_team_id_fkey":
				return ErrChildTeamInvalid
			}
		}
	}
	return err
}
