package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/albertofp/club-system/models"
	"github.com/lib/pq"
)

var (
	ErrGuardianNotFound      = errors.New("guardian not found")
	ErrGuardianEmailConflict = errors.New("guardian email conflict")
	ErrGuardianInUse         = errors.New("guardian has linked children or orders")
)

type GuardianRepository interface {
	Create(ctx context.Context, guardian *models.Guardian) error
	GetByID(ctx context.Context, id int) (*models.Guardian, error)
	List(ctx context.Context, limit, offset int) ([]models.Guardian, error)
	Update(ctx context.Context, guardian *models.Guardian) error
	Delete(ctx context.Context, id int) error
}

type postgresGuardianRepository struct {
	db *sql.DB
}

func NewPostgresGuardianRepository(db *sql.DB) GuardianRepository {
	return &postgresGuardianRepository{db: db}
}

func (r *postgresGuardianRepository) Create(ctx context.Context, g *models.Guardian) error {
	query := `
		INSERT INTO guardians (full_name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, g.FullName, g.Email, g.Phone).Scan(&g.ID, &g.CreatedAt)
	return r.handleGuardianError(err)
}

func (r *postgresGuardianRepository) scanGuardian(rowScanner interface{ Scan(...interface{}) error }) (*models.Guardian, error) {
	var g models.Guardian
	err := rowScanner.Scan(&g.ID, &g.FullName, &g.Email, &g.Phone, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuardianNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *postgresGuardianRepository) GetByID(ctx context.Context, id int) (*models.Guardian, error) {
	query := `SELECT id, full_name, email, phone, created_at FROM guardians WHERE id = $1`
	return r.scanGuardian(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresGuardianRepository) List(ctx context.Context, limit, offset int) ([]models.Guardian, error) {
	query := `
		SELECT id, full_name, email, phone, created_at
		FROM guardians
		ORDER BY full_name ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guardians := make([]models.Guardian, 0)
	for rows.Next() {
		g, scanErr := r.scanGuardian(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		guardians = append(guardians, *g)
	}
	return guardians, rows.Err()
}

func (r *postgresGuardianRepository) Update(ctx context.Context, g *models.Guardian) error {
	query := `UPDATE guardians SET full_name = $1, email = $2, phone = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, g.FullName, g.Email, g.Phone, g.ID)
	if err != nil {
		return r.handleGuardianError(err)
	}
	return checkAffectedRows(result, ErrGuardianNotFound)
}

func (r *postgresGuardianRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM guardians WHERE id = $1`, id)
	if err != nil {
		return r.handleGuardianError(err)
	}
	return checkAffectedRows(result, ErrGuardianNotFound)
}

func (r *postgresGuardianRepository) handleGuardianError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "guardians_email_key" {
				return ErrGuardianEmailConflict
			}
		case "23503":
			return ErrGuardianInUse
		}
	}
	return err
}
