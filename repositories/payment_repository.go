package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/albertofp/club-system/models"
	"github.com/lib/pq"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentChildInvalid = errors.New("payment child reference invalid")
)

type ListPaymentsFilter struct {
	ChildID *int
	Status  *models.PaymentStatus
	Limit   int
	Offset  int
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id int) (*models.Payment, error)
	List(ctx context.Context, filter ListPaymentsFilter) ([]models.Payment, error)
	MarkPaid(ctx context.Context, id int, paidAt time.Time) error
	Delete(ctx context.Context, id int) error
	CountByStatus(ctx context.Context, status models.PaymentStatus) (int, error)
}

type postgresPaymentRepository struct {
	db *sql.DB
}

func NewPostgresPaymentRepository(db *sql.DB) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

func (r *postgresPaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (child_id, concept, amount_cents, status, reference)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.ChildID, p.Concept, p.AmountCents, p.Status, p.Reference,
	).Scan(&p.ID, &p.CreatedAt)
	return r.handlePaymentError(err)
}

func (r *postgresPaymentRepository) scanPayment(rowScanner interface{ Scan(...interface{}) error }) (*models.Payment, error) {
	var p models.Payment
	err := rowScanner.Scan(
		&p.ID, &p.ChildID, &p.Concept, &p.AmountCents,
		&p.Status, &p.Reference, &p.PaidAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPaymentRepository) GetByID(ctx context.Context, id int) (*models.Payment, error) {
	query := `
		SELECT id, child_id, concept, amount_cents, status, reference, paid_at, created_at
		FROM payments
		WHERE id = $1`
	return r.scanPayment(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPaymentRepository) List(ctx context.Context, filter ListPaymentsFilter) ([]models.Payment, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, child_id, concept, amount_cents, status, reference, paid_at, created_at
		FROM payments
		WHERE 1=1`)

	args := make([]interface{}, 0, 4)
	if filter.ChildID != nil {
		args = append(args, *filter.ChildID)
		queryBuilder.WriteString(" AND child_id = $" + strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(len(args)))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")
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

	payments := make([]models.Payment, 0)
	for rows.Next() {
		p, scanErr := r.scanPayment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *postgresPaymentRepository) MarkPaid(ctx context.Context, id int, paidAt time.Time) error {
	// Guard on status so marking an already-paid record twice is a no-op
	// reported as not found rather than silently rewriting paid_at.
	query := `
		UPDATE payments
		SET status = $1, paid_at = $2
		WHERE id = $3 AND status = $4`

	result, err := r.db.ExecContext(ctx, query,
		models.PaymentStatusPaid, paidAt, id, models.PaymentStatusPending)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPaymentNotFound)
}

func (r *postgresPaymentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPaymentNotFound)
}

func (r *postgresPaymentRepository) CountByStatus(ctx context.Context, status models.PaymentStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *postgresPaymentRepository) handlePaymentError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" && pqErr.Constraint == "payments_child_id_fkey" {
			return ErrPaymentChildInvalid
		}
	}
	return err
}
