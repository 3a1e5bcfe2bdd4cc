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
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderGuardianInvalid = errors.New("order guardian reference invalid")
	ErrOrderProductInvalid  = errors.New("order product reference invalid")
)

type ListOrdersFilter struct {
	GuardianID *int
	Status     *models.OrderStatus
	Limit      int
	Offset     int
}

type OrderRepository interface {
	Create(ctx context.Context, exec SQLExecutor, order *models.Order) error
	GetByID(ctx context.Context, id int) (*models.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.OrderStatus) error
}

type postgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

func (r *postgresOrderRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresOrderRepository) Create(ctx context.Context, exec SQLExecutor, o *models.Order) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO orders (guardian_id, product_id, quantity, total_cents, status, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		o.GuardianID, o.ProductID, o.Quantity, o.TotalCents, o.Status, o.Reference,
	).Scan(&o.ID, &o.CreatedAt)
	return r.handleOrderError(err)
}

func (r *postgresOrderRepository) scanOrder(rowScanner interface{ Scan(...interface{}) error }) (*models.Order, error) {
	var o models.Order
	err := rowScanner.Scan(
		&o.ID, &o.GuardianID, &o.ProductID, &o.Quantity,
		&o.TotalCents, &o.Status, &o.Reference, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *postgresOrderRepository) GetByID(ctx context.Context, id int) (*models.Order, error) {
	query := `
		SELECT id, guardian_id, product_id, quantity, total_cents, status, reference, created_at
		FROM orders
		WHERE id = $1`
	return r.scanOrder(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresOrderRepository) List(ctx context.Context, filter ListOrdersFilter) ([]models.Order, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, guardian_id, product_id, quantity, total_cents, status, reference, created_at
		FROM orders
		WHERE 1=1`)

	args := make([]interface{}, 0, 4)
	if filter.GuardianID != nil {
		args = append(args, *filter.GuardianID)
		queryBuilder.WriteString(" AND guardian_id = $" + strconv.Itoa(len(args)))
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

	orders := make([]models.Order, 0)
	for rows.Next() {
		o, scanErr := r.scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *postgresOrderRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.OrderStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrOrderNotFound)
}

func (r *postgresOrderRepository) handleOrderError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "orders_guardian_id_fkey":
				return ErrOrderGuardianInvalid
			case "orders_product_id_fkey":
				return ErrOrderProductInvalid
			}
		}
	}
	return err
}
