package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/albertofp/club-system/models"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductOutOfStock = errors.New("product out of stock")
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	// DecrementStock atomically reduces stock by quantity; it fails with
	// ErrProductOutOfStock when the remaining stock is insufficient.
	DecrementStock(ctx context.Context, exec SQLExecutor, id, quantity int) error
	IncrementStock(ctx context.Context, exec SQLExecutor, id, quantity int) error
	Delete(ctx context.Context, id int) error
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

func (r *postgresProductRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresProductRepository) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, price_cents, stock, image_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query, p.Name, p.PriceCents, p.Stock, p.ImageKey).
		Scan(&p.ID, &p.CreatedAt)
}

func (r *postgresProductRepository) scanProduct(rowScanner interface{ Scan(...interface{}) error }) (*models.Product, error) {
	var p models.Product
	err := rowScanner.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Stock, &p.ImageKey, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	query := `SELECT id, name, price_cents, stock, image_key, created_at FROM products WHERE id = $1`
	return r.scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresProductRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, name, price_cents, stock, image_key, created_at FROM products ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, scanErr := r.scanProduct(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *postgresProductRepository) Update(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, price_cents = $2, stock = $3, image_key = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.PriceCents, p.Stock, p.ImageKey, p.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProductNotFound)
}

func (r *postgresProductRepository) DecrementStock(ctx context.Context, exec SQLExecutor, id, quantity int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`

	result, err := executor.ExecContext(ctx, query, quantity, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProductOutOfStock)
}

func (r *postgresProductRepository) IncrementStock(ctx context.Context, exec SQLExecutor, id, quantity int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE products SET stock = stock + $1 WHERE id = $2`, quantity, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProductNotFound)
}

func (r *postgresProductRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProductNotFound)
}
