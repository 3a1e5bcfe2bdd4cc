package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/repositories"
	"github.com/albertofp/club-system/storage"
	"github.com/google/uuid"
)

type CreateProductInput struct {
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
	Stock      int    `json:"stock"`
}

type PlaceOrderInput struct {
	GuardianID int `json:"guardian_id"`
	ProductID  int `json:"product_id"`
	Quantity   int `json:"quantity"`
}

type StoreService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	GetProductByID(ctx context.Context, id int) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	// PlaceOrder reserves stock and creates the order in one transaction,
	// so stock can never go negative under concurrent orders.
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error)
	ListOrders(ctx context.Context, filter repositories.ListOrdersFilter) ([]models.Order, error)
	CancelOrder(ctx context.Context, id int) (*models.Order, error)
}

type storeService struct {
	db           *sql.DB
	productRepo  repositories.ProductRepository
	orderRepo    repositories.OrderRepository
	guardianRepo repositories.GuardianRepository
	uploader     storage.FileUploader
	logger       *slog.Logger
}

func NewStoreService(
	db *sql.DB,
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	guardianRepo repositories.GuardianRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) StoreService {
	return &storeService{
		db:           db,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		guardianRepo: guardianRepo,
		uploader:     uploader,
		logger:       logger,
	}
}

func (s *storeService) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNameRequired
	}
	if input.PriceCents <= 0 {
		return nil, ErrProductInvalidPrice
	}
	if input.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidationFailed)
	}

	product := &models.Product{Name: name, PriceCents: input.PriceCents, Stock: input.Stock}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *storeService) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	populateProductImageURL(product, s.uploader)
	return product, nil
}

func (s *storeService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	for i := range products {
		populateProductImageURL(&products[i], s.uploader)
	}
	return products, nil
}

func (s *storeService) DeleteProduct(ctx context.Context, id int) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}

	if product.ImageKey != nil && *product.ImageKey != "" && s.uploader != nil {
		_ = s.uploader.Delete(ctx, *product.ImageKey)
	}
	return nil
}

func (s *storeService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	if input.Quantity <= 0 {
		return nil, ErrOrderInvalidQuantity
	}

	if _, err := s.guardianRepo.GetByID(ctx, input.GuardianID); err != nil {
		if errors.Is(err, repositories.ErrGuardianNotFound) {
			return nil, ErrGuardianNotFound
		}
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	order := &models.Order{
		GuardianID: input.GuardianID,
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
		TotalCents: product.PriceCents * input.Quantity,
		Status:     models.OrderStatusPlaced,
		Reference:  uuid.NewString(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin order transaction: %w", err)
	}

	if err := s.productRepo.DecrementStock(ctx, tx, input.ProductID, input.Quantity); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, repositories.ErrProductOutOfStock) {
			return nil, ErrProductOutOfStock
		}
		return nil, fmt.Errorf("failed to reserve stock for product %d: %w", input.ProductID, err)
	}
	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	s.logger.Info("order placed",
		slog.Int("order_id", order.ID),
		slog.Int("product_id", order.ProductID),
		slog.Int("quantity", order.Quantity),
	)
	return order, nil
}

func (s *storeService) ListOrders(ctx context.Context, filter repositories.ListOrdersFilter) ([]models.Order, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.orderRepo.List(ctx, filter)
}

func (s *storeService) CancelOrder(ctx context.Context, id int) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Status == models.OrderStatusCanceled {
		return order, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin cancel transaction: %w", err)
	}
	if err := s.orderRepo.UpdateStatus(ctx, tx, id, models.OrderStatusCanceled); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to cancel order %d: %w", id, err)
	}
	if err := s.productRepo.IncrementStock(ctx, tx, order.ProductID, order.Quantity); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to restock product %d: %w", order.ProductID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cancel: %w", err)
	}

	order.Status = models.OrderStatusCanceled
	return order, nil
}
