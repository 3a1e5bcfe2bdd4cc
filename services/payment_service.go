package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/repositories"
	"github.com/google/uuid"
)

type CreatePaymentInput struct {
	ChildID     int    `json:"child_id"`
	Concept     string `json:"concept"`
	AmountCents int    `json:"amount_cents"`
}

type PaymentService interface {
	CreatePayment(ctx context.Context, input CreatePaymentInput) (*models.Payment, error)
	GetPaymentByID(ctx context.Context, id int) (*models.Payment, error)
	ListPayments(ctx context.Context, filter repositories.ListPaymentsFilter) ([]models.Payment, error)
	// MarkPaid settles a pending payment and emails a receipt to the child's
	// guardian. Receipt delivery is best effort and never fails the call.
	MarkPaid(ctx context.Context, id int) (*models.Payment, error)
	DeletePayment(ctx context.Context, id int) error
}

type paymentService struct {
	paymentRepo  repositories.PaymentRepository
	childRepo    repositories.ChildRepository
	guardianRepo repositories.GuardianRepository
	mailer       Mailer
	logger       *slog.Logger
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	childRepo repositories.ChildRepository,
	guardianRepo repositories.GuardianRepository,
	mailer Mailer,
	logger *slog.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		childRepo:    childRepo,
		guardianRepo: guardianRepo,
		mailer:       mailer,
		logger:       logger,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	concept := strings.TrimSpace(input.Concept)
	if concept == "" {
		return nil, ErrPaymentConceptRequired
	}
	if input.AmountCents <= 0 {
		return nil, ErrPaymentInvalidAmount
	}

	if _, err := s.childRepo.GetByID(ctx, input.ChildID); err != nil {
		if errors.Is(err, repositories.ErrChildNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}

	payment := &models.Payment{
		ChildID:     input.ChildID,
		Concept:     concept,
		AmountCents: input.AmountCents,
		Status:      models.PaymentStatusPending,
		Reference:   uuid.NewString(),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, id int) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter repositories.ListPaymentsFilter) ([]models.Payment, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.paymentRepo.List(ctx, filter)
}

func (s *paymentService) MarkPaid(ctx context.Context, id int) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Status == models.PaymentStatusPaid {
		return payment, nil
	}

	paidAt := time.Now()
	if err := s.paymentRepo.MarkPaid(ctx, id, paidAt); err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to mark payment %d as paid: %w", id, err)
	}
	payment.Status = models.PaymentStatusPaid
	payment.PaidAt = &paidAt

	s.sendReceipt(ctx, payment)
	return payment, nil
}

func (s *paymentService) sendReceipt(ctx context.Context, payment *models.Payment) {
	child, err := s.childRepo.GetByID(ctx, payment.ChildID)
	if err != nil {
		s.logger.Warn("receipt skipped, child lookup failed",
			slog.Int("payment_id", payment.ID), slog.Any("error", err))
		return
	}
	guardian, err := s.guardianRepo.GetByID(ctx, child.GuardianID)
	if err != nil {
		s.logger.Warn("receipt skipped, guardian lookup failed",
			slog.Int("payment_id", payment.ID), slog.Any("error", err))
		return
	}

	subject := fmt.Sprintf("Payment received: %s", payment.Concept)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>We have received your payment of %.2f&nbsp;&euro; for <strong>%s</strong> (%s %s).</p><p>Reference: %s</p>",
		guardian.FullName,
		float64(payment.AmountCents)/100,
		payment.Concept,
		child.FirstName, child.LastName,
		payment.Reference,
	)
	if err := s.mailer.Send([]string{guardian.Email}, subject, body); err != nil {
		s.logger.Warn("receipt delivery failed",
			slog.Int("payment_id", payment.ID), slog.Any("error", err))
	}
}

func (s *paymentService) DeletePayment(ctx context.Context, id int) error {
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("failed to delete payment %d: %w", id, err)
	}
	return nil
}
