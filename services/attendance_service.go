package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/repositories"
)

type CheckInInput struct {
	ChildID    int        `json:"child_id"`
	Date       *time.Time `json:"date"`
	Method     string     `json:"method"`
	Confidence *float64   `json:"confidence"`
}

type AttendanceService interface {
	RecordCheckIn(ctx context.Context, input CheckInInput) (*models.CheckIn, error)
	ListCheckInsByChild(ctx context.Context, childID, limit, offset int) ([]models.CheckIn, error)
	ListCheckInsByDay(ctx context.Context, day time.Time) ([]models.CheckIn, error)
	DeleteCheckIn(ctx context.Context, id int) error
}

type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	childRepo      repositories.ChildRepository
}

func NewAttendanceService(attendanceRepo repositories.AttendanceRepository, childRepo repositories.ChildRepository) AttendanceService {
	return &attendanceService{attendanceRepo: attendanceRepo, childRepo: childRepo}
}

func (s *attendanceService) RecordCheckIn(ctx context.Context, input CheckInInput) (*models.CheckIn, error) {
	method := models.CheckInMethod(input.Method)
	if method != models.CheckInManual && method != models.CheckInFacial {
		return nil, ErrCheckInInvalidMethod
	}

	if _, err := s.childRepo.GetByID(ctx, input.ChildID); err != nil {
		if errors.Is(err, repositories.ErrChildNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}

	date := time.Now()
	if input.Date != nil && !input.Date.IsZero() {
		date = *input.Date
	}

	checkIn := &models.CheckIn{
		ChildID:    input.ChildID,
		Date:       date,
		Method:     method,
		Confidence: input.Confidence,
	}
	if err := s.attendanceRepo.Create(ctx, checkIn); err != nil {
		return nil, fmt.Errorf("failed to record check-in: %w", err)
	}
	return checkIn, nil
}

func (s *attendanceService) ListCheckInsByChild(ctx context.Context, childID, limit, offset int) ([]models.CheckIn, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.attendanceRepo.ListByChild(ctx, childID, limit, offset)
}

func (s *attendanceService) ListCheckInsByDay(ctx context.Context, day time.Time) ([]models.CheckIn, error) {
	return s.attendanceRepo.ListByDay(ctx, day)
}

func (s *attendanceService) DeleteCheckIn(ctx context.Context, id int) error {
	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCheckInNotFound) {
			return ErrCheckInNotFound
		}
		return fmt.Errorf("failed to delete check-in %d: %w", id, err)
	}
	return nil
}
