package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/repositories"
	"github.com/albertofp/club-system/storage"
)

type CreateChildInput struct {
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	BirthDate  *time.Time `json:"birth_date"`
	GuardianID int        `json:"guardian_id"`
	TeamID     *int       `json:"team_id"`
}

type UpdateChildInput struct {
	FirstName  *string    `json:"first_name"`
	LastName   *string    `json:"last_name"`
	BirthDate  *time.Time `json:"birth_date"`
	GuardianID *int       `json:"guardian_id"`
	TeamID     *int       `json:"team_id"`
}

type ChildService interface {
	CreateChild(ctx context.Context, input CreateChildInput) (*models.Child, error)
	GetChildByID(ctx context.Context, id int) (*models.Child, error)
	ListChildren(ctx context.Context, filter repositories.ListChildrenFilter) ([]models.Child, error)
	UpdateChild(ctx context.Context, id int, input UpdateChildInput) (*models.Child, error)
	DeleteChild(ctx context.Context, id int) error
}

type childService struct {
	childRepo    repositories.ChildRepository
	guardianRepo repositories.GuardianRepository
	teamRepo     repositories.TeamRepository
	uploader     storage.FileUploader
}

func NewChildService(
	childRepo repositories.ChildRepository,
	guardianRepo repositories.GuardianRepository,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
) ChildService {
	return &childService{
		childRepo:    childRepo,
		guardianRepo: guardianRepo,
		teamRepo:     teamRepo,
		uploader:     uploader,
	}
}

func (s *childService) CreateChild(ctx context.Context, input CreateChildInput) (*models.Child, error) {
	first := strings.TrimSpace(input.FirstName)
	last := strings.TrimSpace(input.LastName)
	if first == "" || last == "" {
		return nil, ErrChildNameRequired
	}
	if input.BirthDate == nil || input.BirthDate.IsZero() {
		return nil, fmt.Errorf("%w: birth date is required", ErrValidationFailed)
	}

	if _, err := s.guardianRepo.GetByID(ctx, input.GuardianID); err != nil {
		if errors.Is(err, repositories.ErrGuardianNotFound) {
			return nil, ErrGuardianNotFound
		}
		return nil, err
	}
	if input.TeamID != nil {
		if _, err := s.teamRepo.GetByID(ctx, *input.TeamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
	}

	child := &models.Child{
		FirstName:  first,
		LastName:   last,
		BirthDate:  *input.BirthDate,
		GuardianID: input.GuardianID,
		TeamID:     input.TeamID,
	}
	if err := s.childRepo.Create(ctx, child); err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}
	return child, nil
}

func (s *childService) GetChildByID(ctx context.Context, id int) (*models.Child, error) {
	child, err := s.childRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChildNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}

	guardian, err := s.guardianRepo.GetByID(ctx, child.GuardianID)
	if err == nil {
		child.Guardian = guardian
	}
	populateChildPhotoURL(child, s.uploader)
	return child, nil
}

func (s *childService) ListChildren(ctx context.Context, filter repositories.ListChildrenFilter) ([]models.Child, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	children, err := s.childRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	for i := range children {
		populateChildPhotoURL(&children[i], s.uploader)
	}
	return children, nil
}

func (s *childService) UpdateChild(ctx context.Context, id int, input UpdateChildInput) (*models.Child, error) {
	child, err := s.childRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChildNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}

	if input.FirstName != nil {
		first := strings.TrimSpace(*input.FirstName)
		if first == "" {
			return nil, ErrChildNameRequired
		}
		child.FirstName = first
	}
	if input.LastName != nil {
		last := strings.TrimSpace(*input.LastName)
		if last == "" {
			return nil, ErrChildNameRequired
		}
		child.LastName = last
	}
	if input.BirthDate != nil {
		child.BirthDate = *input.BirthDate
	}
	if input.GuardianID != nil {
		if _, err := s.guardianRepo.GetByID(ctx, *input.GuardianID); err != nil {
			if errors.Is(err, repositories.ErrGuardianNotFound) {
				return nil, ErrGuardianNotFound
			}
			return nil, err
		}
		child.GuardianID = *input.GuardianID
	}
	if input.TeamID != nil {
		if _, err := s.teamRepo.GetByID(ctx, *input.TeamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
		child.TeamID = input.TeamID
	}

	if err := s.childRepo.Update(ctx, child); err != nil {
		return nil, fmt.Errorf("failed to update child %d: %w", id, err)
	}
	populateChildPhotoURL(child, s.uploader)
	return child, nil
}

func (s *childService) DeleteChild(ctx context.Context, id int) error {
	child, err := s.childRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChildNotFound) {
			return ErrChildNotFound
		}
		return err
	}

	if err := s.childRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete child %d: %w", id, err)
	}

	if child.PhotoKey != nil && *child.PhotoKey != "" && s.uploader != nil {
		_ = s.uploader.Delete(ctx, *child.PhotoKey)
	}
	return nil
}
