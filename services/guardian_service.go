package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/repositories"
)

type CreateGuardianInput struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
}

type UpdateGuardianInput struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

type GuardianService interface {
	CreateGuardian(ctx context.Context, input CreateGuardianInput) (*models.Guardian, error)
	GetGuardianByID(ctx context.Context, id int) (*models.Guardian, error)
	ListGuardians(ctx context.Context, limit, offset int) ([]models.Guardian, error)
	UpdateGuardian(ctx context.Context, id int, input UpdateGuardianInput) (*models.Guardian, error)
	DeleteGuardian(ctx context.Context, id int) error
}

type guardianService struct {
	guardianRepo repositories.GuardianRepository
	childRepo    repositories.ChildRepository
}

func NewGuardianService(guardianRepo repositories.GuardianRepository, childRepo repositories.ChildRepository) GuardianService {
	return &guardianService{guardianRepo: guardianRepo, childRepo: childRepo}
}

func validateGuardianEmail(email string) error {
	// Format enforcement lives with the identity collaborator; the minimal
	// sanity check here keeps junk rows out of the registry.
	if !strings.Contains(email, "@") || len(email) < 3 {
		return ErrGuardianEmailInvalid
	}
	return nil
}

func (s *guardianService) CreateGuardian(ctx context.Context, input CreateGuardianInput) (*models.Guardian, error) {
	name := strings.TrimSpace(input.FullName)
	if name == "" {
		return nil, ErrGuardianNameRequired
	}
	email := strings.TrimSpace(input.Email)
	if err := validateGuardianEmail(email); err != nil {
		return nil, err
	}

	guardian := &models.Guardian{FullName: name, Email: email, Phone: input.Phone}
	if err := s.guardianRepo.Create(ctx, guardian); err != nil {
		if errors.Is(err, repositories.ErrGuardianEmailConflict) {
			return nil, ErrGuardianEmailConflict
		}
		return nil, fmt.Errorf("failed to create guardian: %w", err)
	}
	return guardian, nil
}

func (s *guardianService) GetGuardianByID(ctx context.Context, id int) (*models.Guardian, error) {
	guardian, err := s.guardianRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGuardianNotFound) {
			return nil, ErrGuardianNotFound
		}
		return nil, err
	}

	children, err := s.childRepo.List(ctx, repositories.ListChildrenFilter{GuardianID: &id})
	if err != nil {
		return nil, fmt.Errorf("failed to list children for guardian %d: %w", id, err)
	}
	guardian.Children = children
	return guardian, nil
}

func (s *guardianService) ListGuardians(ctx context.Context, limit, offset int) ([]models.Guardian, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.guardianRepo.List(ctx, limit, offset)
}

func (s *guardianService) UpdateGuardian(ctx context.Context, id int, input UpdateGuardianInput) (*models.Guardian, error) {
	guardian, err := s.guardianRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGuardianNotFound) {
			return nil, ErrGuardianNotFound
		}
		return nil, err
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, ErrGuardianNameRequired
		}
		guardian.FullName = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if err := validateGuardianEmail(email); err != nil {
			return nil, err
		}
		guardian.Email = email
	}
	if input.Phone != nil {
		guardian.Phone = input.Phone
	}

	if err := s.guardianRepo.Update(ctx, guardian); err != nil {
		if errors.Is(err, repositories.ErrGuardianEmailConflict) {
			return nil, ErrGuardianEmailConflict
		}
		return nil, fmt.Errorf("failed to update guardian %d: %w", id, err)
	}
	return guardian, nil
}

func (s *guardianService) DeleteGuardian(ctx context.Context, id int) error {
	if err := s.guardianRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrGuardianNotFound):
			return ErrGuardianNotFound
		case errors.Is(err, repositories.ErrGuardianInUse):
			return ErrGuardianInUse
		}
		return fmt.Errorf("failed to delete guardian %d: %w", id, err)
	}
	return nil
}
