package medication

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/medtrack/clinic-api/internal/model"
	"github.com/medtrack/clinic-api/internal/repository"
	"github.com/medtrack/clinic-api/pkg/errors"
)

type MedicationService interface {
	CreateMedication(ctx context.Context, req *model.CreateMedicationRequest) (*model.Medication, error)
	GetMedication(ctx context.Context, id uuid.UUID) (*model.Medication, error)
	UpdateMedication(ctx context.Context, id uuid.UUID, req *model.UpdateMedicationRequest) (*model.Medication, error)
	DeleteMedication(ctx context.Context, id uuid.UUID) error
	ListMedications(ctx context.Context) ([]*model.Medication, error)
}

type Service struct {
	repo repository.MedicationRepository
}

func NewService(repo repository.MedicationRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateMedication(ctx context.Context, req *model.CreateMedicationRequest) (*model.Medication, error) {
	medication := &model.Medication{
		Base:        model.Base{ID: uuid.New()},
		Name:        req.Name,
		Description: req.Description,
		DosageForm:  model.DosageForm(req.DosageForm),
		Stock:       req.Stock,
	}

	if err := s.repo.Create(ctx, medication); err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to create medication: %w", err))
	}
	return medication, nil
}

func (s *Service) GetMedication(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	medication, err := s.repo.Get(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("medication", err)
	}
	if err != nil {
		return nil, errors.Internal(err)
	}
	return medication, nil
}

func (s *Service) UpdateMedication(ctx context.Context, id uuid.UUID, req *model.UpdateMedicationRequest) (*model.Medication, error) {
	medication, err := s.GetMedication(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		medication.Name = *req.Name
	}
	if req.Description != nil {
		medication.Description = *req.Description
	}
	if req.DosageForm != nil {
		medication.DosageForm = model.DosageForm(*req.DosageForm)
	}
	if req.Stock != nil {
		medication.Stock = req.Stock
	}

	if err := s.repo.Update(ctx, medication); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("medication", err)
		}
		return nil, errors.Internal(fmt.Errorf("failed to update medication: %w", err))
	}
	return medication, nil
}

func (s *Service) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NotFound("medication", err)
	}
	if err != nil {
		return errors.Internal(fmt.Errorf("failed to delete medication: %w", err))
	}
	return nil
}

func (s *Service) ListMedications(ctx context.Context) ([]*model.Medication, error) {
	medications, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return medications, nil
}
