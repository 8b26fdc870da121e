package patient

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/medtrack/clinic-api/internal/model"
	"github.com/medtrack/clinic-api/internal/repository"
	"github.com/medtrack/clinic-api/pkg/errors"
)

type PatientService interface {
	CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error)
	DeletePatient(ctx context.Context, id uuid.UUID) error
	ListPatients(ctx context.Context) ([]*model.Patient, error)
}

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		Base:            model.Base{ID: uuid.New()},
		Name:            req.Name,
		DateOfBirth:     req.DateOfBirth,
		Phone:           req.Phone,
		Address:         req.Address,
		BloodType:       req.BloodType,
		Allergies:       req.Allergies,
		ChronicDiseases: req.ChronicDiseases,
		OwnerDoctorID:   req.OwnerDoctorID,
		TotalDebt:       0,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to create patient: %w", err))
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("patient", err)
	}
	if err != nil {
		return nil, errors.Internal(err)
	}
	return patient, nil
}

// UpdatePatient applies only the fields present in the payload. A present
// TotalDebt overrides the visit-derived balance; the escape hatch is kept
// for administrative corrections.
func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.DateOfBirth != nil {
		patient.DateOfBirth = *req.DateOfBirth
	}
	if req.Phone != nil {
		patient.Phone = req.Phone
	}
	if req.Address != nil {
		patient.Address = req.Address
	}
	if req.BloodType != nil {
		patient.BloodType = req.BloodType
	}
	if req.Allergies != nil {
		patient.Allergies = req.Allergies
	}
	if req.ChronicDiseases != nil {
		patient.ChronicDiseases = req.ChronicDiseases
	}
	if req.OwnerDoctorID != nil {
		patient.OwnerDoctorID = req.OwnerDoctorID
	}
	if req.TotalDebt != nil {
		patient.TotalDebt = *req.TotalDebt
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("patient", err)
		}
		return nil, errors.Internal(fmt.Errorf("failed to update patient: %w", err))
	}
	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NotFound("patient", err)
	}
	if err != nil {
		return errors.Internal(fmt.Errorf("failed to delete patient: %w", err))
	}
	return nil
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return patients, nil
}
