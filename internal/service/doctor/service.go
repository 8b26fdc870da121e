package doctor

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/medtrack/clinic-api/internal/ledger"
	"github.com/medtrack/clinic-api/internal/model"
	"github.com/medtrack/clinic-api/internal/repository"
	"github.com/medtrack/clinic-api/pkg/errors"
)

type DoctorService interface {
	GetDoctor(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListDoctors(ctx context.Context) ([]*model.User, error)
	UpdateDoctor(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.User, error)
	DeleteDoctor(ctx context.Context, id uuid.UUID) error
	SetShiftRates(ctx context.Context, id uuid.UUID, rates map[string]float64) (*model.User, error)
	SetShiftCounts(ctx context.Context, id uuid.UUID, counts map[string]int) (*model.User, error)
	ResetShiftCounts(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Service handles doctor administration, including the shift rate/count
// corrections from which the accrued salary is derived. The salary is always
// recomputed from the full mappings, never adjusted in place.
type Service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.loadDoctor(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.User, error) {
	doctors, err := s.userRepo.ListDoctors(ctx)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return doctors, nil
}

func (s *Service) UpdateDoctor(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.User, error) {
	doctor, err := s.loadDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Email != nil {
		doctor.Email = *req.Email
	}
	if req.Specialization != nil {
		doctor.Specialization = req.Specialization
	}
	if req.Phone != nil {
		doctor.Phone = req.Phone
	}

	if err := s.userRepo.Update(ctx, doctor); err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to update doctor: %w", err))
	}
	return doctor, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadDoctor(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return errors.Internal(fmt.Errorf("failed to delete doctor: %w", err))
	}
	return nil
}

// SetShiftRates merges the partial rate mapping over the existing one and
// recomputes the salary against the unchanged counts.
func (s *Service) SetShiftRates(ctx context.Context, id uuid.UUID, rates map[string]float64) (*model.User, error) {
	doctor, err := s.loadDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor.ShiftRates = ledger.MergeShiftRates(doctor.ShiftRates, rates)
	doctor.TotalSalary = ledger.RecomputeSalary(doctor.ShiftRates, doctor.ShiftCounts)

	if err := s.userRepo.Update(ctx, doctor); err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to update shift rates: %w", err))
	}
	return doctor, nil
}

// SetShiftCounts merges the partial count mapping over the existing one and
// recomputes the salary against the existing rates.
func (s *Service) SetShiftCounts(ctx context.Context, id uuid.UUID, counts map[string]int) (*model.User, error) {
	doctor, err := s.loadDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor.ShiftCounts = ledger.MergeShiftCounts(doctor.ShiftCounts, counts)
	doctor.TotalSalary = ledger.RecomputeSalary(doctor.ShiftRates, doctor.ShiftCounts)

	if err := s.userRepo.Update(ctx, doctor); err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to update shift counts: %w", err))
	}
	return doctor, nil
}

// ResetShiftCounts zeroes every shift count, keeping the keys and the rates,
// then recomputes the salary; zero counts yield a zero salary.
func (s *Service) ResetShiftCounts(ctx context.Context, id uuid.UUID) (*model.User, error) {
	doctor, err := s.loadDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor.ShiftCounts = ledger.ResetShiftCounts(doctor.ShiftCounts)
	doctor.TotalSalary = ledger.RecomputeSalary(doctor.ShiftRates, doctor.ShiftCounts)

	if err := s.userRepo.Update(ctx, doctor); err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to reset shift counts: %w", err))
	}
	return doctor, nil
}

func (s *Service) loadDoctor(ctx context.Context, id uuid.UUID) (*model.User, error) {
	doctor, err := s.userRepo.GetDoctor(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("doctor", err)
	}
	if err != nil {
		return nil, errors.Internal(err)
	}
	return doctor, nil
}
