package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/medtrack/clinic-api/internal/model"
)

// ErrNotFound is returned when a record does not exist. Callers that apply
// best-effort side effects check for it explicitly.
var ErrNotFound = errors.New("record not found")

// All repository interfaces in one file
type (
	// UserRepository handles staff accounts, doctors included
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		GetDoctor(ctx context.Context, id uuid.UUID) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListDoctors(ctx context.Context) ([]*model.User, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Patient, error)
		ListWithDebt(ctx context.Context, limit int) ([]*model.Patient, error)
		Count(ctx context.Context) (int64, error)
	}

	// VisitRepository persists visits together with their child collections.
	// Update writes the scalar visit fields only; children are replaced
	// wholesale via ReplaceMedications/ReplaceTests.
	VisitRepository interface {
		Create(ctx context.Context, visit *model.Visit) error
		Get(ctx context.Context, id uuid.UUID) (*model.Visit, error)
		Update(ctx context.Context, visit *model.Visit) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Visit, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Visit, error)
		ListRecent(ctx context.Context, limit int) ([]*model.Visit, error)
		ReplaceMedications(ctx context.Context, visitID uuid.UUID, meds []model.PrescriptionMedication) error
		ReplaceTests(ctx context.Context, visitID uuid.UUID, tests []model.TestOrder) error
		Count(ctx context.Context) (int64, error)
		CountByDoctor(ctx context.Context) ([]model.DoctorCaseCount, error)
	}

	MedicationRepository interface {
		Create(ctx context.Context, medication *model.Medication) error
		Get(ctx context.Context, id uuid.UUID) (*model.Medication, error)
		Update(ctx context.Context, medication *model.Medication) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Medication, error)
	}
)
