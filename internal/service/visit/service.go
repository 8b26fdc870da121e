package visit

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medtrack/clinic-api/internal/ledger"
	"github.com/medtrack/clinic-api/internal/model"
	"github.com/medtrack/clinic-api/internal/repository"
	"github.com/medtrack/clinic-api/pkg/errors"
	"github.com/medtrack/clinic-api/pkg/metrics"
)

type VisitService interface {
	CreateVisit(ctx context.Context, req *model.CreateVisitRequest) (*model.Visit, error)
	GetVisit(ctx context.Context, id uuid.UUID) (*model.Visit, error)
	UpdateVisit(ctx context.Context, id uuid.UUID, req *model.UpdateVisitRequest) (*model.Visit, error)
	DeleteVisit(ctx context.Context, id uuid.UUID) error
	ListVisits(ctx context.Context) ([]*model.Visit, error)
	ListPatientVisits(ctx context.Context, patientID uuid.UUID) ([]*model.Visit, error)
}

// Service sequences record-store reads and writes around the ledger
// computations so that patient debt and doctor salary stay consistent with
// the visit's financial state. Side effects on patient and doctor records
// are best-effort: a missing referenced entity skips the effect, it never
// fails the visit operation.
type Service struct {
	visitRepo   repository.VisitRepository
	patientRepo repository.PatientRepository
	userRepo    repository.UserRepository
	locks       *keyedMutex
	metrics     *metrics.Metrics
}

// NewService builds a visit service. metrics may be nil, in which case
// ledger counters are not recorded.
func NewService(visitRepo repository.VisitRepository, patientRepo repository.PatientRepository, userRepo repository.UserRepository, m *metrics.Metrics) *Service {
	return &Service{
		visitRepo:   visitRepo,
		patientRepo: patientRepo,
		userRepo:    userRepo,
		locks:       newKeyedMutex(),
		metrics:     m,
	}
}

func (s *Service) CreateVisit(ctx context.Context, req *model.CreateVisitRequest) (*model.Visit, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	visit := &model.Visit{
		Base:                   model.Base{ID: uuid.New()},
		PatientID:              req.PatientID,
		PatientName:            req.PatientName,
		DoctorID:               req.DoctorID,
		Date:                   req.Date,
		ShiftType:              req.ShiftType,
		Allergies:              req.Allergies,
		AllergyDetails:         req.AllergyDetails,
		ChronicDiseases:        req.ChronicDiseases,
		BloodType:              req.BloodType,
		Weight:                 req.Weight,
		Temperature:            req.Temperature,
		OxygenLevel:            req.OxygenLevel,
		BloodPressureSystolic:  req.BloodPressureSystolic,
		BloodPressureDiastolic: req.BloodPressureDiastolic,
		HeartRate:              req.HeartRate,
		Diagnosis:              req.Diagnosis,
		Medications:            buildMedications(req.Medications),
		Tests:                  buildTests(req.Tests),
		TotalAmount:            req.TotalAmount,
		PaidAmount:             req.PaidAmount,
		IsPaid:                 req.IsPaid,
	}

	if err := withRetry(ctx, func(ctx context.Context) error {
		return s.visitRepo.Create(ctx, visit)
	}); err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to create visit: %w", err))
	}

	s.applyDebtChange(ctx, visit.PatientID, nil, visit)

	if visit.ShiftType != nil && *visit.ShiftType != "" {
		s.recordShift(ctx, visit.DoctorID, *visit.ShiftType)
	}

	created, err := s.loadVisit(ctx, visit.ID)
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to reload visit: %w", err))
	}
	return created, nil
}

func (s *Service) GetVisit(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	visit, err := s.loadVisit(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("visit", err)
	}
	if err != nil {
		return nil, errors.Internal(err)
	}
	return visit, nil
}

func (s *Service) UpdateVisit(ctx context.Context, id uuid.UUID, req *model.UpdateVisitRequest) (*model.Visit, error) {
	// The visit's own read-modify-write is serialized so two concurrent
	// updates cannot both derive their debt delta from the same old state.
	unlock := s.locks.Lock("visit:" + id.String())
	defer unlock()

	oldVisit, err := s.loadVisit(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("visit", err)
	}
	if err != nil {
		return nil, errors.Internal(err)
	}

	newVisit := applyUpdate(oldVisit, req)

	if err := withRetry(ctx, func(ctx context.Context) error {
		return s.visitRepo.Update(ctx, newVisit)
	}); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("visit", err)
		}
		return nil, errors.Internal(fmt.Errorf("failed to update visit: %w", err))
	}

	// Replacement lists fully replace the child collections.
	if req.Medications != nil {
		if err := s.visitRepo.ReplaceMedications(ctx, id, buildMedications(req.Medications)); err != nil {
			return nil, errors.Internal(fmt.Errorf("failed to replace medications: %w", err))
		}
	}
	if req.Tests != nil {
		if err := s.visitRepo.ReplaceTests(ctx, id, buildTests(req.Tests)); err != nil {
			return nil, errors.Internal(fmt.Errorf("failed to replace tests: %w", err))
		}
	}

	// Debt is recomputed only when a billing field was present in the
	// payload; otherwise it is left untouched entirely.
	if req.TouchesBilling() {
		s.applyDebtChange(ctx, newVisit.PatientID, oldVisit, newVisit)
	}

	// Doctor shift counts are deliberately not adjusted on update, even
	// when the shift type changes. Shifts accrue once, at visit creation.

	updated, err := s.loadVisit(ctx, id)
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to reload visit: %w", err))
	}
	return updated, nil
}

func (s *Service) DeleteVisit(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.Lock("visit:" + id.String())
	defer unlock()

	visit, err := s.loadVisit(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NotFound("visit", err)
	}
	if err != nil {
		return errors.Internal(err)
	}

	if !visit.IsPaid {
		s.applyDebtChange(ctx, visit.PatientID, visit, nil)
	}

	// Shift counts accrued at creation are deliberately kept.

	if err := withRetry(ctx, func(ctx context.Context) error {
		return s.visitRepo.Delete(ctx, id)
	}); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NotFound("visit", err)
		}
		return errors.Internal(fmt.Errorf("failed to delete visit: %w", err))
	}
	return nil
}

func (s *Service) ListVisits(ctx context.Context) ([]*model.Visit, error) {
	var visits []*model.Visit
	err := withRetry(ctx, func(ctx context.Context) error {
		var err error
		visits, err = s.visitRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, errors.Internal(err)
	}
	return visits, nil
}

func (s *Service) ListPatientVisits(ctx context.Context, patientID uuid.UUID) ([]*model.Visit, error) {
	var visits []*model.Visit
	err := withRetry(ctx, func(ctx context.Context) error {
		var err error
		visits, err = s.visitRepo.ListByPatient(ctx, patientID)
		return err
	})
	if err != nil {
		return nil, errors.Internal(err)
	}
	return visits, nil
}

// loadVisit reads a visit through the same timeout/retry-once wrapper the
// writes use.
func (s *Service) loadVisit(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	var visit *model.Visit
	err := withRetry(ctx, func(ctx context.Context) error {
		var err error
		visit, err = s.visitRepo.Get(ctx, id)
		return err
	})
	return visit, err
}

// applyDebtChange reads the patient, runs the ledger transition and writes
// the new debt back under the patient's lock. A missing patient skips the
// adjustment silently; a zero delta leaves the record untouched.
func (s *Service) applyDebtChange(ctx context.Context, patientID uuid.UUID, oldVisit, newVisit *model.Visit) {
	unlock := s.locks.Lock("patient:" + patientID.String())
	defer unlock()

	var patient *model.Patient
	err := withRetry(ctx, func(ctx context.Context) error {
		var err error
		patient, err = s.patientRepo.Get(ctx, patientID)
		return err
	})
	if stderrors.Is(err, repository.ErrNotFound) {
		log.Warn().Str("patient_id", patientID.String()).Msg("patient absent, skipping debt adjustment")
		s.countSkip("patient")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("patient_id", patientID.String()).Msg("failed to load patient for debt adjustment")
		return
	}

	newDebt := ledger.DebtOnVisitChange(oldVisit, newVisit, patient.TotalDebt)
	if newDebt == patient.TotalDebt {
		return
	}

	patient.TotalDebt = newDebt
	if err := withRetry(ctx, func(ctx context.Context) error {
		return s.patientRepo.Update(ctx, patient)
	}); err != nil {
		log.Error().Err(err).Str("patient_id", patientID.String()).Msg("failed to persist patient debt")
		return
	}
	if s.metrics != nil {
		s.metrics.DebtAdjustments.WithLabelValues(debtOperation(oldVisit, newVisit)).Inc()
	}
}

func debtOperation(oldVisit, newVisit *model.Visit) string {
	switch {
	case oldVisit == nil:
		return "create"
	case newVisit == nil:
		return "delete"
	default:
		return "update"
	}
}

func (s *Service) countSkip(entity string) {
	if s.metrics != nil {
		s.metrics.SkippedSideEffect.WithLabelValues(entity).Inc()
	}
}

// recordShift increments the doctor's shift count for the given shift type
// and recomputes the salary from scratch. Missing doctors, or users without
// the doctor role, skip the effect silently.
func (s *Service) recordShift(ctx context.Context, doctorID uuid.UUID, shiftType string) {
	unlock := s.locks.Lock("doctor:" + doctorID.String())
	defer unlock()

	var doctor *model.User
	err := withRetry(ctx, func(ctx context.Context) error {
		var err error
		doctor, err = s.userRepo.GetDoctor(ctx, doctorID)
		return err
	})
	if stderrors.Is(err, repository.ErrNotFound) {
		log.Warn().Str("doctor_id", doctorID.String()).Msg("doctor absent, skipping shift accrual")
		s.countSkip("doctor")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("doctor_id", doctorID.String()).Msg("failed to load doctor for shift accrual")
		return
	}

	doctor.ShiftCounts = ledger.IncrementShiftCount(doctor.ShiftCounts, shiftType)
	doctor.TotalSalary = ledger.RecomputeSalary(doctor.ShiftRates, doctor.ShiftCounts)

	if err := withRetry(ctx, func(ctx context.Context) error {
		return s.userRepo.Update(ctx, doctor)
	}); err != nil {
		log.Error().Err(err).Str("doctor_id", doctorID.String()).Msg("failed to persist doctor shift accrual")
		return
	}
	if s.metrics != nil {
		s.metrics.SalaryRecomputes.Inc()
	}
}

func validateCreate(req *model.CreateVisitRequest) error {
	switch {
	case req.PatientID == uuid.Nil:
		return errors.BadRequest("patient id is required", nil)
	case req.PatientName == "":
		return errors.BadRequest("patient name is required", nil)
	case req.DoctorID == uuid.Nil:
		return errors.BadRequest("doctor id is required", nil)
	case req.Date.IsZero():
		return errors.BadRequest("date is required", nil)
	case req.Diagnosis == "":
		return errors.BadRequest("diagnosis is required", nil)
	}
	return nil
}

func applyUpdate(oldVisit *model.Visit, req *model.UpdateVisitRequest) *model.Visit {
	v := *oldVisit

	if req.Date != nil {
		v.Date = *req.Date
	}
	if req.ShiftType != nil {
		v.ShiftType = req.ShiftType
	}
	if req.Allergies != nil {
		v.Allergies = *req.Allergies
	}
	if req.AllergyDetails != nil {
		v.AllergyDetails = req.AllergyDetails
	}
	if req.ChronicDiseases != nil {
		v.ChronicDiseases = req.ChronicDiseases
	}
	if req.BloodType != nil {
		v.BloodType = req.BloodType
	}
	if req.Weight != nil {
		v.Weight = req.Weight
	}
	if req.Temperature != nil {
		v.Temperature = req.Temperature
	}
	if req.OxygenLevel != nil {
		v.OxygenLevel = req.OxygenLevel
	}
	if req.BloodPressureSystolic != nil {
		v.BloodPressureSystolic = req.BloodPressureSystolic
	}
	if req.BloodPressureDiastolic != nil {
		v.BloodPressureDiastolic = req.BloodPressureDiastolic
	}
	if req.HeartRate != nil {
		v.HeartRate = req.HeartRate
	}
	if req.Diagnosis != nil {
		v.Diagnosis = *req.Diagnosis
	}
	if req.TotalAmount != nil {
		v.TotalAmount = *req.TotalAmount
	}
	if req.PaidAmount != nil {
		v.PaidAmount = *req.PaidAmount
	}
	if req.IsPaid != nil {
		v.IsPaid = *req.IsPaid
	}

	return &v
}

func buildMedications(inputs []model.VisitMedicationInput) []model.PrescriptionMedication {
	meds := make([]model.PrescriptionMedication, 0, len(inputs))
	for _, in := range inputs {
		meds = append(meds, model.PrescriptionMedication{
			MedicationID:   in.MedicationID,
			MedicationName: in.MedicationName,
			Quantity:       in.Quantity,
			Dosage:         in.Dosage,
			Instructions:   in.Instructions,
		})
	}
	return meds
}

func buildTests(inputs []model.VisitTestInput) []model.TestOrder {
	tests := make([]model.TestOrder, 0, len(inputs))
	for _, in := range inputs {
		tests = append(tests, model.TestOrder{
			TestName: in.TestName,
			Result:   in.Result,
		})
	}
	return tests
}
