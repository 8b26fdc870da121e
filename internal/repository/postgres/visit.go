package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medtrack/clinic-api/internal/model"
	"github.com/medtrack/clinic-api/internal/repository"
)

type visitRepository struct {
	db *sqlx.DB
}

func NewVisitRepository(db *sqlx.DB) repository.VisitRepository {
	return &visitRepository{db: db}
}

// Create persists the visit and its child collections in one transaction.
func (r *visitRepository) Create(ctx context.Context, visit *model.Visit) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	visit.CreatedAt = time.Now()
	visit.UpdatedAt = time.Now()

	query := `
		INSERT INTO visits (id, patient_id, patient_name, doctor_id, date, shift_type,
			allergies, allergy_details, chronic_diseases, blood_type, weight, temperature,
			oxygen_level, blood_pressure_systolic, blood_pressure_diastolic, heart_rate,
			diagnosis, total_amount, paid_amount, is_paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22)
	`
	_, err = tx.ExecContext(ctx, query,
		visit.ID,
		visit.PatientID,
		visit.PatientName,
		visit.DoctorID,
		visit.Date,
		visit.ShiftType,
		visit.Allergies,
		visit.AllergyDetails,
		visit.ChronicDiseases,
		visit.BloodType,
		visit.Weight,
		visit.Temperature,
		visit.OxygenLevel,
		visit.BloodPressureSystolic,
		visit.BloodPressureDiastolic,
		visit.HeartRate,
		visit.Diagnosis,
		visit.TotalAmount,
		visit.PaidAmount,
		visit.IsPaid,
		visit.CreatedAt,
		visit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}

	if err := insertMedications(ctx, tx, visit.ID, visit.Medications); err != nil {
		return err
	}
	if err := insertTests(ctx, tx, visit.ID, visit.Tests); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit visit: %w", err)
	}
	return nil
}

func (r *visitRepository) Get(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	var visit model.Visit
	err := r.db.GetContext(ctx, &visit, `SELECT * FROM visits WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}

	if err := r.loadChildren(ctx, &visit); err != nil {
		return nil, err
	}
	return &visit, nil
}

// Update writes the scalar visit fields. Child collections are replaced
// separately via ReplaceMedications/ReplaceTests.
func (r *visitRepository) Update(ctx context.Context, visit *model.Visit) error {
	query := `
		UPDATE visits
		SET date = $1, shift_type = $2, allergies = $3, allergy_details = $4,
			chronic_diseases = $5, blood_type = $6, weight = $7, temperature = $8,
			oxygen_level = $9, blood_pressure_systolic = $10, blood_pressure_diastolic = $11,
			heart_rate = $12, diagnosis = $13, total_amount = $14, paid_amount = $15,
			is_paid = $16, updated_at = $17
		WHERE id = $18
	`
	visit.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query,
		visit.Date,
		visit.ShiftType,
		visit.Allergies,
		visit.AllergyDetails,
		visit.ChronicDiseases,
		visit.BloodType,
		visit.Weight,
		visit.Temperature,
		visit.OxygenLevel,
		visit.BloodPressureSystolic,
		visit.BloodPressureDiastolic,
		visit.HeartRate,
		visit.Diagnosis,
		visit.TotalAmount,
		visit.PaidAmount,
		visit.IsPaid,
		visit.UpdatedAt,
		visit.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update visit: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the visit; children cascade via foreign keys.
func (r *visitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM visits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete visit: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *visitRepository) List(ctx context.Context) ([]*model.Visit, error) {
	return r.selectVisits(ctx, `SELECT * FROM visits ORDER BY date DESC`)
}

func (r *visitRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Visit, error) {
	return r.selectVisits(ctx, `SELECT * FROM visits WHERE patient_id = $1 ORDER BY date DESC`, patientID)
}

func (r *visitRepository) ListRecent(ctx context.Context, limit int) ([]*model.Visit, error) {
	return r.selectVisits(ctx, `SELECT * FROM visits ORDER BY date DESC LIMIT $1`, limit)
}

func (r *visitRepository) ReplaceMedications(ctx context.Context, visitID uuid.UUID, meds []model.PrescriptionMedication) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM visit_medications WHERE visit_id = $1`, visitID); err != nil {
		return fmt.Errorf("failed to delete visit medications: %w", err)
	}
	if err := insertMedications(ctx, tx, visitID, meds); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to replace visit medications: %w", err)
	}
	return nil
}

func (r *visitRepository) ReplaceTests(ctx context.Context, visitID uuid.UUID, tests []model.TestOrder) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM visit_tests WHERE visit_id = $1`, visitID); err != nil {
		return fmt.Errorf("failed to delete visit tests: %w", err)
	}
	if err := insertTests(ctx, tx, visitID, tests); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to replace visit tests: %w", err)
	}
	return nil
}

func (r *visitRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM visits`); err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return count, nil
}

func (r *visitRepository) CountByDoctor(ctx context.Context) ([]model.DoctorCaseCount, error) {
	query := `
		SELECT v.doctor_id, COALESCE(u.name, 'Unknown') AS doctor_name, COUNT(v.id) AS cases
		FROM visits v
		LEFT JOIN users u ON u.id = v.doctor_id
		GROUP BY v.doctor_id, u.name
		ORDER BY cases DESC
	`
	var counts []model.DoctorCaseCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to count visits per doctor: %w", err)
	}
	return counts, nil
}

func (r *visitRepository) selectVisits(ctx context.Context, query string, args ...interface{}) ([]*model.Visit, error) {
	var visits []*model.Visit
	if err := r.db.SelectContext(ctx, &visits, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	for _, visit := range visits {
		if err := r.loadChildren(ctx, visit); err != nil {
			return nil, err
		}
	}
	return visits, nil
}

func (r *visitRepository) loadChildren(ctx context.Context, visit *model.Visit) error {
	meds := []model.PrescriptionMedication{}
	err := r.db.SelectContext(ctx, &meds,
		`SELECT * FROM visit_medications WHERE visit_id = $1`, visit.ID)
	if err != nil {
		return fmt.Errorf("failed to load visit medications: %w", err)
	}
	visit.Medications = meds

	tests := []model.TestOrder{}
	err = r.db.SelectContext(ctx, &tests,
		`SELECT * FROM visit_tests WHERE visit_id = $1`, visit.ID)
	if err != nil {
		return fmt.Errorf("failed to load visit tests: %w", err)
	}
	visit.Tests = tests
	return nil
}

func insertMedications(ctx context.Context, tx *sqlx.Tx, visitID uuid.UUID, meds []model.PrescriptionMedication) error {
	query := `
		INSERT INTO visit_medications (id, visit_id, medication_id, medication_name,
			quantity, dosage, instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, med := range meds {
		id := med.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err := tx.ExecContext(ctx, query,
			id, visitID, med.MedicationID, med.MedicationName,
			med.Quantity, med.Dosage, med.Instructions,
		)
		if err != nil {
			return fmt.Errorf("failed to insert visit medication: %w", err)
		}
	}
	return nil
}

func insertTests(ctx context.Context, tx *sqlx.Tx, visitID uuid.UUID, tests []model.TestOrder) error {
	query := `INSERT INTO visit_tests (id, visit_id, test_name, result) VALUES ($1, $2, $3, $4)`
	for _, test := range tests {
		id := test.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		if _, err := tx.ExecContext(ctx, query, id, visitID, test.TestName, test.Result); err != nil {
			return fmt.Errorf("failed to insert visit test: %w", err)
		}
	}
	return nil
}
