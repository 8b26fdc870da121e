package model

import (
	"time"

	"github.com/google/uuid"
)

// Visit records a single patient encounter together with its billing
// snapshot. PatientName is copied from the patient at creation time and is
// not kept in sync with later renames.
type Visit struct {
	Base
	PatientID              uuid.UUID                `json:"patient_id" db:"patient_id"`
	PatientName            string                   `json:"patient_name" db:"patient_name"`
	DoctorID               uuid.UUID                `json:"doctor_id" db:"doctor_id"`
	Date                   time.Time                `json:"date" db:"date"`
	ShiftType              *string                  `json:"shift_type,omitempty" db:"shift_type"`
	Allergies              bool                     `json:"allergies" db:"allergies"`
	AllergyDetails         *string                  `json:"allergy_details,omitempty" db:"allergy_details"`
	ChronicDiseases        *string                  `json:"chronic_diseases,omitempty" db:"chronic_diseases"`
	BloodType              *string                  `json:"blood_type,omitempty" db:"blood_type"`
	Weight                 *float64                 `json:"weight,omitempty" db:"weight"`
	Temperature            *float64                 `json:"temperature,omitempty" db:"temperature"`
	OxygenLevel            *float64                 `json:"oxygen_level,omitempty" db:"oxygen_level"`
	BloodPressureSystolic  *int                     `json:"blood_pressure_systolic,omitempty" db:"blood_pressure_systolic"`
	BloodPressureDiastolic *int                     `json:"blood_pressure_diastolic,omitempty" db:"blood_pressure_diastolic"`
	HeartRate              *int                     `json:"heart_rate,omitempty" db:"heart_rate"`
	Diagnosis              string                   `json:"diagnosis" db:"diagnosis"`
	Medications            []PrescriptionMedication `json:"medications" db:"-"`
	Tests                  []TestOrder              `json:"tests" db:"-"`
	TotalAmount            float64                  `json:"total_amount" db:"total_amount"`
	PaidAmount             float64                  `json:"paid_amount" db:"paid_amount"`
	IsPaid                 bool                     `json:"is_paid" db:"is_paid"`
}

// PrescriptionMedication is owned exclusively by its visit. MedicationName is
// a denormalized snapshot; the referenced medication is not required to exist.
type PrescriptionMedication struct {
	ID             uuid.UUID `json:"-" db:"id"`
	VisitID        uuid.UUID `json:"-" db:"visit_id"`
	MedicationID   uuid.UUID `json:"medication_id" db:"medication_id"`
	MedicationName string    `json:"medication_name" db:"medication_name"`
	Quantity       int       `json:"quantity" db:"quantity"`
	Dosage         string    `json:"dosage" db:"dosage"`
	Instructions   *string   `json:"instructions,omitempty" db:"instructions"`
}

// TestOrder is owned exclusively by its visit.
type TestOrder struct {
	ID       uuid.UUID `json:"-" db:"id"`
	VisitID  uuid.UUID `json:"-" db:"visit_id"`
	TestName string    `json:"test_name" db:"test_name"`
	Result   *string   `json:"result,omitempty" db:"result"`
}

type VisitMedicationInput struct {
	MedicationID   uuid.UUID `json:"medication_id" binding:"required"`
	MedicationName string    `json:"medication_name" binding:"required"`
	Quantity       int       `json:"quantity" binding:"required,gt=0"`
	Dosage         string    `json:"dosage" binding:"required"`
	Instructions   *string   `json:"instructions"`
}

type VisitTestInput struct {
	TestName string  `json:"test_name" binding:"required"`
	Result   *string `json:"result"`
}

type CreateVisitRequest struct {
	PatientID              uuid.UUID              `json:"patient_id" binding:"required"`
	PatientName            string                 `json:"patient_name" binding:"required"`
	DoctorID               uuid.UUID              `json:"doctor_id" binding:"required"`
	Date                   time.Time              `json:"date" binding:"required"`
	ShiftType              *string                `json:"shift_type"`
	Allergies              bool                   `json:"allergies"`
	AllergyDetails         *string                `json:"allergy_details"`
	ChronicDiseases        *string                `json:"chronic_diseases"`
	BloodType              *string                `json:"blood_type" binding:"omitempty,blood_type"`
	Weight                 *float64               `json:"weight"`
	Temperature            *float64               `json:"temperature"`
	OxygenLevel            *float64               `json:"oxygen_level"`
	BloodPressureSystolic  *int                   `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int                   `json:"blood_pressure_diastolic"`
	HeartRate              *int                   `json:"heart_rate"`
	Diagnosis              string                 `json:"diagnosis" binding:"required"`
	Medications            []VisitMedicationInput `json:"medications" binding:"omitempty,dive"`
	Tests                  []VisitTestInput       `json:"tests" binding:"omitempty,dive"`
	TotalAmount            float64                `json:"total_amount" binding:"gte=0"`
	PaidAmount             float64                `json:"paid_amount" binding:"gte=0"`
	IsPaid                 bool                   `json:"is_paid"`
}

// UpdateVisitRequest applies only the fields present in the payload.
// Replacement medication/test lists fully replace the child collections.
type UpdateVisitRequest struct {
	Date                   *time.Time             `json:"date"`
	ShiftType              *string                `json:"shift_type"`
	Allergies              *bool                  `json:"allergies"`
	AllergyDetails         *string                `json:"allergy_details"`
	ChronicDiseases        *string                `json:"chronic_diseases"`
	BloodType              *string                `json:"blood_type" binding:"omitempty,blood_type"`
	Weight                 *float64               `json:"weight"`
	Temperature            *float64               `json:"temperature"`
	OxygenLevel            *float64               `json:"oxygen_level"`
	BloodPressureSystolic  *int                   `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int                   `json:"blood_pressure_diastolic"`
	HeartRate              *int                   `json:"heart_rate"`
	Diagnosis              *string                `json:"diagnosis" binding:"omitempty,min=1"`
	Medications            []VisitMedicationInput `json:"medications" binding:"omitempty,dive"`
	Tests                  []VisitTestInput       `json:"tests" binding:"omitempty,dive"`
	TotalAmount            *float64               `json:"total_amount" binding:"omitempty,gte=0"`
	PaidAmount             *float64               `json:"paid_amount" binding:"omitempty,gte=0"`
	IsPaid                 *bool                  `json:"is_paid"`
}

// TouchesBilling reports whether the payload changes any of the visit's
// financial fields and therefore requires a patient debt recompute.
func (r *UpdateVisitRequest) TouchesBilling() bool {
	return r.IsPaid != nil || r.TotalAmount != nil || r.PaidAmount != nil
}
