package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a clinic patient. TotalDebt is the outstanding balance derived
// from unpaid visits; direct edits may override the derived value.
type Patient struct {
	Base
	Name            string     `json:"name" db:"name"`
	DateOfBirth     time.Time  `json:"date_of_birth" db:"date_of_birth"`
	Phone           *string    `json:"phone,omitempty" db:"phone"`
	Address         *string    `json:"address,omitempty" db:"address"`
	BloodType       *string    `json:"blood_type,omitempty" db:"blood_type"`
	Allergies       *string    `json:"allergies,omitempty" db:"allergies"`
	ChronicDiseases *string    `json:"chronic_diseases,omitempty" db:"chronic_diseases"`
	OwnerDoctorID   *uuid.UUID `json:"owner_doctor_id,omitempty" db:"owner_doctor_id"`
	TotalDebt       float64    `json:"total_debt" db:"total_debt"`
}

type CreatePatientRequest struct {
	Name            string     `json:"name" binding:"required"`
	DateOfBirth     time.Time  `json:"date_of_birth" binding:"required"`
	Phone           *string    `json:"phone"`
	Address         *string    `json:"address"`
	BloodType       *string    `json:"blood_type" binding:"omitempty,blood_type"`
	Allergies       *string    `json:"allergies"`
	ChronicDiseases *string    `json:"chronic_diseases"`
	OwnerDoctorID   *uuid.UUID `json:"owner_doctor_id"`
}

type UpdatePatientRequest struct {
	Name            *string    `json:"name"`
	DateOfBirth     *time.Time `json:"date_of_birth"`
	Phone           *string    `json:"phone"`
	Address         *string    `json:"address"`
	BloodType       *string    `json:"blood_type" binding:"omitempty,blood_type"`
	Allergies       *string    `json:"allergies"`
	ChronicDiseases *string    `json:"chronic_diseases"`
	OwnerDoctorID   *uuid.UUID `json:"owner_doctor_id"`
	// TotalDebt overrides the derived balance when present.
	TotalDebt *float64 `json:"total_debt" binding:"omitempty,gte=0"`
}
