package model

import "github.com/google/uuid"

type DoctorCaseCount struct {
	DoctorID   uuid.UUID `json:"doctor_id" db:"doctor_id"`
	DoctorName string    `json:"doctor_name" db:"doctor_name"`
	Cases      int64     `json:"cases" db:"cases"`
}

type DashboardStats struct {
	TotalPatients    int64             `json:"total_patients"`
	TotalVisits      int64             `json:"total_visits"`
	TotalDebt        float64           `json:"total_debt"`
	CasesPerDoctor   []DoctorCaseCount `json:"cases_per_doctor"`
	RecentVisits     []*Visit          `json:"recent_visits"`
	PatientsWithDebt []*Patient        `json:"patients_with_debt"`
}
