package model

type DosageForm string

const (
	DosageFormTablet    DosageForm = "tablet"
	DosageFormCapsule   DosageForm = "capsule"
	DosageFormSyrup     DosageForm = "syrup"
	DosageFormInjection DosageForm = "injection"
	DosageFormCream     DosageForm = "cream"
	DosageFormDrops     DosageForm = "drops"
	DosageFormOther     DosageForm = "other"
)

type Medication struct {
	Base
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	DosageForm  DosageForm `json:"dosage_form" db:"dosage_form"`
	Stock       *int       `json:"stock,omitempty" db:"stock"`
}

type CreateMedicationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	DosageForm  string `json:"dosage_form" binding:"required,oneof=tablet capsule syrup injection cream drops other"`
	Stock       *int   `json:"stock" binding:"omitempty,gte=0"`
}

type UpdateMedicationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	DosageForm  *string `json:"dosage_form" binding:"omitempty,oneof=tablet capsule syrup injection cream drops other"`
	Stock       *int    `json:"stock" binding:"omitempty,gte=0"`
}
