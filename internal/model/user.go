package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleDoctor UserRole = "doctor"
)

// ShiftRates maps a shift-type label to a per-shift pay rate.
// Stored as JSONB; absent keys are treated as zero.
type ShiftRates map[string]float64

// ShiftCounts maps a shift-type label to the number of shifts worked.
type ShiftCounts map[string]int

func (r ShiftRates) Value() (driver.Value, error) {
	if r == nil {
		r = ShiftRates{}
	}
	return json.Marshal(r)
}

func (r *ShiftRates) Scan(src interface{}) error {
	if src == nil {
		*r = ShiftRates{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported shift rates type %T", src)
	}
	return json.Unmarshal(data, r)
}

func (c ShiftCounts) Value() (driver.Value, error) {
	if c == nil {
		c = ShiftCounts{}
	}
	return json.Marshal(c)
}

func (c *ShiftCounts) Scan(src interface{}) error {
	if src == nil {
		*c = ShiftCounts{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported shift counts type %T", src)
	}
	return json.Unmarshal(data, c)
}

// User is a clinic staff account. Doctors additionally carry shift rate and
// count mappings from which their accrued salary is derived.
type User struct {
	Base
	Email          string      `json:"email" db:"email"`
	PasswordHash   string      `json:"-" db:"password_hash"`
	Name           string      `json:"name" db:"name"`
	Role           UserRole    `json:"role" db:"role"`
	Specialization *string     `json:"specialization,omitempty" db:"specialization"`
	Phone          *string     `json:"phone,omitempty" db:"phone"`
	ShiftRates     ShiftRates  `json:"shift_rates" db:"shift_rates"`
	ShiftCounts    ShiftCounts `json:"shift_counts" db:"shift_counts"`
	TotalSalary    float64     `json:"total_salary" db:"total_salary"`
}

type UpdateDoctorRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Specialization *string `json:"specialization"`
	Phone          *string `json:"phone"`
}

type SetShiftRatesRequest struct {
	Rates map[string]float64 `json:"rates" binding:"required"`
}

type SetShiftCountsRequest struct {
	Counts map[string]int `json:"counts" binding:"required"`
}
