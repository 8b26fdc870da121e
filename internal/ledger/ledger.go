// Package ledger derives the financial aggregates of the clinic from visit
// and shift data: a patient's outstanding debt and a doctor's accrued salary.
// Every function is pure; callers own all reads and writes.
package ledger

import (
	"github.com/medtrack/clinic-api/internal/model"
)

// VisitDebtDelta returns the contribution a single visit makes to its
// patient's outstanding debt: zero for paid visits, otherwise the uncollected
// remainder clamped at zero. An overpaid visit contributes nothing; it never
// reduces debt accrued by other visits, and deleting it gives nothing back.
func VisitDebtDelta(v *model.Visit) float64 {
	if v == nil || v.IsPaid {
		return 0
	}
	remainder := v.TotalAmount - v.PaidAmount
	if remainder < 0 {
		return 0
	}
	return remainder
}

// ApplyDebtDelta adds delta to the current debt, clamping at zero. A patient
// never carries negative debt, even when a reversal would overshoot.
func ApplyDebtDelta(current, delta float64) float64 {
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}

// DebtOnVisitChange returns the patient debt after a visit transition.
// A nil oldVisit is a create, a nil newVisit is a delete, both present is an
// update of the same visit.
func DebtOnVisitChange(oldVisit, newVisit *model.Visit, current float64) float64 {
	delta := VisitDebtDelta(newVisit) - VisitDebtDelta(oldVisit)
	return ApplyDebtDelta(current, delta)
}

// RecomputeSalary computes a doctor's total salary from scratch over the
// union of shift-type keys. Missing keys count as zero. Salary is never
// adjusted incrementally, so the stored total cannot drift from the mappings.
func RecomputeSalary(rates model.ShiftRates, counts model.ShiftCounts) float64 {
	keys := make(map[string]struct{}, len(rates)+len(counts))
	for k := range rates {
		keys[k] = struct{}{}
	}
	for k := range counts {
		keys[k] = struct{}{}
	}

	var total float64
	for k := range keys {
		total += rates[k] * float64(counts[k])
	}
	return total
}

// IncrementShiftCount returns a copy of counts with the given shift type
// increased by one. A missing key starts from zero.
func IncrementShiftCount(counts model.ShiftCounts, shiftType string) model.ShiftCounts {
	next := make(model.ShiftCounts, len(counts)+1)
	for k, v := range counts {
		next[k] = v
	}
	next[shiftType]++
	return next
}

// MergeShiftRates overlays partial onto rates, later keys winning.
func MergeShiftRates(rates model.ShiftRates, partial map[string]float64) model.ShiftRates {
	next := make(model.ShiftRates, len(rates)+len(partial))
	for k, v := range rates {
		next[k] = v
	}
	for k, v := range partial {
		next[k] = v
	}
	return next
}

// MergeShiftCounts overlays partial onto counts, later keys winning.
func MergeShiftCounts(counts model.ShiftCounts, partial map[string]int) model.ShiftCounts {
	next := make(model.ShiftCounts, len(counts)+len(partial))
	for k, v := range counts {
		next[k] = v
	}
	for k, v := range partial {
		next[k] = v
	}
	return next
}

// ResetShiftCounts returns a copy of counts with every key set to zero.
// Keys are kept so the shift types remain visible; callers must recompute
// the salary afterwards.
func ResetShiftCounts(counts model.ShiftCounts) model.ShiftCounts {
	next := make(model.ShiftCounts, len(counts))
	for k := range counts {
		next[k] = 0
	}
	return next
}
