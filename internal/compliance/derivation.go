package compliance

import "time"

// DeriveBoosterDue returns the booster due date for a dose applied on
// appliedOn. Months are fixed 30-day blocks, not calendar months. A
// non-positive interval means no booster is scheduled.
func DeriveBoosterDue(appliedOn time.Time, monthsToBooster int) *time.Time {
	if monthsToBooster <= 0 {
		return nil
	}
	due := AddDays(appliedOn, monthsToBooster*DaysPerPolicyMonth)
	return &due
}

// FillTarget keeps an already set target and only falls back to derived
// when the target is missing.
func FillTarget(current, derived *time.Time) *time.Time {
	if current != nil {
		return current
	}
	return derived
}

// AssetChecklist is the inspection state carried on an asset. Fields that an
// asset kind does not track stay nil.
type AssetChecklist struct {
	SignageOK        *bool
	AccessClear      *bool
	SealIntact       *bool
	PressureOK       *bool
	Operational      *bool
	LastInspectionAt *time.Time
}

// ChecklistResult is what a single inspection observed. A nil field was not
// covered by that inspection.
type ChecklistResult struct {
	SignageOK   *bool
	AccessClear *bool
	SealIntact  *bool
	PressureOK  *bool
	Operational *bool
}

// ApplyChecklist re-bases an asset on a new inspection. Only the fields the
// inspection covered are overwritten. An inspection older than the last one
// applied leaves the asset as it is. Maintenance and hydrostatic due dates are
// not part of the checklist and stay operator managed.
func ApplyChecklist(current AssetChecklist, result ChecklistResult, inspectedAt time.Time) AssetChecklist {
	if current.LastInspectionAt != nil && inspectedAt.Before(*current.LastInspectionAt) {
		return current
	}

	next := current
	next.SignageOK = overlay(current.SignageOK, result.SignageOK)
	next.AccessClear = overlay(current.AccessClear, result.AccessClear)
	next.SealIntact = overlay(current.SealIntact, result.SealIntact)
	next.PressureOK = overlay(current.PressureOK, result.PressureOK)
	next.Operational = overlay(current.Operational, result.Operational)

	at := inspectedAt
	next.LastInspectionAt = &at
	return next
}

func overlay(current, observed *bool) *bool {
	if observed == nil {
		return current
	}
	v := *observed
	return &v
}

// AbsenceDays returns how long an absence lasted, or has lasted so far when it
// is still open. Absences starting in the future count as zero days.
func AbsenceDays(start time.Time, end *time.Time, today time.Time) int {
	until := today
	if end != nil {
		until = *end
	}
	days := DaysBetween(start, until)
	if days < 0 {
		return 0
	}
	return days
}
