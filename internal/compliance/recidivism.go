package compliance

import "time"

// Incident is the part of a disciplinary record that recidivism looks at
type Incident struct {
	EmployeeID string
	CategoryID string
	Date       time.Time
}

// MarkRepeat reports whether a new incident for (employeeID, categoryID) repeats
// an earlier one. Any prior incident in the same category counts, however old.
// The result is meant to be stored once at creation time.
func MarkRepeat(employeeID, categoryID string, history []Incident) bool {
	for _, h := range history {
		if h.EmployeeID == employeeID && h.CategoryID == categoryID {
			return true
		}
	}
	return false
}
