package compliance

// EmployeeStatus is the closed set of employment states
type EmployeeStatus string

const (
	EmployeeActive        EmployeeStatus = "active"
	EmployeeOnLeave       EmployeeStatus = "on_leave"
	EmployeeMedicalLeave  EmployeeStatus = "medical_leave"
	EmployeeParentalLeave EmployeeStatus = "parental_leave"
	EmployeeSuspended     EmployeeStatus = "suspended"
	EmployeeTerminated    EmployeeStatus = "terminated"
)

// EmployeeStatuses lists every employee status
var EmployeeStatuses = []EmployeeStatus{
	EmployeeActive,
	EmployeeOnLeave,
	EmployeeMedicalLeave,
	EmployeeParentalLeave,
	EmployeeSuspended,
	EmployeeTerminated,
}

// Eligible reports whether the employee may receive disciplinary records or PPE
func (s EmployeeStatus) Eligible() bool {
	return s == EmployeeActive
}

// AssetStatus is the operational status of an extinguisher or equipment
type AssetStatus string

const (
	AssetActive      AssetStatus = "active"
	AssetMaintenance AssetStatus = "maintenance"
	AssetReserve     AssetStatus = "reserve"
	AssetCondemned   AssetStatus = "condemned"
)
