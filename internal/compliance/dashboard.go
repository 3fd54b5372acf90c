package compliance

import "time"

// StockLevel is the on-hand quantity of one PPE stock item
type StockLevel struct {
	Subject  Subject `json:"subject"`
	Quantity int     `json:"quantity"`
	Minimum  int     `json:"minimum"`
}

// Low reports whether the item is at or below its minimum
func (s StockLevel) Low() bool {
	return s.Quantity <= s.Minimum
}

// AbsencePeriod is one leave or accident absence of an employee
type AbsencePeriod struct {
	Employee Subject
	Kind     string
	Start    time.Time
	End      *time.Time
}

// AbsenceSummary is an absence with its computed duration
type AbsenceSummary struct {
	Employee Subject   `json:"employee"`
	Kind     string    `json:"kind"`
	Start    time.Time `json:"start"`
	Days     int       `json:"days"`
}

// DisciplinaryEntry is a disciplinary record as seen by the dashboard
type DisciplinaryEntry struct {
	Incident
	Category   string
	Department string
	IsRepeat   bool
}

// TenantSnapshot is everything the dashboard needs for one tenant. It is
// produced by the tenant-scoped repository and never spans tenants.
type TenantSnapshot struct {
	TenantID    string
	Obligations []Obligation
	Assets      []Inspectable
	Stock       []StockLevel
	Absences    []AbsencePeriod
	Incidents   []DisciplinaryEntry
	Employees   []EmployeeStatus
}

// Dashboard is the per-tenant compliance summary
type Dashboard struct {
	TenantID    string               `json:"tenant_id"`
	GeneratedOn time.Time            `json:"generated_on"`
	Obligations map[Kind]StateCounts `json:"obligations"`
	Overdue     []Evaluation         `json:"overdue"`
	DueSoon     []Evaluation         `json:"due_soon"`

	RechargeDueSoon    int `json:"recharge_due_soon"`
	HydrostaticDueSoon int `json:"hydrostatic_due_soon"`

	PendingInspections []PendingInspection `json:"pending_inspections"`
	LowStock           []StockLevel        `json:"low_stock"`
	OpenAbsences       []AbsenceSummary    `json:"open_absences"`

	IncidentsByCategory   []GroupCount `json:"incidents_by_category"`
	IncidentsByDepartment []GroupCount `json:"incidents_by_department"`
	IncidentsByMonth      []GroupCount `json:"incidents_by_month"`
	RepeatIncidents       int          `json:"repeat_incidents"`
	EmployeesByStatus     []GroupCount `json:"employees_by_status"`
}

// BuildDashboard derives the full dashboard for a snapshot as of today
func BuildDashboard(snap TenantSnapshot, policies *PolicySet, today time.Time) Dashboard {
	today = Date(today)

	d := Dashboard{
		TenantID:    snap.TenantID,
		GeneratedOn: today,
		Obligations: CountByState(snap.Obligations, policies, today),
		Overdue:     InState(snap.Obligations, StateOverdue, policies, today),
		DueSoon:     InState(snap.Obligations, StateDueSoon, policies, today),
	}
	for _, k := range Kinds {
		if _, ok := d.Obligations[k]; !ok {
			d.Obligations[k] = StateCounts{}
		}
	}

	d.RechargeDueSoon = len(DueWithin(snap.Obligations, KindExtinguisherMaintenance, today,
		policies.For(KindExtinguisherMaintenance).WarningWindowDays))
	d.HydrostaticDueSoon = len(DueWithin(snap.Obligations, KindHydrostaticTest, today,
		policies.For(KindHydrostaticTest).WarningWindowDays))

	d.PendingInspections = PendingInspections(snap.Assets, today, policies.InspectionMaxGapDays)

	for _, s := range snap.Stock {
		if s.Low() {
			d.LowStock = append(d.LowStock, s)
		}
	}

	for _, a := range snap.Absences {
		if a.End != nil && !Date(*a.End).After(today) {
			continue
		}
		d.OpenAbsences = append(d.OpenAbsences, AbsenceSummary{
			Employee: a.Employee,
			Kind:     a.Kind,
			Start:    a.Start,
			Days:     AbsenceDays(a.Start, nil, today),
		})
	}

	categories := make([]string, 0, len(snap.Incidents))
	departments := make([]string, 0, len(snap.Incidents))
	dates := make([]time.Time, 0, len(snap.Incidents))
	for _, in := range snap.Incidents {
		categories = append(categories, in.Category)
		departments = append(departments, in.Department)
		dates = append(dates, in.Date)
		if in.IsRepeat {
			d.RepeatIncidents++
		}
	}
	d.IncidentsByCategory = GroupCounts(categories)
	d.IncidentsByDepartment = GroupCounts(departments)
	d.IncidentsByMonth = CountByMonth(dates)

	statuses := make([]string, len(snap.Employees))
	for i, s := range snap.Employees {
		statuses[i] = string(s)
	}
	d.EmployeesByStatus = GroupCounts(statuses)

	return d
}
