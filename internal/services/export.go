package services

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/repositories"
)

var extinguisherColumns = []string{
	"serial_number", "agent", "capacity_kg", "location", "status",
	"maintenance_due", "maintenance_state",
	"hydrostatic_test_due", "hydrostatic_state",
	"last_inspection_at", "inspection_pending",
}

// exportService implements ExportService
type exportService struct {
	scopes   repositories.ScopeProvider
	policies *compliance.PolicySet
	clock    compliance.Clock
}

// NewExportService creates a new export service
func NewExportService(scopes repositories.ScopeProvider, policies *compliance.PolicySet, clock compliance.Clock) ExportService {
	return &exportService{scopes: scopes, policies: policies, clock: clock}
}

// WriteExtinguishersCSV writes one row per extinguisher with its computed states
func (s *exportService) WriteExtinguishersCSV(ctx context.Context, tenantID string, w io.Writer) error {
	extinguishers, err := s.scopes.ForTenant(tenantID).ListExtinguishers(ctx)
	if err != nil {
		return err
	}

	today := s.clock.Today()
	out := csv.NewWriter(w)
	if err := out.Write(extinguisherColumns); err != nil {
		return err
	}

	for _, e := range extinguishers {
		states := map[compliance.Kind]compliance.State{}
		for _, o := range e.Obligations() {
			states[o.ObligationKind()] = compliance.Evaluate(o, s.policies, today).State
		}

		row := []string{
			e.SerialNumber,
			e.Agent,
			strconv.FormatFloat(e.CapacityKg, 'f', -1, 64),
			e.InspectionSubject().Group,
			string(e.Status),
			formatDate(e.MaintenanceDue),
			string(states[compliance.KindExtinguisherMaintenance]),
			formatDate(e.HydrostaticTestDue),
			string(states[compliance.KindHydrostaticTest]),
			formatDate(e.LastInspectionAt),
			strconv.FormatBool(compliance.InspectionGap(e, today, s.policies.InspectionMaxGapDays)),
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
