package compliance

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/andreprog02/saas-sst/internal/config"
)

// Kind tags a class of obligation
type Kind string

const (
	KindExtinguisherMaintenance Kind = "extinguisher_maintenance"
	KindHydrostaticTest         Kind = "hydrostatic_test"
	KindEquipmentMaintenance    Kind = "equipment_maintenance"
	KindPPEValidity             Kind = "ppe_validity"
	KindVaccineBooster          Kind = "vaccine_booster"
	KindTrainingCertificate     Kind = "training_certificate"
)

// Kinds lists every obligation kind in display order
var Kinds = []Kind{
	KindExtinguisherMaintenance,
	KindHydrostaticTest,
	KindEquipmentMaintenance,
	KindPPEValidity,
	KindVaccineBooster,
	KindTrainingCertificate,
}

const (
	DefaultWarningWindowDays = 30
	DefaultInspectionGapDays = 30
	DefaultHydrostaticMonths = 60
	DefaultMaintenanceMonths = 12

	// DaysPerPolicyMonth is the fixed month length used by every derivation
	DaysPerPolicyMonth = 30
)

// Policy holds the recurrence and warning parameters of one obligation kind
type Policy struct {
	Kind              Kind `json:"kind"`
	IntervalMonths    int  `json:"interval_months"`
	WarningWindowDays int  `json:"warning_window_days"`
}

// PolicySet is the validated policy table for every obligation kind
type PolicySet struct {
	policies             map[Kind]Policy
	defaultWindow        int
	InspectionMaxGapDays int
}

// DefaultPolicies returns the built-in policy table
func DefaultPolicies() *PolicySet {
	ps := &PolicySet{
		policies:             make(map[Kind]Policy, len(Kinds)),
		defaultWindow:        DefaultWarningWindowDays,
		InspectionMaxGapDays: DefaultInspectionGapDays,
	}
	for _, k := range Kinds {
		ps.policies[k] = Policy{Kind: k, WarningWindowDays: DefaultWarningWindowDays}
	}
	ps.policies[KindHydrostaticTest] = Policy{Kind: KindHydrostaticTest, IntervalMonths: DefaultHydrostaticMonths, WarningWindowDays: DefaultWarningWindowDays}
	ps.policies[KindExtinguisherMaintenance] = Policy{Kind: KindExtinguisherMaintenance, IntervalMonths: DefaultMaintenanceMonths, WarningWindowDays: DefaultWarningWindowDays}
	return ps
}

// For returns the policy for kind, falling back to the default warning window
func (ps *PolicySet) For(kind Kind) Policy {
	if p, ok := ps.policies[kind]; ok {
		return p
	}
	return Policy{Kind: kind, WarningWindowDays: ps.defaultWindow}
}

// All returns the policies sorted by kind
func (ps *PolicySet) All() []Policy {
	out := make([]Policy, 0, len(ps.policies))
	for _, p := range ps.policies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// ConfigurationError reports malformed policy configuration
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid compliance configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// LoadPolicies builds a PolicySet from configuration. Negative intervals,
// windows or gaps are rejected here so they never reach date arithmetic.
func LoadPolicies(cfg config.ComplianceConfig) (*PolicySet, error) {
	var errs *multierror.Error

	check := func(name string, v int) {
		if v < 0 {
			errs = multierror.Append(errs, fmt.Errorf("%s must not be negative, got %d", name, v))
		}
	}

	check("warning_window_days", cfg.WarningWindowDays)
	check("inspection_max_gap_days", cfg.InspectionMaxGapDays)
	check("hydrostatic_interval_months", cfg.HydrostaticIntervalMonths)
	check("extinguisher_maintenance_interval_months", cfg.ExtinguisherMaintenanceIntervalMonths)

	known := make(map[Kind]bool, len(Kinds))
	for _, k := range Kinds {
		known[k] = true
	}
	for name, days := range cfg.WarningWindows {
		if !known[Kind(name)] {
			errs = multierror.Append(errs, fmt.Errorf("warning_windows: unknown obligation kind %q", name))
			continue
		}
		check("warning_windows."+name, days)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	ps := &PolicySet{
		policies:             make(map[Kind]Policy, len(Kinds)),
		defaultWindow:        cfg.WarningWindowDays,
		InspectionMaxGapDays: cfg.InspectionMaxGapDays,
	}
	for _, k := range Kinds {
		window := cfg.WarningWindowDays
		if w, ok := cfg.WarningWindows[string(k)]; ok {
			window = w
		}
		ps.policies[k] = Policy{Kind: k, WarningWindowDays: window}
	}

	hydro := ps.policies[KindHydrostaticTest]
	hydro.IntervalMonths = cfg.HydrostaticIntervalMonths
	ps.policies[KindHydrostaticTest] = hydro

	maint := ps.policies[KindExtinguisherMaintenance]
	maint.IntervalMonths = cfg.ExtinguisherMaintenanceIntervalMonths
	ps.policies[KindExtinguisherMaintenance] = maint

	return ps, nil
}
