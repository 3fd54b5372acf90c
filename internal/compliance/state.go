package compliance

import "time"

// State is the temporal classification of an obligation
type State string

const (
	StateOK      State = "ok"
	StateDueSoon State = "due_soon"
	StateOverdue State = "overdue"
	StateUnknown State = "unknown"
)

// States lists every state in display order
var States = []State{StateOverdue, StateDueSoon, StateOK, StateUnknown}

// Classify places a due date relative to today. A nil target means nothing is
// tracked. A target falling on today is still due soon, not overdue.
func Classify(target *time.Time, warningWindowDays int, today time.Time) State {
	if target == nil {
		return StateUnknown
	}

	remaining := DaysBetween(today, *target)
	switch {
	case remaining < 0:
		return StateOverdue
	case remaining <= warningWindowDays:
		return StateDueSoon
	default:
		return StateOK
	}
}

// Obligation is any tracked recurring duty
type Obligation interface {
	ObligationKind() Kind
	Subject() Subject
	BaseDate() time.Time
	TargetDate() *time.Time
}

// Subject identifies the record an obligation belongs to
type Subject struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	// Group is the rollup key for the subject, usually a location or department
	Group string `json:"group,omitempty"`
}

// Instance is the concrete obligation value produced by every record kind
type Instance struct {
	Kind   Kind
	Of     Subject
	Base   time.Time
	Target *time.Time
}

func (i Instance) ObligationKind() Kind { return i.Kind }
func (i Instance) Subject() Subject { return i.Of }
func (i Instance) BaseDate() time.Time { return i.Base }
func (i Instance) TargetDate() *time.Time { return i.Target }

// Evaluation is the classified view of one obligation
type Evaluation struct {
	Kind          Kind       `json:"kind"`
	Subject       Subject    `json:"subject"`
	State         State      `json:"state"`
	TargetDate    *time.Time `json:"target_date,omitempty"`
	DaysRemaining *int       `json:"days_remaining,omitempty"`
}

// Evaluate classifies o with the warning window of its kind
func Evaluate(o Obligation, policies *PolicySet, today time.Time) Evaluation {
	target := o.TargetDate()
	ev := Evaluation{
		Kind:       o.ObligationKind(),
		Subject:    o.Subject(),
		State:      Classify(target, policies.For(o.ObligationKind()).WarningWindowDays, today),
		TargetDate: target,
	}
	if target != nil {
		days := DaysBetween(today, *target)
		ev.DaysRemaining = &days
	}
	return ev
}
