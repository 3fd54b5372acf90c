package compliance

import (
	"sort"
	"time"
)

// StateCounts partitions obligations of one kind by state
type StateCounts struct {
	OK      int `json:"ok"`
	DueSoon int `json:"due_soon"`
	Overdue int `json:"overdue"`
	Unknown int `json:"unknown"`
}

// Total is the number of obligations counted
func (c StateCounts) Total() int {
	return c.OK + c.DueSoon + c.Overdue + c.Unknown
}

func (c *StateCounts) add(s State) {
	switch s {
	case StateOK:
		c.OK++
	case StateDueSoon:
		c.DueSoon++
	case StateOverdue:
		c.Overdue++
	default:
		c.Unknown++
	}
}

// CountByState classifies every obligation and counts states separately per kind
func CountByState(obligations []Obligation, policies *PolicySet, today time.Time) map[Kind]StateCounts {
	out := make(map[Kind]StateCounts)
	for _, o := range obligations {
		kind := o.ObligationKind()
		counts := out[kind]
		counts.add(Classify(o.TargetDate(), policies.For(kind).WarningWindowDays, today))
		out[kind] = counts
	}
	return out
}

// DueWithin returns the obligations of kind that are not overdue and fall due
// within days of today, soonest first.
func DueWithin(obligations []Obligation, kind Kind, today time.Time, days int) []Evaluation {
	var out []Evaluation
	for _, o := range obligations {
		if o.ObligationKind() != kind {
			continue
		}
		if Classify(o.TargetDate(), days, today) != StateDueSoon {
			continue
		}
		remaining := DaysBetween(today, *o.TargetDate())
		out = append(out, Evaluation{
			Kind:          kind,
			Subject:       o.Subject(),
			State:         StateDueSoon,
			TargetDate:    o.TargetDate(),
			DaysRemaining: &remaining,
		})
	}
	sortEvaluations(out)
	return out
}

// InState returns the evaluations of all obligations currently in state, most urgent first
func InState(obligations []Obligation, state State, policies *PolicySet, today time.Time) []Evaluation {
	var out []Evaluation
	for _, o := range obligations {
		ev := Evaluate(o, policies, today)
		if ev.State == state {
			out = append(out, ev)
		}
	}
	sortEvaluations(out)
	return out
}

func sortEvaluations(evs []Evaluation) {
	sort.SliceStable(evs, func(i, j int) bool {
		a, b := evs[i].DaysRemaining, evs[j].DaysRemaining
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		if *a != *b {
			return *a < *b
		}
		return evs[i].Subject.Label < evs[j].Subject.Label
	})
}

// Inspectable is an asset subject to routine inspections
type Inspectable interface {
	InspectionSubject() Subject
	OperationalStatus() AssetStatus
	LastInspection() *time.Time
}

// InspectionGap reports whether an active asset is pending inspection: it was
// never inspected or the last inspection is more than maxGapDays old. Assets in
// maintenance, reserve or condemned are never pending.
func InspectionGap(asset Inspectable, today time.Time, maxGapDays int) bool {
	if asset.OperationalStatus() != AssetActive {
		return false
	}
	last := asset.LastInspection()
	if last == nil {
		return true
	}
	return DaysBetween(*last, today) > maxGapDays
}

// PendingInspection describes an asset that needs an inspection
type PendingInspection struct {
	Subject          Subject    `json:"subject"`
	LastInspectionAt *time.Time `json:"last_inspection_at,omitempty"`
	DaysSince        *int       `json:"days_since,omitempty"`
}

// PendingInspections filters assets through InspectionGap, never inspected first
func PendingInspections[A Inspectable](assets []A, today time.Time, maxGapDays int) []PendingInspection {
	var out []PendingInspection
	for _, a := range assets {
		if !InspectionGap(a, today, maxGapDays) {
			continue
		}
		p := PendingInspection{Subject: a.InspectionSubject(), LastInspectionAt: a.LastInspection()}
		if p.LastInspectionAt != nil {
			d := DaysBetween(*p.LastInspectionAt, today)
			p.DaysSince = &d
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DaysSince, out[j].DaysSince
		if a == nil || b == nil {
			return a == nil && b != nil
		}
		if *a != *b {
			return *a > *b
		}
		return out[i].Subject.Label < out[j].Subject.Label
	})
	return out
}

// GroupCount is one row of a group-by-count rollup
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// GroupCounts counts occurrences of each key, ordered by descending count and
// then by key ascending.
func GroupCounts(keys []string) []GroupCount {
	counts := make(map[string]int)
	for _, k := range keys {
		counts[k]++
	}
	out := make([]GroupCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, GroupCount{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// CountByMonth groups dates by calendar month (YYYY-MM)
func CountByMonth(dates []time.Time) []GroupCount {
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = d.Format("2006-01")
	}
	return GroupCounts(keys)
}
