package compliance

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		target *time.Time
		window int
		want   State
	}{
		{"no target", nil, 30, StateUnknown},
		{"due today", ptr(today), 30, StateDueSoon},
		{"due today with zero window", ptr(today), 0, StateDueSoon},
		{"yesterday", ptr(day(2024, 5, 31)), 30, StateOverdue},
		{"last day of window", ptr(day(2024, 7, 1)), 30, StateDueSoon},
		{"one day past window", ptr(day(2024, 7, 2)), 30, StateOK},
		{"far future", ptr(day(2030, 1, 1)), 30, StateOK},
		{"time of day ignored", ptr(time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)), 30, StateDueSoon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.target, tt.window, today))
		})
	}
}

func TestEvaluate(t *testing.T) {
	policies := DefaultPolicies()
	o := Instance{
		Kind:   KindVaccineBooster,
		Of:     Subject{ID: "vac-1", Label: "Tetanus - Maria"},
		Base:   day(2024, 1, 10),
		Target: ptr(day(2024, 6, 11)),
	}

	ev := Evaluate(o, policies, today)
	assert.Equal(t, StateDueSoon, ev.State)
	require.NotNil(t, ev.DaysRemaining)
	assert.Equal(t, 10, *ev.DaysRemaining)

	o.Target = nil
	ev = Evaluate(o, policies, today)
	assert.Equal(t, StateUnknown, ev.State)
	assert.Nil(t, ev.DaysRemaining)
}

func genDayOffset() gopter.Gen {
	return gen.IntRange(-3650, 3650)
}

func TestProperty_Classify(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("a target on today is due soon for any window", prop.ForAll(
		func(window int) bool {
			return Classify(ptr(today), window, today) == StateDueSoon
		},
		gen.IntRange(0, 365),
	))

	properties.Property("a target before today is overdue", prop.ForAll(
		func(daysAgo, window int) bool {
			return Classify(ptr(AddDays(today, -daysAgo)), window, today) == StateOverdue
		},
		gen.IntRange(1, 3650),
		gen.IntRange(0, 365),
	))

	properties.Property("a missing target is unknown for any window", prop.ForAll(
		func(window int) bool {
			return Classify(nil, window, today) == StateUnknown
		},
		gen.IntRange(0, 10000),
	))

	properties.Property("classification is idempotent", prop.ForAll(
		func(offset, window int) bool {
			target := AddDays(today, offset)
			first := Classify(&target, window, today)
			second := Classify(&target, window, today)
			return first == second && target.Equal(AddDays(today, offset))
		},
		genDayOffset(),
		gen.IntRange(0, 365),
	))

	properties.Property("a future target is ok exactly when it lies beyond the window", prop.ForAll(
		func(offset, window int) bool {
			state := Classify(ptr(AddDays(today, offset)), window, today)
			if offset > window {
				return state == StateOK
			}
			return state == StateDueSoon
		},
		gen.IntRange(0, 3650),
		gen.IntRange(0, 365),
	))

	properties.TestingRun(t)
}
