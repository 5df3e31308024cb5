package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/attendance-report/pkg/errors"
)

func TestNeededToReachBoundaries(t *testing.T) {
	p := NewThresholdProjector(DefaultProjectionCap)

	cases := []struct {
		name           string
		present, total int
		target         float64
		want           int
		achievable     bool
	}{
		{"exactly at target", 40, 50, 80, 0, true},
		{"one short", 39, 50, 80, 5, true},
		{"above target", 45, 50, 80, 0, true},
		{"half", 1, 2, 80, 3, true},
		{"no lectures yet", 0, 0, 80, 1, true},
		{"zero target", 0, 10, 0, 0, true},
		{"fractional target", 2, 3, 66.67, 1, true},
		{"hundred percent unreachable", 9, 10, 100, DefaultProjectionCap, false},
		{"beyond cap", 0, 100, 80, DefaultProjectionCap, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k, ok := p.NeededToReach(tc.present, tc.total, tc.target)
			assert.Equal(t, tc.achievable, ok)
			assert.Equal(t, tc.want, k)
		})
	}
}

func TestNeededToReachExactRational(t *testing.T) {
	p := NewThresholdProjector(DefaultProjectionCap)
	// 44/55 is exactly 80%; float division would land a hair below.
	k, ok := p.NeededToReach(39, 50, 80)
	require.True(t, ok)
	assert.Equal(t, 5, k)
	assert.True(t, meets(44, 55, decimal.NewFromInt(80)))
	assert.False(t, meets(43, 54, decimal.NewFromInt(80)))
}

func TestNeededToReachMonotonic(t *testing.T) {
	p := NewThresholdProjector(1000)
	for total := 1; total <= 60; total++ {
		prevPresent, _ := p.NeededToReach(0, total, 75)
		for present := 1; present <= total; present++ {
			k, ok := p.NeededToReach(present, total, 75)
			require.True(t, ok)
			assert.LessOrEqual(t, k, prevPresent, "more present lectures never need more attendance (present=%d total=%d)", present, total)
			prevPresent = k
		}
	}
	for present := 0; present <= 30; present++ {
		prev := -1
		for total := present; total <= present+30; total++ {
			k, ok := p.NeededToReach(present, total, 75)
			if !ok {
				break
			}
			assert.GreaterOrEqual(t, k, prev, "more lectures held never need less attendance")
			prev = k
		}
	}
}

func TestNeededToReachHonoursCap(t *testing.T) {
	p := NewThresholdProjector(3)
	_, ok := p.NeededToReach(1, 2, 80)
	assert.True(t, ok)
	k, ok := p.NeededToReach(0, 10, 80)
	assert.False(t, ok)
	assert.Equal(t, 3, k)

	assert.Equal(t, DefaultProjectionCap, NewThresholdProjector(0).Cap)
}

func TestMaxSkippable(t *testing.T) {
	p := NewThresholdProjector(DefaultProjectionCap)

	cases := []struct {
		name                    string
		present, total, planned int
		want                    int
	}{
		{"exactly at target", 40, 50, 60, 0},
		{"room to skip", 45, 50, 60, 6},
		{"bounded by plan", 45, 50, 53, 3},
		{"plan equals held", 45, 50, 50, 0},
		{"below target", 30, 50, 60, 0},
		{"perfect record", 10, 10, 20, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.MaxSkippable(tc.present, tc.total, 80, tc.planned)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMaxSkippableRejectsShortPlan(t *testing.T) {
	p := NewThresholdProjector(DefaultProjectionCap)
	_, err := p.MaxSkippable(10, 20, 80, 19)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestProject(t *testing.T) {
	p := NewThresholdProjector(DefaultProjectionCap)

	proj, err := p.Project(39, 50, 80, 60)
	require.NoError(t, err)
	assert.False(t, proj.InGoodStanding)
	assert.InDelta(t, 78.0, proj.Percentage, 1e-9)
	assert.True(t, proj.Achievable)
	assert.Equal(t, 5, proj.NeededToReach)
	assert.Equal(t, 10, proj.Remaining)
	assert.True(t, proj.ReachableWithinPlan)
	assert.Equal(t, 5, proj.RemainingAfter)
	assert.Equal(t, 0, proj.Skippable)

	proj, err = p.Project(39, 50, 80, 53)
	require.NoError(t, err)
	assert.False(t, proj.ReachableWithinPlan)
	assert.Equal(t, 0, proj.RemainingAfter)

	proj, err = p.Project(45, 50, 80, 0)
	require.NoError(t, err)
	assert.True(t, proj.InGoodStanding)
	assert.Equal(t, 0, proj.TotalPlanned)
	assert.Equal(t, 0, proj.Skippable)

	_, err = p.Project(11, 10, 80, 0)
	require.Error(t, err)
	_, err = p.Project(5, 10, 80, 9)
	require.Error(t, err)
}
