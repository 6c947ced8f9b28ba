package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		attended int
		total    int
		expect   int
	}{
		{"no classes yet", 0, 0, 0},
		{"all attended", 5, 5, 100},
		{"none attended", 0, 4, 0},
		{"exactly threshold", 6, 8, 75},
		{"rounds up", 2, 3, 67},
		{"rounds down", 1, 3, 33},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Percentage(tc.attended, tc.total))
		})
	}
}

func TestPercentage_MatchesFormula(t *testing.T) {
	for attended := 0; attended <= 30; attended++ {
		for missed := 0; missed <= 30; missed++ {
			total := attended + missed
			got := Percentage(attended, total)
			if total == 0 {
				assert.Zero(t, got)
				continue
			}
			want := int(math.Round(float64(attended) / float64(total) * 100))
			assert.Equal(t, want, got, "attended=%d missed=%d", attended, missed)
		}
	}
}

func TestComputeMetrics_AboveTarget(t *testing.T) {
	m := ComputeMetrics(6, 2, 8)
	assert.Equal(t, 75, m.Percentage)
	assert.True(t, m.AboveTarget)
	assert.Equal(t, 0, m.CanMiss)
	assert.Zero(t, m.NeedToAttend)
}

func TestComputeMetrics_BelowTarget(t *testing.T) {
	m := ComputeMetrics(2, 2, 4)
	assert.Equal(t, 50, m.Percentage)
	assert.False(t, m.AboveTarget)
	assert.Equal(t, 4, m.NeedToAttend)
	assert.Zero(t, m.CanMiss)
}

func TestComputeMetrics_BranchFollowsThreshold(t *testing.T) {
	for attended := 0; attended <= 20; attended++ {
		for missed := 0; missed <= 20; missed++ {
			m := ComputeMetrics(attended, missed, attended+missed)
			assert.Equal(t, m.Percentage >= TargetPercentage, m.AboveTarget)
			if m.AboveTarget {
				assert.Equal(t, abs(attended/3-missed), m.CanMiss)
				assert.GreaterOrEqual(t, m.CanMiss, 0)
			} else {
				assert.Equal(t, 3*(attended+missed)-4*attended, m.NeedToAttend)
			}
		}
	}
}
