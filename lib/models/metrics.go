package models

import "math"

// TargetPercentage is the attendance threshold the derived metrics are
// computed against, using a fixed attended:missed ratio of 3:1.
const TargetPercentage = 75

// Metrics are derived from a subject's counters and never stored. Exactly
// one of CanMiss / NeedToAttend is meaningful, selected by AboveTarget.
type Metrics struct {
	Percentage   int  `json:"percentage"`
	AboveTarget  bool `json:"aboveTarget"`
	CanMiss      int  `json:"canMiss"`
	NeedToAttend int  `json:"needToAttend"`
}

// Percentage returns round(attended/total*100), or 0 for a subject with no
// classes yet.
func Percentage(attended, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(attended) / float64(total) * 100))
}

// ComputeMetrics derives the attendance metrics for one subject. At or
// above the target, CanMiss = |floor(attended/3) - missed| is how many
// further classes may be missed while holding attended >= 0.75*total.
// Below it, NeedToAttend = 3*total - 4*attended is how many consecutive
// classes must be attended to climb back to the target.
func ComputeMetrics(attended, missed, total int) Metrics {
	m := Metrics{Percentage: Percentage(attended, total)}
	if m.Percentage >= TargetPercentage {
		m.AboveTarget = true
		m.CanMiss = abs(attended/3 - missed)
	} else {
		m.NeedToAttend = 3*total - 4*attended
	}
	return m
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
