package benchreport

import "math"

// Classification thresholds. A change is only called a regression or an
// improvement when the whole 95% confidence interval clears the 5% bound.
const (
	RegressionBound  = 0.05
	ImprovementBound = -0.05
	NoiseBound       = 0.02
)

// Estimate is one benchmark's change estimate from a criterion comparison:
// fractional deltas (0.05 means 5% slower) for the point estimate and the
// 95% confidence interval bounds.
type Estimate struct {
	Name    string  `json:"name"`
	Change  float64 `json:"change"`
	Lower   float64 `json:"lower"`
	Upper   float64 `json:"upper"`
	Package string  `json:"package"`
}

type Status int

const (
	StatusRegression Status = iota
	StatusImprovement
	StatusNoChange
	StatusSlightChange
)

func (s Status) String() string {
	switch s {
	case StatusRegression:
		return "⚠️ Regression"
	case StatusImprovement:
		return "🚀 Improvement"
	case StatusNoChange:
		return "✅ No change"
	default:
		return "⚡ Slight change"
	}
}

// Classify maps an estimate to its status, first match wins.
func (e Estimate) Classify() Status {
	switch {
	case e.Lower > RegressionBound:
		return StatusRegression
	case e.Upper < ImprovementBound:
		return StatusImprovement
	case math.Abs(e.Change) < NoiseBound:
		return StatusNoChange
	default:
		return StatusSlightChange
	}
}
