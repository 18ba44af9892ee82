package schedule

import "github.com/thyrook/lrsched/internal/history"

// AdjustParams tunes the stall detection of EvalAdjusting.
type AdjustParams struct {
	// Constant is the starting base constant before any adjustment.
	Constant float64

	// StepsToDecrease is how many consecutive checkpoints without improvement
	// trigger one decrease.
	StepsToDecrease int

	// ImprovementMargin is the relative improvement required to count a
	// checkpoint as improved.
	ImprovementMargin float64

	// DecreaseRate divides the constant on every triggered decrease.
	DecreaseRate float64

	// HistoryMode and Metric select the series to monitor.
	HistoryMode string
	Metric      string
}

// DefaultAdjustParams returns the documented defaults for stall adjustment.
func DefaultAdjustParams() AdjustParams {
	return AdjustParams{
		Constant:          0.1,
		StepsToDecrease:   20,
		ImprovementMargin: 0.001,
		DecreaseRate:      1.5,
		HistoryMode:       "eval",
		Metric:            "metrics/accuracy",
	}
}

// EvalAdjusting builds a Multifactor schedule whose constant has been lowered
// once per detected stall in the monitored metric. The history is read once
// here; the returned schedule does not retain it. All factor-evaluator
// parameters other than the constant stay at their defaults.
func EvalAdjusting(rec history.Recorder, p AdjustParams) (Schedule, error) {
	points := rec.Get(p.HistoryMode, p.Metric)

	mp := DefaultParams()
	mp.Constant = AdjustedConstant(points, p)
	return Multifactor(mp)
}

// AdjustedConstant walks the metric points newest to oldest and divides the
// constant by p.DecreaseRate each time p.StepsToDecrease consecutive
// comparisons show no sufficient improvement. Fewer than 2 points leave the
// constant untouched.
//
// The traversal mirrors the reference pop sequence exactly: the latest value
// seeds the comparison, a found improvement or a triggered decrease restarts
// the window at the older point, and the oldest point is never consumed as a
// comparison partner.
func AdjustedConstant(points []history.Point, p AdjustParams) float64 {
	adjusted := p.Constant
	if len(points) < 2 {
		return adjusted
	}

	cur := points[len(points)-1].Value
	stalled := 0
	for i := len(points) - 2; i >= 1; i-- {
		prev := points[i].Value
		if cur < prev*(1.0+p.ImprovementMargin) {
			stalled++
		} else {
			cur = prev
			stalled = 0
		}
		if stalled >= p.StepsToDecrease {
			adjusted /= p.DecreaseRate
			cur = prev
			stalled = 0
		}
	}
	return adjusted
}
