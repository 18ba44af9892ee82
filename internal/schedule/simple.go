package schedule

import "github.com/thyrook/lrsched/internal/lrfunc"

// Constant returns a schedule fixed at value from step 0 to infinity.
func Constant(value float64) Schedule {
	return fromLRFunc(lrfunc.Constant(value))
}

// Warmup returns a schedule that ramps linearly to maxValue over
// nWarmupSteps and stays there.
func Warmup(nWarmupSteps int, maxValue float64) Schedule {
	return fromLRFunc(lrfunc.Warmup(nWarmupSteps, maxValue))
}

// WarmupAndRsqrtDecay returns a schedule with a linear warmup followed by
// reciprocal square-root decay.
func WarmupAndRsqrtDecay(nWarmupSteps int, maxValue float64) Schedule {
	return fromLRFunc(lrfunc.WarmupAndRsqrtDecay(nWarmupSteps, maxValue))
}

// fromLRFunc wraps a raw learning-rate curve into the schedule contract.
func fromLRFunc(fn lrfunc.Fn) Schedule {
	return func(step float64) map[string]float64 {
		return map[string]float64{LearningRateKey: fn(step)}
	}
}
