// Package lrfunc provides the elementary learning-rate curves that the
// simpler schedule constructors delegate to.
package lrfunc

import "math"

// Fn maps a training step to a raw learning-rate value.
type Fn func(step float64) float64

// Constant returns value for every step.
func Constant(value float64) Fn {
	return func(step float64) float64 {
		return value
	}
}

// Warmup rises on the line connecting (0, 0) and (nWarmupSteps, maxValue),
// then stays at maxValue.
func Warmup(nWarmupSteps int, maxValue float64) Fn {
	n := float64(nWarmupSteps)
	return func(step float64) float64 {
		return maxValue * math.Min(1.0, step/n)
	}
}

// WarmupAndRsqrtDecay ramps like Warmup, then decays with the reciprocal
// square root of the step. The peak maxValue is reached at step nWarmupSteps.
func WarmupAndRsqrtDecay(nWarmupSteps int, maxValue float64) Fn {
	n := float64(nWarmupSteps)
	return func(step float64) float64 {
		if step < n {
			return maxValue * step / n
		}
		return maxValue * math.Sqrt(n) / math.Sqrt(step)
	}
}
