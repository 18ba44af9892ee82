package schedule

import (
	"fmt"

	"gorgonia.org/tensor"
)

// EvalSteps evaluates s over every element of steps, for callers that
// vectorize their step counters. The result has the same shape as steps,
// which must hold float64 values.
func EvalSteps(s Schedule, steps *tensor.Dense) (tensor.Tensor, error) {
	out, err := steps.Apply(func(step float64) float64 {
		return s(step)[LearningRateKey]
	})
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate schedule over steps: %w", err)
	}
	return out, nil
}
