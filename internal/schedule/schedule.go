// Package schedule computes learning-rate values as a function of the
// training step and, optionally, recorded evaluation metrics.
//
// Every constructor returns a Schedule: a pure function from step to a
// single-entry map {"learning_rate": value}. Schedules hold no mutable state
// after construction and are safe to share across goroutines.
package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// LearningRateKey is the single key present in every schedule result.
const LearningRateKey = "learning_rate"

// Schedule maps a training step to {"learning_rate": value}. Steps are
// conceptually non-negative integers but may be supplied as floats.
type Schedule func(step float64) map[string]float64

// ErrUnknownFactor is returned when a formula names a factor outside the
// recognized set.
var ErrUnknownFactor = errors.New("unknown factor")

// Factor is one named multiplicative term in a schedule formula.
type Factor int

const (
	FactorConstant Factor = iota
	FactorLinearWarmup
	FactorRsqrtDecay
	FactorRsqrtNormalizedDecay
	FactorDecayEvery
	FactorCosineDecay
)

var factorNames = map[string]Factor{
	"constant":               FactorConstant,
	"linear_warmup":          FactorLinearWarmup,
	"rsqrt_decay":            FactorRsqrtDecay,
	"rsqrt_normalized_decay": FactorRsqrtNormalizedDecay,
	"decay_every":            FactorDecayEvery,
	"cosine_decay":           FactorCosineDecay,
}

func (f Factor) String() string {
	switch f {
	case FactorConstant:
		return "constant"
	case FactorLinearWarmup:
		return "linear_warmup"
	case FactorRsqrtDecay:
		return "rsqrt_decay"
	case FactorRsqrtNormalizedDecay:
		return "rsqrt_normalized_decay"
	case FactorDecayEvery:
		return "decay_every"
	case FactorCosineDecay:
		return "cosine_decay"
	default:
		return fmt.Sprintf("Factor(%d)", int(f))
	}
}

// ParseFactors splits a formula string on '*', trims each token and resolves
// it to a Factor. Order is preserved. An unrecognized name fails the whole
// parse with an error wrapping ErrUnknownFactor.
func ParseFactors(formula string) ([]Factor, error) {
	parts := strings.Split(formula, "*")
	factors := make([]Factor, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		f, ok := factorNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFactor, name)
		}
		factors = append(factors, f)
	}
	return factors, nil
}
