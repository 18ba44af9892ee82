package schedule

import "math"

// Params holds every tunable of the factor evaluator.
type Params struct {
	// Factors is the schedule formula: factor names separated by '*'.
	Factors string

	// Constant is the base value the "constant" factor contributes.
	Constant float64

	// WarmupSteps is the length of the warmup ramp, also referenced by the
	// rsqrt and cosine factors.
	WarmupSteps int

	// DecayFactor and StepsPerDecay drive the "decay_every" factor.
	DecayFactor   float64
	StepsPerDecay int

	// StepsPerCycle is the cosine cycle length.
	StepsPerCycle int
}

// DefaultParams returns the documented defaults for the factor evaluator.
func DefaultParams() Params {
	return Params{
		Factors:       "constant * linear_warmup * rsqrt_decay",
		Constant:      0.1,
		WarmupSteps:   400,
		DecayFactor:   0.5,
		StepsPerDecay: 20000,
		StepsPerCycle: 100000,
	}
}

// Multifactor builds a schedule that multiplies the contribution of every
// factor named in p.Factors into one value per step. The formula is parsed
// and validated here, so a bad factor name fails before any schedule is
// handed out. Non-positive warmup, decay or cycle intervals are not checked
// and remain caller responsibility.
func Multifactor(p Params) (Schedule, error) {
	factors, err := ParseFactors(p.Factors)
	if err != nil {
		return nil, err
	}

	warmup := float64(p.WarmupSteps)
	perDecay := float64(p.StepsPerDecay)
	perCycle := float64(p.StepsPerCycle)

	return func(step float64) map[string]float64 {
		ret := 1.0
		for _, f := range factors {
			switch f {
			case FactorConstant:
				ret *= p.Constant
			case FactorLinearWarmup:
				ret *= math.Min(1.0, step/warmup)
			case FactorRsqrtDecay:
				ret /= math.Sqrt(math.Max(step, warmup))
			case FactorRsqrtNormalizedDecay:
				ret *= math.Sqrt(warmup)
				ret /= math.Sqrt(math.Max(step, warmup))
			case FactorDecayEvery:
				ret *= math.Pow(p.DecayFactor, math.Floor(step/perDecay))
			case FactorCosineDecay:
				progress := math.Max(0.0, (step-warmup)/perCycle)
				ret *= 0.5 * (1.0 + math.Cos(math.Pi*math.Mod(progress, 1.0)))
			}
		}
		// Round through float32 to match the fixed-width output contract.
		return map[string]float64{LearningRateKey: float64(float32(ret))}
	}, nil
}
