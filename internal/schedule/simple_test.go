package schedule

import (
	"math"
	"testing"
)

func TestConstantSchedule(t *testing.T) {
	s := Constant(0.01)

	for _, step := range []float64{0, 1, 500, 1e7} {
		out := s(step)
		if len(out) != 1 {
			t.Fatalf("Expected single-entry map, got %d entries", len(out))
		}
		if got := out[LearningRateKey]; got != 0.01 {
			t.Errorf("Step %v: expected 0.01, got %v", step, got)
		}
	}
}

func TestWarmupSchedule(t *testing.T) {
	s := Warmup(400, 0.02)

	tests := []struct {
		step     float64
		expected float64
	}{
		{0, 0},
		{200, 0.01},
		{400, 0.02},
		{1000, 0.02},
	}

	for _, tt := range tests {
		if got := s(tt.step)[LearningRateKey]; math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Step %v: expected %v, got %v", tt.step, tt.expected, got)
		}
	}
}

func TestWarmupAndRsqrtDecaySchedule(t *testing.T) {
	s := WarmupAndRsqrtDecay(100, 0.4)

	// Peak at the warmup boundary, rsqrt tail after it
	if got := s(100)[LearningRateKey]; math.Abs(got-0.4) > 1e-12 {
		t.Errorf("Step 100: expected 0.4, got %v", got)
	}
	if got := s(400)[LearningRateKey]; math.Abs(got-0.2) > 1e-12 {
		t.Errorf("Step 400: expected 0.2, got %v", got)
	}
}
