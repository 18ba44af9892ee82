package schedule

import (
	"math"
	"testing"

	"github.com/thyrook/lrsched/internal/history"
)

func stallParams() AdjustParams {
	p := DefaultAdjustParams()
	p.Constant = 1.0
	p.StepsToDecrease = 2
	p.DecreaseRate = 2.0
	return p
}

func TestAdjustedConstantStallTrace(t *testing.T) {
	// Four flat checkpoints: one decrease fires after two stalled
	// comparisons, then the counter resets and no second decrease can
	// trigger before the walk runs out of pairs.
	points := []history.Point{{Step: 100, Value: 0.5}, {Step: 200, Value: 0.5}, {Step: 300, Value: 0.5}, {Step: 400, Value: 0.5}}

	got := AdjustedConstant(points, stallParams())
	if got != 0.5 {
		t.Errorf("Expected adjusted constant 0.5, got %v", got)
	}
}

func TestAdjustedConstantDoubleDecrease(t *testing.T) {
	// Six flat checkpoints produce two full stall windows.
	points := make([]history.Point, 6)
	for i := range points {
		points[i] = history.Point{Step: (i + 1) * 100, Value: 0.5}
	}

	got := AdjustedConstant(points, stallParams())
	if got != 0.25 {
		t.Errorf("Expected adjusted constant 0.25, got %v", got)
	}
}

func TestAdjustedConstantImprovingMetric(t *testing.T) {
	// Steady improvement never increments the stall counter.
	points := []history.Point{{Step: 100, Value: 0.2}, {Step: 200, Value: 0.4}, {Step: 300, Value: 0.6}, {Step: 400, Value: 0.8}}

	got := AdjustedConstant(points, stallParams())
	if got != 1.0 {
		t.Errorf("Expected unadjusted constant 1.0, got %v", got)
	}
}

func TestAdjustedConstantTieCountsAsStall(t *testing.T) {
	// A tie fails the strict improvement test under any non-negative margin.
	points := []history.Point{{Step: 100, Value: 0.5}, {Step: 200, Value: 0.5}, {Step: 300, Value: 0.5}, {Step: 400, Value: 0.5}}
	p := stallParams()
	p.StepsToDecrease = 1

	got := AdjustedConstant(points, p)
	if got != 0.25 {
		t.Errorf("Expected two single-stall decreases to 0.25, got %v", got)
	}
}

func TestAdjustedConstantShortHistory(t *testing.T) {
	p := stallParams()

	if got := AdjustedConstant(nil, p); got != 1.0 {
		t.Errorf("Empty history: expected 1.0, got %v", got)
	}
	if got := AdjustedConstant([]history.Point{{Step: 100, Value: 0.5}}, p); got != 1.0 {
		t.Errorf("Single point: expected 1.0, got %v", got)
	}
}

func TestEvalAdjustingShortHistoryMatchesDefault(t *testing.T) {
	h := history.New()
	h.Append("eval", "metrics/accuracy", 100, 0.5)

	p := DefaultAdjustParams()
	adjusted, err := EvalAdjusting(h, p)
	if err != nil {
		t.Fatalf("Failed to build adjusting schedule: %v", err)
	}

	plain, err := Multifactor(DefaultParams())
	if err != nil {
		t.Fatalf("Failed to build default schedule: %v", err)
	}

	for _, step := range []float64{0, 100, 400, 20000} {
		want := plain(step)[LearningRateKey]
		got := adjusted(step)[LearningRateKey]
		if got != want {
			t.Errorf("Step %v: expected %v, got %v", step, want, got)
		}
	}
}

func TestEvalAdjustingLowersConstant(t *testing.T) {
	h := history.New()
	for i := 0; i < 4; i++ {
		h.Append("eval", "metrics/accuracy", (i+1)*100, 0.5)
	}

	p := stallParams()
	adjusted, err := EvalAdjusting(h, p)
	if err != nil {
		t.Fatalf("Failed to build adjusting schedule: %v", err)
	}

	// Past warmup the default formula is constant/sqrt(step); the halved
	// constant halves the learning rate.
	mp := DefaultParams()
	mp.Constant = 0.5
	want, err := Multifactor(mp)
	if err != nil {
		t.Fatalf("Failed to build reference schedule: %v", err)
	}

	for _, step := range []float64{400, 1600, 10000} {
		w := want(step)[LearningRateKey]
		g := adjusted(step)[LearningRateKey]
		if math.Abs(g-w) > 1e-9 {
			t.Errorf("Step %v: expected %v, got %v", step, w, g)
		}
	}
}

func TestEvalAdjustingDoesNotMutateHistory(t *testing.T) {
	h := history.New()
	for i := 0; i < 5; i++ {
		h.Append("eval", "metrics/accuracy", (i+1)*100, 0.5)
	}

	if _, err := EvalAdjusting(h, stallParams()); err != nil {
		t.Fatalf("Failed to build adjusting schedule: %v", err)
	}

	points := h.Get("eval", "metrics/accuracy")
	if len(points) != 5 {
		t.Fatalf("History length changed: expected 5, got %d", len(points))
	}
	for i, p := range points {
		if p.Step != (i+1)*100 || p.Value != 0.5 {
			t.Errorf("Point %d was mutated: %+v", i, p)
		}
	}
}
