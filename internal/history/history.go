// Package history tracks evaluation metrics over training steps. Schedules
// read it through the Recorder interface; the training loop owns the writes.
package history

// Point is a single recorded metric value at a training step.
type Point struct {
	Step  int     `json:"step"`
	Value float64 `json:"value"`
}

// Recorder is the read side of a metric history. Get returns the recorded
// points for a (mode, metric) pair, oldest first. An empty result is valid.
type Recorder interface {
	Get(mode, metric string) []Point
}

type seriesKey struct {
	mode   string
	metric string
}

// History is an append-only in-memory metric history.
type History struct {
	series map[seriesKey][]Point
}

// New creates an empty history.
func New() *History {
	return &History{
		series: make(map[seriesKey][]Point),
	}
}

// Append records a metric value under (mode, metric). Points are kept in
// append order; callers are expected to append in step order.
func (h *History) Append(mode, metric string, step int, value float64) {
	k := seriesKey{mode: mode, metric: metric}
	h.series[k] = append(h.series[k], Point{Step: step, Value: value})
}

// Get returns a copy of the recorded points for (mode, metric), oldest first.
func (h *History) Get(mode, metric string) []Point {
	points := h.series[seriesKey{mode: mode, metric: metric}]
	out := make([]Point, len(points))
	copy(out, points)
	return out
}

// Len returns the number of points recorded for (mode, metric).
func (h *History) Len(mode, metric string) int {
	return len(h.series[seriesKey{mode: mode, metric: metric}])
}
