// Package training runs a small gradient-descent loop driven by a schedule.
// It exists to exercise schedules against a real optimizer: the learning rate
// is read from the schedule every step, and evaluation metrics recorded
// between epochs feed the stall-adjusting rebuild.
package training

import (
	"fmt"

	"go.uber.org/zap"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/thyrook/lrsched/internal/history"
	"github.com/thyrook/lrsched/internal/schedule"
)

// Config holds demo-trainer hyperparameters
type Config struct {
	BatchSize     int
	StepsPerEpoch int
	Epochs        int
	HistoryMode   string
	Metric        string
}

// DefaultConfig returns default trainer configuration
func DefaultConfig() Config {
	return Config{
		BatchSize:     16,
		StepsPerEpoch: 100,
		Epochs:        5,
		HistoryMode:   "eval",
		Metric:        "metrics/accuracy",
	}
}

// Trainer fits a one-weight linear model with schedule-driven SGD
type Trainer struct {
	cfg    Config
	adjust schedule.AdjustParams
	sched  schedule.Schedule
	hist   *history.History
	logger *zap.Logger

	g    *gorgonia.ExprGraph
	x    *gorgonia.Node
	y    *gorgonia.Node
	w    *gorgonia.Node
	loss *gorgonia.Node
	vm   gorgonia.VM

	learnables gorgonia.Nodes
	step       int
}

// NewTrainer creates a trainer that reads its learning rate from sched.
// Evaluation metrics recorded via RecordEval go into hist, and the schedule
// is rebuilt from it with the given stall-adjustment parameters.
func NewTrainer(cfg Config, sched schedule.Schedule, adjust schedule.AdjustParams, hist *history.History, logger *zap.Logger) (*Trainer, error) {
	if sched == nil {
		return nil, fmt.Errorf("trainer requires a schedule")
	}
	if hist == nil {
		hist = history.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := gorgonia.NewGraph()

	x := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(cfg.BatchSize, 1), gorgonia.WithName("x"))
	y := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(cfg.BatchSize, 1), gorgonia.WithName("y"))
	w := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(1, 1), gorgonia.WithName("w"),
		gorgonia.WithInit(gorgonia.GlorotU(1.0)))

	pred := gorgonia.Must(gorgonia.Mul(x, w))
	diff := gorgonia.Must(gorgonia.Sub(pred, y))
	loss := gorgonia.Must(gorgonia.Mean(gorgonia.Must(gorgonia.Square(diff))))

	if _, err := gorgonia.Grad(loss, w); err != nil {
		return nil, fmt.Errorf("failed to compute gradients: %w", err)
	}

	vm := gorgonia.NewTapeMachine(g, gorgonia.BindDualValues(w))

	return &Trainer{
		cfg:        cfg,
		adjust:     adjust,
		sched:      sched,
		hist:       hist,
		logger:     logger,
		g:          g,
		x:          x,
		y:          y,
		w:          w,
		loss:       loss,
		vm:         vm,
		learnables: gorgonia.Nodes{w},
	}, nil
}

// TrainStep runs one forward/backward pass over a batch and applies one SGD
// update at the schedule's current learning rate. It returns the batch loss
// and the learning rate that was used.
func (t *Trainer) TrainStep(xVal, yVal tensor.Tensor) (float64, float64, error) {
	lr := t.sched(float64(t.step))[schedule.LearningRateKey]

	if err := gorgonia.Let(t.x, xVal); err != nil {
		return 0, 0, fmt.Errorf("failed to bind inputs: %w", err)
	}
	if err := gorgonia.Let(t.y, yVal); err != nil {
		return 0, 0, fmt.Errorf("failed to bind targets: %w", err)
	}

	if err := t.vm.RunAll(); err != nil {
		return 0, 0, fmt.Errorf("forward/backward pass failed: %w", err)
	}

	// The solver is stateless, so rebuilding it per step keeps the learning
	// rate in lockstep with the schedule.
	solver := gorgonia.NewVanillaSolver(gorgonia.WithLearnRate(lr))
	if err := solver.Step(gorgonia.NodesToValueGrads(t.learnables)); err != nil {
		return 0, 0, fmt.Errorf("solver step failed: %w", err)
	}

	lossVal := t.loss.Value().Data().(float64)
	t.vm.Reset()
	t.step++

	return lossVal, lr, nil
}

// RecordEval stores an evaluation metric at the current step and rebuilds
// the schedule with a constant adjusted for any detected stall.
func (t *Trainer) RecordEval(value float64) error {
	t.hist.Append(t.cfg.HistoryMode, t.cfg.Metric, t.step, value)

	sched, err := schedule.EvalAdjusting(t.hist, t.adjust)
	if err != nil {
		return fmt.Errorf("failed to rebuild schedule: %w", err)
	}
	t.sched = sched

	t.logger.Debug("schedule rebuilt from history",
		zap.Int("step", t.step),
		zap.Float64("metric", value),
		zap.Int("points", t.hist.Len(t.cfg.HistoryMode, t.cfg.Metric)))
	return nil
}

// Step returns the number of training steps taken so far.
func (t *Trainer) Step() int {
	return t.step
}

// LearningRate returns the schedule value at the current step.
func (t *Trainer) LearningRate() float64 {
	return t.sched(float64(t.step))[schedule.LearningRateKey]
}

// Weight returns the current model weight, for inspection.
func (t *Trainer) Weight() float64 {
	return t.w.Value().Data().([]float64)[0]
}

// Close releases the underlying virtual machine.
func (t *Trainer) Close() error {
	return t.vm.Close()
}
