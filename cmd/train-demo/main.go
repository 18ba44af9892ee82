package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"
	"gorgonia.org/tensor"

	"github.com/thyrook/lrsched/internal/config"
	"github.com/thyrook/lrsched/internal/history"
	"github.com/thyrook/lrsched/internal/logging"
	"github.com/thyrook/lrsched/internal/schedule"
	"github.com/thyrook/lrsched/internal/training"
)

func main() {
	// Command-line flags
	configPath := flag.String("config", "", "Path to configuration file (defaults used when empty)")
	epochs := flag.Int("epochs", 5, "Number of training epochs")
	steps := flag.Int("steps", 200, "Steps per epoch")
	batchSize := flag.Int("batch-size", 16, "Batch size")
	dbPath := flag.String("db", "data/history.db", "Path to the metric history database")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	seed := flag.Int64("seed", 42, "Random seed for the synthetic data")

	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, *epochs, *steps, *batchSize, *dbPath, *seed); err != nil {
		logger.Error("training demo failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, epochs, steps, batchSize int, dbPath string, seed int64) error {
	// Reload any metric history from previous runs
	store, err := history.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	hist, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	adjust := schedule.AdjustParams{
		Constant:          cfg.Schedule.Constant,
		StepsToDecrease:   cfg.Adjust.StepsToDecrease,
		ImprovementMargin: cfg.Adjust.ImprovementMargin,
		DecreaseRate:      cfg.Adjust.DecreaseRate,
		HistoryMode:       cfg.Adjust.HistoryMode,
		Metric:            cfg.Adjust.Metric,
	}

	sched, err := schedule.EvalAdjusting(hist, adjust)
	if err != nil {
		return fmt.Errorf("failed to build schedule: %w", err)
	}

	trainCfg := training.Config{
		BatchSize:     batchSize,
		StepsPerEpoch: steps,
		Epochs:        epochs,
		HistoryMode:   cfg.Adjust.HistoryMode,
		Metric:        cfg.Adjust.Metric,
	}

	trainer, err := training.NewTrainer(trainCfg, sched, adjust, hist, logger)
	if err != nil {
		return fmt.Errorf("failed to create trainer: %w", err)
	}
	defer trainer.Close()

	logger.Info("starting training demo",
		zap.Int("epochs", epochs),
		zap.Int("steps_per_epoch", steps),
		zap.Int("batch_size", batchSize),
		zap.String("factors", cfg.Schedule.Factors),
		zap.Int("history_points", hist.Len(adjust.HistoryMode, adjust.Metric)))

	rng := rand.New(rand.NewSource(seed))

	for epoch := 0; epoch < epochs; epoch++ {
		epochLoss := 0.0
		var lastLR float64
		for i := 0; i < steps; i++ {
			xVal, yVal := syntheticBatch(rng, batchSize)
			loss, lr, err := trainer.TrainStep(xVal, yVal)
			if err != nil {
				return fmt.Errorf("train step failed: %w", err)
			}
			epochLoss += loss
			lastLR = lr
		}
		avgLoss := epochLoss / float64(steps)

		// Score improves as loss falls, so stalled training shows up as a
		// stalled metric and lowers the schedule constant.
		evalScore := 1.0 / (1.0 + avgLoss)
		if err := trainer.RecordEval(evalScore); err != nil {
			return err
		}
		if err := store.Record(adjust.HistoryMode, adjust.Metric, trainer.Step(), evalScore); err != nil {
			return fmt.Errorf("failed to persist metric: %w", err)
		}

		logger.Info("epoch complete",
			zap.Int("epoch", epoch+1),
			zap.Int("step", trainer.Step()),
			zap.Float64("avg_loss", avgLoss),
			zap.Float64("eval_score", evalScore),
			zap.Float64("learning_rate", lastLR),
			zap.Float64("weight", trainer.Weight()))
	}

	logger.Info("training demo finished",
		zap.Int("total_steps", trainer.Step()),
		zap.Float64("final_weight", trainer.Weight()),
		zap.Float64("final_learning_rate", trainer.LearningRate()))
	return nil
}

// syntheticBatch draws noisy samples from y = 3x.
func syntheticBatch(rng *rand.Rand, size int) (tensor.Tensor, tensor.Tensor) {
	xs := make([]float64, size)
	ys := make([]float64, size)
	for i := range xs {
		xs[i] = rng.Float64()*2 - 1
		ys[i] = 3.0*xs[i] + rng.NormFloat64()*0.05
	}
	xVal := tensor.New(tensor.WithShape(size, 1), tensor.WithBacking(xs))
	yVal := tensor.New(tensor.WithShape(size, 1), tensor.WithBacking(ys))
	return xVal, yVal
}
