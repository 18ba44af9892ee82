package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/thyrook/lrsched/internal/config"
	"github.com/thyrook/lrsched/internal/schedule"
)

func main() {
	// Command-line flags
	configPath := flag.String("config", "", "Path to configuration file (defaults used when empty)")
	factors := flag.String("factors", "", "Override the factor formula")
	constant := flag.Float64("constant", 0, "Override the base constant (0 keeps the configured value)")
	start := flag.Int("start", 0, "First step to print")
	end := flag.Int("end", 2000, "Last step to print")
	stride := flag.Int("stride", 100, "Step increment between rows")

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
	if *factors != "" {
		cfg.Schedule.Factors = *factors
	}
	if *constant > 0 {
		cfg.Schedule.Constant = *constant
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	params := schedule.Params{
		Factors:       cfg.Schedule.Factors,
		Constant:      cfg.Schedule.Constant,
		WarmupSteps:   cfg.Schedule.WarmupSteps,
		DecayFactor:   cfg.Schedule.DecayFactor,
		StepsPerDecay: cfg.Schedule.StepsPerDecay,
		StepsPerCycle: cfg.Schedule.StepsPerCycle,
	}

	sched, err := schedule.Multifactor(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build schedule: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Learning Rate Table")
	fmt.Printf("  Factors:  %s\n", params.Factors)
	fmt.Printf("  Constant: %g\n", params.Constant)
	fmt.Printf("  Warmup:   %d steps\n", params.WarmupSteps)
	fmt.Println()
	fmt.Printf("%10s  %-14s\n", "step", "learning_rate")

	if *stride <= 0 {
		*stride = 1
	}
	for step := *start; step <= *end; step += *stride {
		lr := sched(float64(step))[schedule.LearningRateKey]
		fmt.Printf("%10d  %.8f\n", step, lr)
	}
}
