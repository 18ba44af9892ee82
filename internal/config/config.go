// Package config holds the explicit configuration for schedule construction.
// Every field has a documented default; the core packages also accept their
// parameter structs directly, so using this layer is optional.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config represents the lrsched configuration
type Config struct {
	Schedule ScheduleConfig `json:"schedule"`
	Adjust   AdjustConfig   `json:"adjust"`
	Log      LogConfig      `json:"log"`
}

// ScheduleConfig contains factor-evaluator settings
type ScheduleConfig struct {
	Factors       string  `json:"factors"`
	Constant      float64 `json:"constant"`
	WarmupSteps   int     `json:"warmup_steps"`
	DecayFactor   float64 `json:"decay_factor"`
	StepsPerDecay int     `json:"steps_per_decay"`
	StepsPerCycle int     `json:"steps_per_cycle"`
}

// AdjustConfig contains stall-detection settings
type AdjustConfig struct {
	StepsToDecrease   int     `json:"steps_to_decrease"`
	ImprovementMargin float64 `json:"improvement_margin"`
	DecreaseRate      float64 `json:"decrease_rate"`
	HistoryMode       string  `json:"history_mode"`
	Metric            string  `json:"metric"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `json:"level"`
	Path  string `json:"path"`
}

// DefaultConfig returns the configuration with all documented defaults
func DefaultConfig() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			Factors:       "constant * linear_warmup * rsqrt_decay",
			Constant:      0.1,
			WarmupSteps:   400,
			DecayFactor:   0.5,
			StepsPerDecay: 20000,
			StepsPerCycle: 100000,
		},
		Adjust: AdjustConfig{
			StepsToDecrease:   20,
			ImprovementMargin: 0.001,
			DecreaseRate:      1.5,
			HistoryMode:       "eval",
			Metric:            "metrics/accuracy",
		},
		Log: LogConfig{
			Level: "info",
			Path:  "logs/lrsched.log",
		},
	}
}

// Validate checks the configuration for values that can never work. The
// factor vocabulary itself is validated by schedule construction, not here.
func (c *Config) Validate() error {
	if c.Schedule.Factors == "" {
		return fmt.Errorf("schedule factors must not be empty")
	}
	if c.Schedule.Constant <= 0 {
		return fmt.Errorf("schedule constant must be positive, got %v", c.Schedule.Constant)
	}
	if c.Adjust.StepsToDecrease <= 0 {
		return fmt.Errorf("steps_to_decrease must be positive, got %d", c.Adjust.StepsToDecrease)
	}
	if c.Adjust.DecreaseRate <= 0 {
		return fmt.Errorf("decrease_rate must be positive, got %v", c.Adjust.DecreaseRate)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
