package config

import (
	"math"

	"github.com/spf13/viper"
)

// EngineConfig carries the scoring weights. Weights not summing to
// 1.0 are a configuration error and must stop the process before any
// scoring happens.
type EngineConfig struct {
	Weights       WeightsConfig `mapstructure:"weights"`
	UpsertRetries int           `mapstructure:"upsert_retries"`
}

type WeightsConfig struct {
	Skill        float64 `mapstructure:"skill"`
	Values       float64 `mapstructure:"values"`
	Causes       float64 `mapstructure:"causes"`
	Compensation float64 `mapstructure:"compensation"`
	Location     float64 `mapstructure:"location"`
	Language     float64 `mapstructure:"language"`
}

func setEngineDefaults() {
	viper.SetDefault("engine.upsert_retries", 3)
	viper.SetDefault("engine.weights.skill", 0.30)
	viper.SetDefault("engine.weights.values", 0.20)
	viper.SetDefault("engine.weights.causes", 0.15)
	viper.SetDefault("engine.weights.compensation", 0.15)
	viper.SetDefault("engine.weights.location", 0.10)
	viper.SetDefault("engine.weights.language", 0.10)
}

func (config EngineConfig) validate() error {
	if config.UpsertRetries <= 0 {
		return errMissing("engine.upsert_retries must be positive")
	}
	w := config.Weights
	sum := w.Skill + w.Values + w.Causes + w.Compensation + w.Location + w.Language
	if math.Abs(sum-1.0) > 1e-6 {
		return errMissing("engine.weights must sum to 1.0")
	}
	return nil
}
