package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validEngineConfig() EngineConfig {
	return EngineConfig{
		UpsertRetries: 3,
		Weights: WeightsConfig{
			Skill:        0.30,
			Values:       0.20,
			Causes:       0.15,
			Compensation: 0.15,
			Location:     0.10,
			Language:     0.10,
		},
	}
}

func Test_EngineConfig_Valid(t *testing.T) {
	assert.NoError(t, validEngineConfig().validate())
}

func Test_EngineConfig_WeightsMustSumToOne(t *testing.T) {
	cfg := validEngineConfig()
	cfg.Weights.Skill = 0.50

	assert.Error(t, cfg.validate())
}

func Test_EngineConfig_WeightSumToleratesFloatNoise(t *testing.T) {
	cfg := validEngineConfig()
	cfg.Weights.Skill = 0.30 + 1e-9

	assert.NoError(t, cfg.validate())
}

func Test_EngineConfig_UpsertRetriesMustBePositive(t *testing.T) {
	cfg := validEngineConfig()
	cfg.UpsertRetries = 0

	assert.Error(t, cfg.validate())
}
