package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type SchedulerConfig struct {
	Workers            int           `mapstructure:"workers"`
	PairsPerSecond     float32       `mapstructure:"pairs_per_second"`
	TaxonomySweepCron  string        `mapstructure:"taxonomy_sweep_cron"`
	ExpirySweepCron    string        `mapstructure:"expiry_sweep_cron"`
	PairCacheTTL       time.Duration `mapstructure:"pair_cache_ttl"`
	PendingInterestTTL time.Duration `mapstructure:"pending_interest_ttl"`
}

func setSchedulerDefaults() {
	viper.SetDefault("scheduler.workers", 8)
	viper.SetDefault("scheduler.pairs_per_second", 200)
	viper.SetDefault("scheduler.taxonomy_sweep_cron", "0 3 * * *")
	viper.SetDefault("scheduler.expiry_sweep_cron", "0 * * * *")
	viper.SetDefault("scheduler.pair_cache_ttl", 10*time.Minute)
	// 0 disables auto-declining stale one-sided interest.
	viper.SetDefault("scheduler.pending_interest_ttl", time.Duration(0))
}

func (config SchedulerConfig) validate() error {
	if config.Workers <= 0 {
		return errMissing("scheduler.workers must be positive")
	}
	if config.PairsPerSecond <= 0 {
		return errMissing("scheduler.pairs_per_second must be positive")
	}
	if config.TaxonomySweepCron == "" || config.ExpirySweepCron == "" {
		return errMissing("scheduler cron expressions must be set")
	}
	return nil
}

func errMissing(msg string) error {
	return errors.New(msg)
}
