package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// maxDifficulty bounds the zero-prefix length to what an MD5 hex digest can
// actually carry.
const maxDifficulty = 32

type RunConfig struct {
	Transfers          int
	Wallets            int
	AmountMax          int64
	Difficulty         uint
	PowWorkers         uint
	InitialBeneficiary string
	EnablePrometheus   bool
	PrometheusAddr     string
	MaxConns           uint
}

func (c RunConfig) Validate() error {
	if c.Transfers < 0 {
		return fmt.Errorf("transfers must be non-negative, got %d", c.Transfers)
	}
	if c.Wallets < 2 {
		return fmt.Errorf("at least two wallets are required, got %d", c.Wallets)
	}
	if c.AmountMax < 1 {
		return fmt.Errorf("amount-max must be positive, got %d", c.AmountMax)
	}
	if c.Difficulty < 1 || c.Difficulty > maxDifficulty {
		return fmt.Errorf("difficulty must be between 1 and %d, got %d", maxDifficulty, c.Difficulty)
	}
	if c.PowWorkers < 1 {
		return fmt.Errorf("pow-workers must be positive, got %d", c.PowWorkers)
	}
	return nil
}

func LoadRunConfigFromCLI() RunConfig {
	return RunConfig{
		Transfers:          viper.GetInt("transfers"),
		Wallets:            viper.GetInt("wallets"),
		AmountMax:          viper.GetInt64("amount-max"),
		Difficulty:         viper.GetUint("difficulty"),
		PowWorkers:         viper.GetUint("pow-workers"),
		InitialBeneficiary: viper.GetString("initial-beneficiary"),
		EnablePrometheus:   viper.GetBool("enable-prometheus"),
		PrometheusAddr:     viper.GetString("prometheus-addr"),
		MaxConns:           viper.GetUint("max-conns"),
	}
}
