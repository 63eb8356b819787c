package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries the environment-driven defaults; CLI flags override it.
type Config struct {
	Layer      int     `mapstructure:"ECHOALIGN_LAYER"`
	DepthClamp float64 `mapstructure:"ECHOALIGN_DEPTH_CLAMP"`
	Workers    int     `mapstructure:"ECHOALIGN_WORKERS"`
	LogFile    string  `mapstructure:"ECHOALIGN_LOG_FILE"`
}

// Load reads configuration from the environment, honoring a local .env
// file when present. Workers 0 means "one per CPU", resolved by the
// aligner.
func Load() Config {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("ECHOALIGN_LAYER", 1)
	viper.SetDefault("ECHOALIGN_DEPTH_CLAMP", 250.0)
	viper.SetDefault("ECHOALIGN_WORKERS", 0)
	viper.SetDefault("ECHOALIGN_LOG_FILE", "")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
