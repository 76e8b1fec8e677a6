// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Training  TrainingConfig  `mapstructure:"training"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Ops       OpsConfig       `mapstructure:"ops"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// AssistantConfig holds the paths and fixed texts the inference side needs.
type AssistantConfig struct {
	IntentsPath string `mapstructure:"intents_path"`
	FeesPath    string `mapstructure:"fees_path"`
	BundlePath  string `mapstructure:"bundle_path"`
	Greeting    string `mapstructure:"greeting"`

	// Fixed keyword answers used by the rule-based fee resolver.
	HostelAnswer string `mapstructure:"hostel_answer"`
	MessAnswer   string `mapstructure:"mess_answer"`
}

// TrainingConfig holds the optimizer settings for the offline trainer.
type TrainingConfig struct {
	LearningRate float64 `mapstructure:"learning_rate"`
	MaxEpochs    int     `mapstructure:"max_epochs"`
	Tolerance    float64 `mapstructure:"tolerance"`
}

// CacheConfig holds the optional prediction cache settings. Classification is
// deterministic per utterance, so hosted deployments may cache predicted tags.
type CacheConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	TTL     int         `mapstructure:"ttl"` // milliseconds
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// OpsConfig holds the health/metrics sidecar listener settings.
type OpsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
