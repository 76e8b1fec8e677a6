// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// Enable ENV override like ASSISTANT_BUNDLE_PATH
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored when not present.
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or any parent that holds
// go.mod, so binaries and tests behave the same regardless of where they run.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars substitutes ${VAR} placeholders in string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "campus-assistant"
	}

	if cfg.Assistant.IntentsPath == "" {
		cfg.Assistant.IntentsPath = "configs/intents.json"
	}
	if cfg.Assistant.FeesPath == "" {
		cfg.Assistant.FeesPath = "configs/fees.yaml"
	}
	if cfg.Assistant.BundlePath == "" {
		cfg.Assistant.BundlePath = "model_bundle.json"
	}
	if cfg.Assistant.Greeting == "" {
		cfg.Assistant.Greeting = "Hello! How can I help you today?"
	}
	if cfg.Assistant.HostelAnswer == "" {
		cfg.Assistant.HostelAnswer = "Hostel fee ranges ₹85k–₹1.2L depending on room type."
	}
	if cfg.Assistant.MessAnswer == "" {
		cfg.Assistant.MessAnswer = "Mess fee is ₹50,000 per year."
	}

	// Optimizer defaults; convergence stops earlier on small corpora.
	if cfg.Training.LearningRate == 0 {
		cfg.Training.LearningRate = 0.5
	}
	if cfg.Training.MaxEpochs == 0 {
		cfg.Training.MaxEpochs = 2000
	}
	if cfg.Training.Tolerance == 0 {
		cfg.Training.Tolerance = 1e-6
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 300000
	}

	if cfg.Ops.Address == "" {
		cfg.Ops.Address = ":8080"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if cfg.Assistant.IntentsPath == "" {
		return fmt.Errorf("assistant.intents_path is required")
	}
	if cfg.Assistant.FeesPath == "" {
		return fmt.Errorf("assistant.fees_path is required")
	}
	if cfg.Assistant.BundlePath == "" {
		return fmt.Errorf("assistant.bundle_path is required")
	}

	if cfg.Cache.Enabled && cfg.Cache.Redis.Address == "" {
		return fmt.Errorf("cache.redis.address is required when cache.enabled is true")
	}

	if cfg.Training.LearningRate < 0 {
		return fmt.Errorf("training.learning_rate must be positive")
	}
	if cfg.Training.MaxEpochs < 0 {
		return fmt.Errorf("training.max_epochs must be positive")
	}

	return nil
}
