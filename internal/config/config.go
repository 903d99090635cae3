// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Analysis  AnalysisConfig  `yaml:"analysis" mapstructure:"analysis"`
	Economics EconomicsConfig `yaml:"economics" mapstructure:"economics"`
	Segments  SegmentsConfig  `yaml:"segments" mapstructure:"segments"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnalysisConfig holds the normalizer thresholds, cost inputs and
// drilldown gates.
type AnalysisConfig struct {
	HourlyLaborCost     float64 `yaml:"hourly_labor_cost" mapstructure:"hourly_labor_cost"`
	ProductivityFactor  float64 `yaml:"productivity_factor" mapstructure:"productivity_factor"`
	NoiseThresholdSecs  float64 `yaml:"noise_threshold_secs" mapstructure:"noise_threshold_secs"`
	ZombieThresholdSecs float64 `yaml:"zombie_threshold_secs" mapstructure:"zombie_threshold_secs"`
	MinSkillVolume      int     `yaml:"min_skill_volume" mapstructure:"min_skill_volume"`
	MinQueueVolume      int     `yaml:"min_queue_volume" mapstructure:"min_queue_volume"`
	MinValidRecords     int     `yaml:"min_valid_records" mapstructure:"min_valid_records"`
	Workers             int     `yaml:"workers" mapstructure:"workers"`
}

// EconomicsConfig holds the CPI table and financial assumptions. All
// values are overridable; the defaults are the reference business
// assumptions.
type EconomicsConfig struct {
	HumanCPI   float64 `yaml:"human_cpi" mapstructure:"human_cpi"`
	BotCPI     float64 `yaml:"bot_cpi" mapstructure:"bot_cpi"`
	AssistCPI  float64 `yaml:"assist_cpi" mapstructure:"assist_cpi"`
	AugmentCPI float64 `yaml:"augment_cpi" mapstructure:"augment_cpi"`

	AutomateRate float64 `yaml:"automate_rate" mapstructure:"automate_rate"`
	AssistRate   float64 `yaml:"assist_rate" mapstructure:"assist_rate"`
	AugmentRate  float64 `yaml:"augment_rate" mapstructure:"augment_rate"`

	DiscountRate       float64 `yaml:"discount_rate" mapstructure:"discount_rate"`
	LeadTimeMonths     int     `yaml:"lead_time_months" mapstructure:"lead_time_months"`
	FallbackInvestment float64 `yaml:"fallback_investment" mapstructure:"fallback_investment"`
}

// SegmentsConfig points at the optional queue-to-segment mapping file.
type SegmentsConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// StoreConfig configures the run-history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port          int     `yaml:"port" mapstructure:"port"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst     int     `yaml:"rate_burst" mapstructure:"rate_burst"`
	MaxUploadMB   int     `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BEYOND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("analysis.hourly_labor_cost", 20.0)
	v.SetDefault("analysis.productivity_factor", 0.70)
	v.SetDefault("analysis.noise_threshold_secs", 10.0)
	v.SetDefault("analysis.zombie_threshold_secs", 3600.0)
	v.SetDefault("analysis.min_skill_volume", 10)
	v.SetDefault("analysis.min_queue_volume", 5)
	v.SetDefault("analysis.min_valid_records", 3)
	v.SetDefault("analysis.workers", 0)
	v.SetDefault("economics.human_cpi", 2.33)
	v.SetDefault("economics.bot_cpi", 0.15)
	v.SetDefault("economics.assist_cpi", 1.50)
	v.SetDefault("economics.augment_cpi", 2.00)
	v.SetDefault("economics.automate_rate", 0.70)
	v.SetDefault("economics.assist_rate", 0.30)
	v.SetDefault("economics.augment_rate", 0.15)
	v.SetDefault("economics.discount_rate", 0.10)
	v.SetDefault("economics.lead_time_months", 9)
	v.SetDefault("economics.fallback_investment", 100000.0)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "beyondmetrics.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_second", 5.0)
	v.SetDefault("server.rate_burst", 10)
	v.SetDefault("server.max_upload_mb", 64)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
