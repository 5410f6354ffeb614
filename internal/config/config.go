package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string          `mapstructure:"environment"`
	LogLevel    string          `mapstructure:"log_level"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Engine      EngineConfig    `mapstructure:"engine"`
	Scoring     ScoringConfig   `mapstructure:"scoring"`
	Collector   CollectorConfig `mapstructure:"collector"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Telegram    TelegramConfig  `mapstructure:"telegram"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// EngineConfig lifts the analytics calibration constants into
// configuration so boundary behavior can be tuned without a rebuild.
type EngineConfig struct {
	ZScoreThreshold float64 `mapstructure:"z_score_threshold"`
	TrendUpSlope    float64 `mapstructure:"trend_up_slope"`
	TrendDownSlope  float64 `mapstructure:"trend_down_slope"`
	MomentumWindow  int     `mapstructure:"momentum_window"`
	ConfidenceBase  float64 `mapstructure:"confidence_base"`
	ConfidenceDecay float64 `mapstructure:"confidence_decay"`
	ConfidenceFloor float64 `mapstructure:"confidence_floor"`
}

type ScoringConfig struct {
	DefaultMethod string `mapstructure:"default_method"`
	HistoryDays   int    `mapstructure:"history_days"`
}

type CollectorConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Interval string `mapstructure:"interval"`
}

type CacheConfig struct {
	SnapshotTTL   string `mapstructure:"snapshot_ttl"`
	PredictionTTL string `mapstructure:"prediction_ttl"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind TELEGRAM_BOT_TOKEN environment variable: %w", err)
	}

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Environment = strings.ToLower(config.Environment)

	if _, err := time.ParseDuration(config.Collector.Interval); err != nil {
		return nil, fmt.Errorf("invalid collector interval: %w", err)
	}
	if _, err := time.ParseDuration(config.Cache.SnapshotTTL); err != nil {
		return nil, fmt.Errorf("invalid snapshot cache TTL: %w", err)
	}
	if _, err := time.ParseDuration(config.Cache.PredictionTTL); err != nil {
		return nil, fmt.Errorf("invalid prediction cache TTL: %w", err)
	}
	if config.Engine.MomentumWindow < 2 {
		return nil, fmt.Errorf("momentum window must be at least 2, got %d", config.Engine.MomentumWindow)
	}
	if config.Engine.ZScoreThreshold <= 0 {
		return nil, fmt.Errorf("z-score threshold must be positive, got %v", config.Engine.ZScoreThreshold)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "riskboard")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Engine calibration: the values the risk pipeline was tuned with
	viper.SetDefault("engine.z_score_threshold", 2.5)
	viper.SetDefault("engine.trend_up_slope", 0.5)
	viper.SetDefault("engine.trend_down_slope", -0.5)
	viper.SetDefault("engine.momentum_window", 7)
	viper.SetDefault("engine.confidence_base", 95.0)
	viper.SetDefault("engine.confidence_decay", 1.5)
	viper.SetDefault("engine.confidence_floor", 50.0)

	viper.SetDefault("scoring.default_method", "time_decay_momentum")
	viper.SetDefault("scoring.history_days", 90)

	viper.SetDefault("collector.enabled", true)
	viper.SetDefault("collector.interval", "1h")

	viper.SetDefault("cache.snapshot_ttl", "5m")
	viper.SetDefault("cache.prediction_ttl", "15m")

	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("telegram.chat_id", "")

	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.otlp_endpoint", "localhost:4318")
	viper.SetDefault("telemetry.service_name", "riskboard")
	viper.SetDefault("telemetry.service_version", "1.0.0")
}
