package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisRosterDB int    `mapstructure:"REDIS_ROSTER_DB"`
	RedisTaskDB   int    `mapstructure:"REDIS_TASK_DB"`

	// Scheduling policy.
	SchedulingTimezone    string `mapstructure:"SCHEDULING_TIMEZONE"`
	SlotGranularityMin    int    `mapstructure:"SLOT_GRANULARITY_MIN"`
	AllowedDurationsMin   []int  `mapstructure:"ALLOWED_DURATIONS_MIN"`
	BookingHorizonDays    int    `mapstructure:"BOOKING_HORIZON_DAYS"`
	PendingSessionTTLMin  int    `mapstructure:"PENDING_SESSION_TTL_MIN"`
	RosterCacheTTLSeconds int    `mapstructure:"ROSTER_CACHE_TTL_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_ROSTER_DB", 0)
	viper.SetDefault("REDIS_TASK_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("SCHEDULING_TIMEZONE", "UTC")
	viper.SetDefault("SLOT_GRANULARITY_MIN", 15)
	viper.SetDefault("ALLOWED_DURATIONS_MIN", []int{30, 60, 90, 120})
	viper.SetDefault("BOOKING_HORIZON_DAYS", 90)
	viper.SetDefault("PENDING_SESSION_TTL_MIN", 10)
	viper.SetDefault("ROSTER_CACHE_TTL_SECONDS", 300)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
