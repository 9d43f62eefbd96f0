package utils

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Redis        RedisConfig
	RateLimit    RateLimitConfig
	WorkingHours WorkingHoursConfig
}

type AppConfig struct {
	Name                   string
	Port                   string
	Debug                  bool
	LogPath                string
	LogLevel               string
	Timezone               string
	AdminBootstrapSecret   string
	ShutdownTimeoutSeconds int
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	MaxConns    int32
	AutoMigrate bool
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// RedisConfig is optional; an empty Addr disables the availability cache.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// WorkingHoursConfig selects how reschedule times are bounded.
// Policy "availability" checks the provider's weekly slots and falls back to
// [Start, End] hours when the provider has none stored; "fixed" always uses
// the hour window.
type WorkingHoursConfig struct {
	Policy string
	Start  int
	End    int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "karigar")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 15)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL_SECONDS", 300)
	viper.SetDefault("RATE_LIMIT_RPS", 5)
	viper.SetDefault("RATE_LIMIT_BURST", 10)
	viper.SetDefault("WORKING_HOURS_POLICY", "availability")
	viper.SetDefault("WORKING_HOURS_START", 9)
	viper.SetDefault("WORKING_HOURS_END", 21)

	// .env is optional, plain environment variables are enough in containers
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:                   viper.GetString("APP_NAME"),
			Port:                   viper.GetString("PORT"),
			Debug:                  viper.GetBool("DEBUG"),
			LogPath:                viper.GetString("LOG_PATH"),
			LogLevel:               viper.GetString("LOG_LEVEL"),
			Timezone:               viper.GetString("TIMEZONE"),
			AdminBootstrapSecret:   viper.GetString("ADMIN_BOOTSTRAP_SECRET"),
			ShutdownTimeoutSeconds: viper.GetInt("SHUTDOWN_TIMEOUT_SECONDS"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Redis: RedisConfig{
			Addr:       viper.GetString("REDIS_ADDR"),
			Password:   viper.GetString("REDIS_PASSWORD"),
			DB:         viper.GetInt("REDIS_DB"),
			TTLSeconds: viper.GetInt("CACHE_TTL_SECONDS"),
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
		WorkingHours: WorkingHoursConfig{
			Policy: viper.GetString("WORKING_HOURS_POLICY"),
			Start:  viper.GetInt("WORKING_HOURS_START"),
			End:    viper.GetInt("WORKING_HOURS_END"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}
