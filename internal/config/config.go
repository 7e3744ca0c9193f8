package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	JWTSecret         string
	TokenTTL          time.Duration
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxIdleTime time.Duration
	DBConnectAttempts int
	AuthRateLimit     int
	AuthRateWindow    time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CLASSSCORE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "ClassScore API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("token.ttl", "720h")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.connect_attempts", 10)
	v.SetDefault("auth.rate_limit", 20)
	v.SetDefault("auth.rate_window", "1m")

	tokenTTL, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	idleTime, err := time.ParseDuration(v.GetString("db.conn_max_idle_time"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid db idle time: %w", err)
	}

	rateWindow, err := time.ParseDuration(v.GetString("auth.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid auth rate window: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		JWTSecret:         v.GetString("jwt.secret"),
		TokenTTL:          tokenTTL,
		DBMaxOpenConns:    v.GetInt("db.max_open_conns"),
		DBMaxIdleConns:    v.GetInt("db.max_idle_conns"),
		DBConnMaxIdleTime: idleTime,
		DBConnectAttempts: v.GetInt("db.connect_attempts"),
		AuthRateLimit:     v.GetInt("auth.rate_limit"),
		AuthRateWindow:    rateWindow,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.DBConnectAttempts <= 0 {
		cfg.DBConnectAttempts = 10
	}

	return cfg, nil
}
