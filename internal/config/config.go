package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "changeme"

type Config struct {
	Env            string   `mapstructure:"ENV"`
	ServerPort     string   `mapstructure:"SERVER_PORT"`
	DBUrl          string   `mapstructure:"DATABASE_URL"`
	DBMaxOpenConns int      `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int      `mapstructure:"DB_MAX_IDLE_CONNS"`
	JWTSecret      string   `mapstructure:"JWT_SECRET"`
	JWTTTLMinutes  int      `mapstructure:"JWT_TTL_MINUTES"`
	RedisURL       string   `mapstructure:"REDIS_URL"`
	CORSOrigins    []string `mapstructure:"CORS_ORIGINS"`

	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
}

var keys = []string{
	"ENV", "SERVER_PORT", "DATABASE_URL", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	"JWT_SECRET", "JWT_TTL_MINUTES", "REDIS_URL", "CORS_ORIGINS",
	"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY",
}

// Load reads configuration from the environment, falling back to a .env file
// in the working directory when one exists.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL_MINUTES", 60)
	v.SetDefault("S3_REGION", "us-east-1")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// missing .env is fine
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}
	if cfg.CORSOrigins == nil {
		if origins := v.GetString("CORS_ORIGINS"); origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DBUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate refuses configurations that are unsafe to serve traffic with.
func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return fmt.Errorf("JWT_SECRET must be set to a non-default value in production")
	}
	if c.JWTTTLMinutes <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be positive, got %d", c.JWTTTLMinutes)
	}
	if c.S3Bucket != "" && c.S3Region == "" {
		return fmt.Errorf("S3_REGION is required when S3_BUCKET is set")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}

func (c *Config) PhotosEnabled() bool {
	return c.S3Bucket != ""
}
