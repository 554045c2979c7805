package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const Version = "0.1.0"

type Config struct {
	AppEnv      string
	Host        string
	Port        int
	Debug       bool
	LogLevel    string
	CORSOrigins []string

	DBDriver    string
	DatabaseURL string

	RedisURL string

	JWTSecret     []byte
	JWTAlgorithm  string
	JWTExpiration time.Duration

	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	S3Bucket           string
	S3Endpoint         string

	FirstSuperuserEmail    string
	FirstSuperuserUsername string
	FirstSuperuserPassword string

	RateLimitRPS   float64
	RateLimitBurst int

	SentryDSN    string
	OTLPEndpoint string
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8000)
	v.SetDefault("DEBUG", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_CORS_ORIGINS", "*")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "listener_db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("JWT_EXPIRATION", 1440)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)

	cfg := &Config{
		AppEnv:                 v.GetString("APP_ENV"),
		Host:                   v.GetString("API_HOST"),
		Port:                   v.GetInt("API_PORT"),
		Debug:                  v.GetBool("DEBUG"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		CORSOrigins:            splitList(v.GetString("API_CORS_ORIGINS")),
		DBDriver:               strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:            v.GetString("DATABASE_URL"),
		RedisURL:               v.GetString("REDIS_URL"),
		JWTAlgorithm:           v.GetString("JWT_ALGORITHM"),
		JWTExpiration:          time.Duration(v.GetInt("JWT_EXPIRATION")) * time.Minute,
		AWSAccessKeyID:         v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:     v.GetString("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:              v.GetString("AWS_REGION"),
		S3Bucket:               v.GetString("AWS_S3_BUCKET"),
		S3Endpoint:             v.GetString("AWS_S3_ENDPOINT"),
		FirstSuperuserEmail:    v.GetString("FIRST_SUPERUSER_EMAIL"),
		FirstSuperuserUsername: v.GetString("FIRST_SUPERUSER_USERNAME"),
		FirstSuperuserPassword: v.GetString("FIRST_SUPERUSER_PASSWORD"),
		RateLimitRPS:           v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:         v.GetInt("RATE_LIMIT_BURST"),
		SentryDSN:              v.GetString("SENTRY_DSN"),
		OTLPEndpoint:           v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" && cfg.DBDriver == "postgres" {
		cfg.DatabaseURL = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			v.GetString("DB_HOST"), v.GetInt("DB_PORT"), v.GetString("DB_USER"),
			v.GetString("DB_PASSWORD"), v.GetString("DB_NAME"), v.GetString("DB_SSLMODE"))
	}

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		secret = randomSecret()
	}
	cfg.JWTSecret = []byte(secret)

	if cfg.JWTAlgorithm != "HS256" {
		return nil, fmt.Errorf("unsupported JWT_ALGORITHM %q", cfg.JWTAlgorithm)
	}
	if cfg.JWTExpiration <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRATION must be positive")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "change-this-secret-in-production"
	}
	return hex.EncodeToString(buf)
}
