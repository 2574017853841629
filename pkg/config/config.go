package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Notify   NotifyConfig
	Sheet    SheetConfig
	Referral ReferralConfig

	// OutboundTimeout bounds every call that leaves the process
	// (store, messaging channel, sheet sink).
	OutboundTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int

	// AdminUser/AdminPassword form the elevated credential used for
	// server-initiated writes that bypass row-level restrictions.
	// Leaving them empty disables the elevated handle; routes that
	// require it treat that as a server misconfiguration.
	AdminUser     string
	AdminPassword string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// NotifyConfig configures the payment-reminder messaging channel.
type NotifyConfig struct {
	Enabled     bool
	AWSRegion   string
	SenderEmail string
	ResumeURL   string
}

// SheetConfig controls the append-only spreadsheet export sink.
type SheetConfig struct {
	Enabled    bool
	StorageDir string
	FileName   string
	Workers    int
}

// ReferralConfig tunes referral code validation.
type ReferralConfig struct {
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:          v.GetString("DB_HOST"),
		Port:          v.GetInt("DB_PORT"),
		User:          v.GetString("DB_USER"),
		Password:      v.GetString("DB_PASSWORD"),
		Name:          v.GetString("DB_NAME"),
		SSLMode:       v.GetString("DB_SSL_MODE"),
		MaxOpenConns:  v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:  v.GetInt("DB_MAX_IDLE_CONNS"),
		AdminUser:     v.GetString("DB_ADMIN_USER"),
		AdminPassword: v.GetString("DB_ADMIN_PASSWORD"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Notify = NotifyConfig{
		Enabled:     v.GetBool("NOTIFY_ENABLED"),
		AWSRegion:   v.GetString("NOTIFY_AWS_REGION"),
		SenderEmail: v.GetString("NOTIFY_SENDER_EMAIL"),
		ResumeURL:   v.GetString("NOTIFY_RESUME_URL"),
	}

	cfg.Sheet = SheetConfig{
		Enabled:    v.GetBool("SHEET_EXPORT_ENABLED"),
		StorageDir: v.GetString("SHEET_STORAGE_DIR"),
		FileName:   v.GetString("SHEET_FILE_NAME"),
		Workers:    v.GetInt("SHEET_WORKERS"),
	}

	cfg.Referral = ReferralConfig{
		CacheTTL: parseDuration(v.GetString("REFERRAL_CACHE_TTL"), 5*time.Minute),
	}

	cfg.OutboundTimeout = parseDuration(v.GetString("OUTBOUND_TIMEOUT"), 10*time.Second)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "hackreg_public")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "hackreg")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_ADMIN_USER", "")
	v.SetDefault("DB_ADMIN_PASSWORD", "")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")
	v.SetDefault("JWT_ISSUER", "hackreg-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("NOTIFY_ENABLED", false)
	v.SetDefault("NOTIFY_AWS_REGION", "ap-south-1")
	v.SetDefault("NOTIFY_SENDER_EMAIL", "no-reply@hackreg.dev")
	v.SetDefault("NOTIFY_RESUME_URL", "http://localhost:3000/payment")

	v.SetDefault("SHEET_EXPORT_ENABLED", false)
	v.SetDefault("SHEET_STORAGE_DIR", "./sheets")
	v.SetDefault("SHEET_FILE_NAME", "registrations.csv")
	v.SetDefault("SHEET_WORKERS", 1)

	v.SetDefault("REFERRAL_CACHE_TTL", "5m")

	v.SetDefault("OUTBOUND_TIMEOUT", "10s")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
