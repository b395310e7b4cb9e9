package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"tripplanner/pkg/logger"
)

type Config struct {
	App      *AppConfig      `yaml:"app"`
	Log      *logger.Config  `yaml:"log"`
	Store    *StoreConfig    `yaml:"store"`
	Redis    *RedisConfig    `yaml:"redis"`
	Oracle   *OracleConfig   `yaml:"oracle"`
	Payment  *PaymentConfig  `yaml:"payment"`
	Maps     *MapsConfig     `yaml:"maps"`
	Security *SecurityConfig `yaml:"security"`
	SMTP     *SMTPConfig     `yaml:"smtp"`
}

type AppConfig struct {
	Name            string        `yaml:"name"`
	Environment     string        `yaml:"environment"`
	Port            int           `yaml:"port"`
	BaseURL         string        `yaml:"base_url"`
	Timezone        string        `yaml:"timezone"`
	MaxTripDays     int           `yaml:"max_trip_days"`
	LuxurySurcharge float64       `yaml:"luxury_surcharge"`
	HotelFeeOffset  float64       `yaml:"hotel_fee_offset"`
	DraftTTL        time.Duration `yaml:"draft_ttl"`
	RideOptionsTTL  time.Duration `yaml:"ride_options_ttl"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	Backend             string `yaml:"backend"` // firestore, postgres, sqlite, memory
	PostgresURL         string `yaml:"postgres_url"`
	SQLitePath          string `yaml:"sqlite_path"`
	FirebaseProjectID   string `yaml:"firebase_project_id"`
	FirebaseCredentials string `yaml:"firebase_credentials"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type OracleConfig struct {
	Provider        string        `yaml:"provider"` // gemini, openai
	GeminiAPIKey    string        `yaml:"gemini_api_key"`
	GeminiModel     string        `yaml:"gemini_model"`
	OpenAIAPIKey    string        `yaml:"openai_api_key"`
	OpenAIModel     string        `yaml:"openai_model"`
	Temperature     float64       `yaml:"temperature"`
	TopP            float64       `yaml:"top_p"`
	TopK            int           `yaml:"top_k"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
	Timeout         time.Duration `yaml:"timeout"`
}

type PaymentConfig struct {
	StripeSecretKey     string  `yaml:"stripe_secret_key"`
	StripeWebhookSecret string  `yaml:"stripe_webhook_secret"`
	SuccessURL          string  `yaml:"success_url"`
	CancelURL           string  `yaml:"cancel_url"`
	RideSuccessURL      string  `yaml:"ride_success_url"`
	RideCancelURL       string  `yaml:"ride_cancel_url"`
	PKRPerUSD           float64 `yaml:"pkr_per_usd"`
}

type MapsConfig struct {
	APIKey        string `yaml:"api_key"`
	PhotoMaxWidth int    `yaml:"photo_max_width"`
}

type SecurityConfig struct {
	JWTSecret          string        `yaml:"jwt_secret"`
	JWTTokenTTL        time.Duration `yaml:"jwt_token_ttl"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute"`
	RateLimitBurst     int           `yaml:"rate_limit_burst"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
	UseSSL   bool   `yaml:"use_ssl"`
}

// Load resolves configuration from defaults, then the optional YAML file named
// by CONFIG_FILE, then environment variables (a .env file is loaded first if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.App = loadAppConfig(cfg.App)
	cfg.Log = loadLogConfig(cfg.Log)
	cfg.Store = loadStoreConfig(cfg.Store)
	cfg.Redis = loadRedisConfig(cfg.Redis)
	cfg.Oracle = loadOracleConfig(cfg.Oracle)
	cfg.Payment = loadPaymentConfig(cfg.Payment)
	cfg.Maps = loadMapsConfig(cfg.Maps)
	cfg.Security = loadSecurityConfig(cfg.Security)
	cfg.SMTP = loadSMTPConfig(cfg.SMTP)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		App: &AppConfig{
			Name:            "TripPlanner",
			Environment:     "development",
			Port:            8080,
			BaseURL:         "http://localhost:5173",
			Timezone:        "Asia/Karachi",
			MaxTripDays:     7,
			LuxurySurcharge: 50000,
			HotelFeeOffset:  5000,
			DraftTTL:        2 * time.Hour,
			RideOptionsTTL:  30 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: &logger.Config{
			Level:   logger.InfoLevel,
			Format:  "text",
			Output:  "stdout",
			AppName: "tripplanner",
		},
		Store: &StoreConfig{
			Backend:    "memory",
			SQLitePath: "tripplanner.db",
		},
		Redis: &RedisConfig{
			Host:   "localhost",
			Port:   6379,
			Prefix: "tripplanner:",
		},
		Oracle: &OracleConfig{
			Provider:        "gemini",
			GeminiModel:     "gemini-2.0-flash-exp",
			OpenAIModel:     "gpt-4o-mini",
			Temperature:     0.7,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 8192,
			Timeout:         60 * time.Second,
		},
		Payment: &PaymentConfig{
			SuccessURL:     "http://localhost:5173/success",
			CancelURL:      "http://localhost:5173/cancel",
			RideSuccessURL: "http://localhost:5173/ride-success",
			RideCancelURL:  "http://localhost:5173/ride-cancel",
			PKRPerUSD:      291,
		},
		Maps: &MapsConfig{
			PhotoMaxWidth: 800,
		},
		Security: &SecurityConfig{
			JWTTokenTTL:        24 * time.Hour,
			CORSAllowedOrigins: []string{"http://localhost:5173"},
			RateLimitPerMinute: 10,
			RateLimitBurst:     3,
		},
		SMTP: &SMTPConfig{
			Port:     587,
			FromName: "TripPlanner",
		},
	}
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.App.MaxTripDays < 1 {
		errs = append(errs, errors.New("app.max_trip_days must be at least 1"))
	}
	if c.App.LuxurySurcharge < 0 {
		errs = append(errs, errors.New("app.luxury_surcharge must not be negative"))
	}
	if c.Payment.PKRPerUSD <= 0 {
		errs = append(errs, errors.New("payment.pkr_per_usd must be positive"))
	}
	switch c.Store.Backend {
	case "memory", "sqlite", "postgres", "firestore":
	default:
		errs = append(errs, fmt.Errorf("store.backend %q is not supported", c.Store.Backend))
	}
	if c.Store.Backend == "postgres" && c.Store.PostgresURL == "" {
		errs = append(errs, errors.New("store.postgres_url is required for the postgres backend"))
	}
	switch c.Oracle.Provider {
	case "gemini", "openai":
	default:
		errs = append(errs, fmt.Errorf("oracle.provider %q is not supported", c.Oracle.Provider))
	}
	if c.IsProduction() && c.Security.JWTSecret == "" {
		errs = append(errs, errors.New("security.jwt_secret is required in production"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func loadAppConfig(cur *AppConfig) *AppConfig {
	return &AppConfig{
		Name:            getEnv("APP_NAME", cur.Name),
		Environment:     getEnv("APP_ENV", cur.Environment),
		Port:            getEnvAsInt("PORT", cur.Port),
		BaseURL:         getEnv("APP_BASE_URL", cur.BaseURL),
		Timezone:        getEnv("APP_TIMEZONE", cur.Timezone),
		MaxTripDays:     getEnvAsInt("MAX_TRIP_DAYS", cur.MaxTripDays),
		LuxurySurcharge: getEnvAsFloat64("LUXURY_SURCHARGE", cur.LuxurySurcharge),
		HotelFeeOffset:  getEnvAsFloat64("HOTEL_FEE_OFFSET", cur.HotelFeeOffset),
		DraftTTL:        getEnvAsDuration("DRAFT_TTL", cur.DraftTTL),
		RideOptionsTTL:  getEnvAsDuration("RIDE_OPTIONS_TTL", cur.RideOptionsTTL),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", cur.ShutdownTimeout),
	}
}

func loadLogConfig(cur *logger.Config) *logger.Config {
	return &logger.Config{
		Level:      logger.LogLevel(getEnv("LOG_LEVEL", string(cur.Level))),
		Format:     getEnv("LOG_FORMAT", cur.Format),
		Output:     getEnv("LOG_OUTPUT", cur.Output),
		TimeFormat: getEnv("LOG_TIME_FORMAT", cur.TimeFormat),
		Caller:     getEnvAsBool("LOG_CALLER", cur.Caller),
		AppName:    cur.AppName,
	}
}

func loadStoreConfig(cur *StoreConfig) *StoreConfig {
	return &StoreConfig{
		Backend:             getEnv("STORE_BACKEND", cur.Backend),
		PostgresURL:         getEnv("POSTGRES_URL", cur.PostgresURL),
		SQLitePath:          getEnv("SQLITE_PATH", cur.SQLitePath),
		FirebaseProjectID:   getEnv("FIREBASE_PROJECT_ID", cur.FirebaseProjectID),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS_FILE", cur.FirebaseCredentials),
	}
}

func loadRedisConfig(cur *RedisConfig) *RedisConfig {
	return &RedisConfig{
		Enabled:  getEnvAsBool("REDIS_ENABLED", cur.Enabled),
		Host:     getEnv("REDIS_HOST", cur.Host),
		Port:     getEnvAsInt("REDIS_PORT", cur.Port),
		Password: getEnv("REDIS_PASSWORD", cur.Password),
		DB:       getEnvAsInt("REDIS_DB", cur.DB),
		Prefix:   getEnv("REDIS_PREFIX", cur.Prefix),
	}
}

func loadOracleConfig(cur *OracleConfig) *OracleConfig {
	return &OracleConfig{
		Provider:        getEnv("ORACLE_PROVIDER", cur.Provider),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", cur.GeminiAPIKey),
		GeminiModel:     getEnv("GEMINI_MODEL", cur.GeminiModel),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", cur.OpenAIAPIKey),
		OpenAIModel:     getEnv("OPENAI_MODEL", cur.OpenAIModel),
		Temperature:     getEnvAsFloat64("ORACLE_TEMPERATURE", cur.Temperature),
		TopP:            getEnvAsFloat64("ORACLE_TOP_P", cur.TopP),
		TopK:            getEnvAsInt("ORACLE_TOP_K", cur.TopK),
		MaxOutputTokens: getEnvAsInt("ORACLE_MAX_OUTPUT_TOKENS", cur.MaxOutputTokens),
		Timeout:         getEnvAsDuration("ORACLE_TIMEOUT", cur.Timeout),
	}
}

func loadPaymentConfig(cur *PaymentConfig) *PaymentConfig {
	return &PaymentConfig{
		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", cur.StripeSecretKey),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", cur.StripeWebhookSecret),
		SuccessURL:          getEnv("PAYMENT_SUCCESS_URL", cur.SuccessURL),
		CancelURL:           getEnv("PAYMENT_CANCEL_URL", cur.CancelURL),
		RideSuccessURL:      getEnv("RIDE_PAYMENT_SUCCESS_URL", cur.RideSuccessURL),
		RideCancelURL:       getEnv("RIDE_PAYMENT_CANCEL_URL", cur.RideCancelURL),
		PKRPerUSD:           getEnvAsFloat64("PKR_PER_USD", cur.PKRPerUSD),
	}
}

func loadMapsConfig(cur *MapsConfig) *MapsConfig {
	return &MapsConfig{
		APIKey:        getEnv("GOOGLE_MAPS_API_KEY", cur.APIKey),
		PhotoMaxWidth: getEnvAsInt("GOOGLE_PHOTO_MAX_WIDTH", cur.PhotoMaxWidth),
	}
}

func loadSecurityConfig(cur *SecurityConfig) *SecurityConfig {
	return &SecurityConfig{
		JWTSecret:          getEnv("JWT_SECRET", cur.JWTSecret),
		JWTTokenTTL:        getEnvAsDuration("JWT_TOKEN_TTL", cur.JWTTokenTTL),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", cur.CORSAllowedOrigins),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", cur.RateLimitPerMinute),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", cur.RateLimitBurst),
	}
}

func loadSMTPConfig(cur *SMTPConfig) *SMTPConfig {
	return &SMTPConfig{
		Host:     getEnv("SMTP_HOST", cur.Host),
		Port:     getEnvAsInt("SMTP_PORT", cur.Port),
		Username: getEnv("SMTP_USERNAME", cur.Username),
		Password: getEnv("SMTP_PASSWORD", cur.Password),
		From:     getEnv("SMTP_FROM", cur.From),
		FromName: getEnv("SMTP_FROM_NAME", cur.FromName),
		UseSSL:   getEnvAsBool("SMTP_USE_SSL", cur.UseSSL),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}
