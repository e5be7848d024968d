package config

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Upstream  UpstreamConfig
	JWT       JWTConfig
	Admin     AdminConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Finance   FinanceConfig
	Images    ImagesConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// UpstreamConfig points at the receipts API
type UpstreamConfig struct {
	BaseURL     string
	Token       string
	Timeout     time.Duration
	Concurrency int
	Source      string // "remote" or "mock"

	// MaxResponseBytes caps how much of an upstream body is read
	MaxResponseBytes int64
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

// AdminConfig holds the single dashboard account
type AdminConfig struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// FinanceConfig holds the marketplace fee policy used to derive finance sheets
type FinanceConfig struct {
	TransactionFeeRate float64
	TransactionVATRate float64
	ProcessingFeeRate  float64
	ProcessingFeeFixed float64
	ProcessingVATRate  float64
	ProcessingVATFixed float64
	ListingFeePerUnit  float64
	ListingVATPerUnit  float64
	ShippingFeeRate    float64
	ShippingVATRate    float64
	MinorUnitScale     int64
	UseAmountDivisor   bool
	DateLayout         string
	Timezone           string
	AvatarPathFormat   string
}

type ImagesConfig struct {
	PreferredSize string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		slog.Warn("config.env_file_missing", "error", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "shopdash-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("API_URL", "http://localhost:3003")
	viper.SetDefault("API_TOKEN", "")
	viper.SetDefault("API_TIMEOUT_SECONDS", 15)
	viper.SetDefault("API_CONCURRENCY", 4)
	viper.SetDefault("API_MAX_RESPONSE_BYTES", 10<<20)
	viper.SetDefault("RECEIPT_SOURCE", "remote")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("ADMIN_EMAIL", "admin@shopdash.local")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("ADMIN_FIRST_NAME", "Shop")
	viper.SetDefault("ADMIN_LAST_NAME", "Admin")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("FEE_TRANSACTION_RATE", 0.00065)
	viper.SetDefault("FEE_TRANSACTION_VAT_RATE", 0.2)
	viper.SetDefault("FEE_PROCESSING_RATE", 0.0004)
	viper.SetDefault("FEE_PROCESSING_FIXED", 0.3)
	viper.SetDefault("FEE_PROCESSING_VAT_RATE", 0.00008)
	viper.SetDefault("FEE_PROCESSING_VAT_FIXED", 0.06)
	viper.SetDefault("FEE_LISTING_PER_UNIT", 0.18)
	viper.SetDefault("FEE_LISTING_VAT_PER_UNIT", 0.04)
	viper.SetDefault("FEE_SHIPPING_RATE", 0.00065)
	viper.SetDefault("FEE_SHIPPING_VAT_RATE", 0.2)
	viper.SetDefault("MONEY_MINOR_UNIT_SCALE", 100)
	viper.SetDefault("MONEY_USE_AMOUNT_DIVISOR", false)
	viper.SetDefault("DISPLAY_DATE_LAYOUT", "1/2/2006")
	viper.SetDefault("DISPLAY_TIMEZONE", "UTC")
	viper.SetDefault("AVATAR_PATH_FORMAT", "/assets/images/avatars/avatar_%d.jpg")
	viper.SetDefault("IMAGE_PREFERRED_SIZE", "75x75")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Upstream: UpstreamConfig{
			BaseURL:     viper.GetString("API_URL"),
			Token:       viper.GetString("API_TOKEN"),
			Timeout:     time.Duration(viper.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
			Concurrency: viper.GetInt("API_CONCURRENCY"),
			Source:      viper.GetString("RECEIPT_SOURCE"),

			MaxResponseBytes: viper.GetInt64("API_MAX_RESPONSE_BYTES"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		Admin: AdminConfig{
			Email:        viper.GetString("ADMIN_EMAIL"),
			PasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
			FirstName:    viper.GetString("ADMIN_FIRST_NAME"),
			LastName:     viper.GetString("ADMIN_LAST_NAME"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Finance: FinanceConfig{
			TransactionFeeRate: viper.GetFloat64("FEE_TRANSACTION_RATE"),
			TransactionVATRate: viper.GetFloat64("FEE_TRANSACTION_VAT_RATE"),
			ProcessingFeeRate:  viper.GetFloat64("FEE_PROCESSING_RATE"),
			ProcessingFeeFixed: viper.GetFloat64("FEE_PROCESSING_FIXED"),
			ProcessingVATRate:  viper.GetFloat64("FEE_PROCESSING_VAT_RATE"),
			ProcessingVATFixed: viper.GetFloat64("FEE_PROCESSING_VAT_FIXED"),
			ListingFeePerUnit:  viper.GetFloat64("FEE_LISTING_PER_UNIT"),
			ListingVATPerUnit:  viper.GetFloat64("FEE_LISTING_VAT_PER_UNIT"),
			ShippingFeeRate:    viper.GetFloat64("FEE_SHIPPING_RATE"),
			ShippingVATRate:    viper.GetFloat64("FEE_SHIPPING_VAT_RATE"),
			MinorUnitScale:     viper.GetInt64("MONEY_MINOR_UNIT_SCALE"),
			UseAmountDivisor:   viper.GetBool("MONEY_USE_AMOUNT_DIVISOR"),
			DateLayout:         viper.GetString("DISPLAY_DATE_LAYOUT"),
			Timezone:           viper.GetString("DISPLAY_TIMEZONE"),
			AvatarPathFormat:   viper.GetString("AVATAR_PATH_FORMAT"),
		},
		Images: ImagesConfig{
			PreferredSize: viper.GetString("IMAGE_PREFERRED_SIZE"),
		},
	}
}

// IsMockSource reports whether receipts come from the bundled fixture
func (c *UpstreamConfig) IsMockSource() bool {
	return c.Source == "mock"
}
