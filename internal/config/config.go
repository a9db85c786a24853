package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Upstream  UpstreamConfig
	Invoice   InvoiceConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type LogConfig struct {
	Level string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// JWTConfig verifies tokens issued by the booking backend
type JWTConfig struct {
	Secret    string
	Issuer    string
	AdminRole string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type PrinterConfig struct {
	Type      string // usb, network, none
	USBPath   string
	Address   string
	CharWidth int
	Timeout   time.Duration
}

// UpstreamConfig points at the booking backend's REST API
type UpstreamConfig struct {
	BaseURL      string
	Timeout      time.Duration
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
}

// HasServiceAccount reports whether client credentials are configured
func (c *UpstreamConfig) HasServiceAccount() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.TokenURL != ""
}

type InvoiceConfig struct {
	Source           string // api or database
	CompanyName      string
	LocationCacheTTL time.Duration
	XLSXRowsPerPage  int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		slog.Warn(".env file not found, using environment variables", "error", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "reservation-invoicing")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "booking")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Africa/Tunis")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("JWT_ADMIN_ROLE", "ADMIN")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:4200")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 48)
	viper.SetDefault("PRINTER_TIMEOUT_SECONDS", 5)
	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:9090")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 10)
	viper.SetDefault("UPSTREAM_CLIENT_ID", "")
	viper.SetDefault("UPSTREAM_CLIENT_SECRET", "")
	viper.SetDefault("UPSTREAM_TOKEN_URL", "")
	viper.SetDefault("UPSTREAM_SCOPES", "")
	viper.SetDefault("INVOICE_SOURCE", "api")
	viper.SetDefault("INVOICE_COMPANY_NAME", "Travel Admin")
	viper.SetDefault("INVOICE_LOCATION_CACHE_MINUTES", 30)
	viper.SetDefault("INVOICE_XLSX_ROWS_PER_PAGE", 30)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:    viper.GetString("JWT_SECRET"),
			Issuer:    viper.GetString("JWT_ISSUER"),
			AdminRole: viper.GetString("JWT_ADMIN_ROLE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
			Timeout:   time.Duration(viper.GetInt("PRINTER_TIMEOUT_SECONDS")) * time.Second,
		},
		Upstream: UpstreamConfig{
			BaseURL:      strings.TrimRight(viper.GetString("UPSTREAM_BASE_URL"), "/"),
			Timeout:      time.Duration(viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second,
			ClientID:     viper.GetString("UPSTREAM_CLIENT_ID"),
			ClientSecret: viper.GetString("UPSTREAM_CLIENT_SECRET"),
			TokenURL:     viper.GetString("UPSTREAM_TOKEN_URL"),
			Scopes:       viper.GetStringSlice("UPSTREAM_SCOPES"),
		},
		Invoice: InvoiceConfig{
			Source:           strings.ToLower(viper.GetString("INVOICE_SOURCE")),
			CompanyName:      viper.GetString("INVOICE_COMPANY_NAME"),
			LocationCacheTTL: time.Duration(viper.GetInt("INVOICE_LOCATION_CACHE_MINUTES")) * time.Minute,
			XLSXRowsPerPage:  viper.GetInt("INVOICE_XLSX_ROWS_PER_PAGE"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
