package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/osa911/contactform/internal/logging"
	"github.com/osa911/contactform/internal/ratelimit"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string        `env:"ENV" envDefault:"development"`
	Port           string        `env:"PORT" envDefault:"8000"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	TrustedProxies []string      `env:"TRUSTED_PROXIES" envSeparator:","`
	MaxBodyBytes   int64         `env:"MAX_BODY_BYTES" envDefault:"65536"`
	ShutdownGrace  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Brevo Configuration
	BrevoAPIKey     string        `env:"BREVO_API_KEY,required,notEmpty"`
	BrevoAPIURL     string        `env:"BREVO_API_URL" envDefault:"https://api.brevo.com/v3"`
	BrevoSendRate   float64       `env:"BREVO_SEND_RATE" envDefault:"5"`
	BrevoSendBurst  int           `env:"BREVO_SEND_BURST" envDefault:"5"`
	SenderEmail     string        `env:"SENDER_EMAIL,required,notEmpty"`
	SenderName      string        `env:"SENDER_NAME" envDefault:"Contact Form"`
	RecipientEmail  string        `env:"RECIPIENT_EMAIL,required,notEmpty"`
	DispatchTimeout time.Duration `env:"DISPATCH_TIMEOUT" envDefault:"10s"`

	// Rate Limit Configuration
	RateLimitRequests        int           `env:"RATE_LIMIT_REQUESTS" envDefault:"1"`
	RateLimitWindow          time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1h"`
	RateLimitCleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"10m"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"contact-form-api"`
}

// ConfigError marks a configuration problem that must stop startup
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv never overrides variables already present in the process
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse(environMap(os.Environ()))
}

// Parse builds a Config from an explicit environment
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, &ConfigError{Err: err}
	}

	if err := cfg.validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.IsProduction() {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimitWindow)
	}
	if c.RateLimitCleanupInterval < 0 {
		return fmt.Errorf("RATE_LIMIT_CLEANUP_INTERVAL must not be negative")
	}
	if c.DispatchTimeout <= 0 {
		return fmt.Errorf("DISPATCH_TIMEOUT must be positive")
	}
	if c.BrevoSendRate <= 0 || c.BrevoSendBurst <= 0 {
		return fmt.Errorf("BREVO_SEND_RATE and BREVO_SEND_BURST must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if !strings.Contains(c.SenderEmail, "@") || !strings.Contains(c.RecipientEmail, "@") {
		return fmt.Errorf("SENDER_EMAIL and RECIPIENT_EMAIL must be email addresses")
	}
	return nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// RateLimitPolicy returns the per-client admission policy
func (c *Config) RateLimitPolicy() ratelimit.Policy {
	return ratelimit.Policy{
		Limit:  c.RateLimitRequests,
		Window: c.RateLimitWindow,
	}
}

// Logging returns the logger settings
func (c *Config) Logging() *logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = strings.ToLower(c.LogLevel)
	lc.File = c.LogFile
	return lc
}

// Redacted returns printable key/value pairs with secrets masked
func (c *Config) Redacted() [][2]string {
	return [][2]string{
		{"ENV", c.Environment},
		{"PORT", c.Port},
		{"BREVO_API_KEY", mask(c.BrevoAPIKey)},
		{"BREVO_API_URL", c.BrevoAPIURL},
		{"SENDER_EMAIL", c.SenderEmail},
		{"SENDER_NAME", c.SenderName},
		{"RECIPIENT_EMAIL", c.RecipientEmail},
		{"RATE_LIMIT", c.RateLimitPolicy().String()},
		{"ALLOWED_ORIGINS", strings.Join(c.AllowedOrigins, ",")},
		{"TRUSTED_PROXIES", strings.Join(c.TrustedProxies, ",")},
		{"OTEL_EXPORTER_OTLP_ENDPOINT", c.OTLPEndpoint},
	}
}

func mask(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:4] + strings.Repeat("*", 8)
}

func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			m[k] = v
		}
	}
	return m
}
