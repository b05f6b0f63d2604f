package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseEnv() map[string]string {
	return map[string]string{
		"BREVO_API_KEY":   "xkeysib-secret-value",
		"SENDER_EMAIL":    "noreply@example.com",
		"RECIPIENT_EMAIL": "inbox@example.com",
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(baseEnv())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "Contact Form", cfg.SenderName)
	assert.Equal(t, "https://api.brevo.com/v3", cfg.BrevoAPIURL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, 10*time.Second, cfg.DispatchTimeout)
	assert.Equal(t, "./logs/api.log", cfg.LogFile)

	policy := cfg.RateLimitPolicy()
	assert.Equal(t, 1, policy.Limit)
	assert.Equal(t, time.Hour, policy.Window)
}

func TestParse_Overrides(t *testing.T) {
	environ := baseEnv()
	environ["RATE_LIMIT_REQUESTS"] = "3"
	environ["RATE_LIMIT_WINDOW"] = "15m"
	environ["ALLOWED_ORIGINS"] = "https://a.example,https://b.example"
	environ["ENV"] = "production"

	cfg, err := Parse(environ)
	require.NoError(t, err)

	assert.Equal(t, "3 per 15 minutes", cfg.RateLimitPolicy().String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/app/logs/api.log", cfg.LogFile)
}

func TestParse_MissingAPIKeyIsConfigError(t *testing.T) {
	for name, value := range map[string]*string{"unset": nil, "empty": ptr("")} {
		t.Run(name, func(t *testing.T) {
			environ := baseEnv()
			delete(environ, "BREVO_API_KEY")
			if value != nil {
				environ["BREVO_API_KEY"] = *value
			}

			cfg, err := Parse(environ)
			require.Error(t, err)
			assert.Nil(t, cfg)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, err.Error(), "BREVO_API_KEY")
		})
	}
}

func TestParse_InvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"zero window":      {"RATE_LIMIT_WINDOW": "0s"},
		"bad duration":     {"RATE_LIMIT_WINDOW": "soon"},
		"zero timeout":     {"DISPATCH_TIMEOUT": "0s"},
		"bad sender":       {"SENDER_EMAIL": "nobody"},
		"zero send rate":   {"BREVO_SEND_RATE": "0"},
		"negative cleanup": {"RATE_LIMIT_CLEANUP_INTERVAL": "-1m"},
	}

	for name, overrides := range tests {
		t.Run(name, func(t *testing.T) {
			environ := baseEnv()
			for k, v := range overrides {
				environ[k] = v
			}
			_, err := Parse(environ)

			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestRedacted_MasksAPIKey(t *testing.T) {
	cfg, err := Parse(baseEnv())
	require.NoError(t, err)

	for _, kv := range cfg.Redacted() {
		assert.NotContains(t, kv[1], "secret-value")
		if kv[0] == "BREVO_API_KEY" {
			assert.Equal(t, "xkey********", kv[1])
		}
	}
}

func ptr(s string) *string { return &s }
