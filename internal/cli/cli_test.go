package cli

import (
	"bytes"
	"testing"

	"github.com/osa911/contactform/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV", "test")
	t.Setenv("BREVO_API_KEY", "xkeysib-1234567890")
	t.Setenv("SENDER_EMAIL", "noreply@example.com")
	t.Setenv("RECIPIENT_EMAIL", "owner@example.com")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckConfig_PrintsMaskedKey(t *testing.T) {
	setRequiredEnv(t)

	out, err := run(t, "check-config")
	require.NoError(t, err)
	assert.Contains(t, out, "xkey********")
	assert.NotContains(t, out, "xkeysib-1234567890")
	assert.Contains(t, out, "owner@example.com")
}

func TestMissingAPIKeyFailsBeforeServing(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"serve", []string{"serve"}},
		{"default command", nil},
		{"check-config", []string{"check-config"}},
		{"send-test", []string{"send-test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("BREVO_API_KEY", "")

			_, err := run(t, tt.args...)
			require.Error(t, err)

			var cfgErr *config.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), "BREVO_API_KEY")
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "contactform ")
}
