package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracer_DisabledWithoutEndpoint(t *testing.T) {
	cfg := Config{Endpoint: "  ", ServiceName: "contact-form-api"}
	assert.False(t, cfg.Enabled())

	shutdown, err := InitTracer(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
