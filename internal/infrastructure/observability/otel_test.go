package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	ctx := context.Background()

	providers, logger, err := Init(ctx, Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)
	require.NotNil(t, providers.Logger)

	assert.NoError(t, providers.Shutdown(ctx))
}
