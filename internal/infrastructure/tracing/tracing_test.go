package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/preferences-api/internal/config"
)

func TestInit(t *testing.T) {
	app := config.AppConfig{Name: "preferences-service", Version: "1.0.0", Env: "test"}

	testCases := []struct {
		name     string
		exporter string
		wantErr  bool
	}{
		{"none", config.TracingExporterNone, false},
		{"empty", "", false},
		{"stdout", config.TracingExporterStdout, false},
		{"unknown", "zipkin", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			shutdown, err := Init(context.Background(), app, config.TracingConfig{Exporter: tc.exporter, SampleRatio: 1})
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, shutdown(context.Background()))
		})
	}
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.0, clampRatio(-1))
	assert.Equal(t, 0.5, clampRatio(0.5))
	assert.Equal(t, 1.0, clampRatio(3))
}
