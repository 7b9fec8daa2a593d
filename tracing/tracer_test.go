package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestNewTracer_NilConfig(t *testing.T) {
	tp, err := NewTracer(nil, "rankstore", "1.0.0")

	assert.Nil(t, tp)
	assert.ErrorIs(t, err, ErrNilConfig)
}

func TestNewTracer_Disabled(t *testing.T) {
	global := otel.GetTracerProvider()

	tp, err := NewTracer(&Config{Enabled: false}, "", "")

	require.NoError(t, err)
	assert.NotNil(t, tp)
	assert.Equal(t, global, otel.GetTracerProvider())
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestNewTracer_EmptyServiceName(t *testing.T) {
	tp, err := NewTracer(&Config{Enabled: true, Endpoint: "localhost:4318"}, "", "1.0.0")

	assert.Nil(t, tp)
	assert.ErrorIs(t, err, ErrEmptyServiceName)
}

func TestNewTracer_EmptyEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "http://", "https://"} {
		tp, err := NewTracer(&Config{Enabled: true, Endpoint: endpoint}, "rankstore", "1.0.0")

		assert.Nil(t, tp, endpoint)
		assert.ErrorIs(t, err, ErrEmptyEndpoint, endpoint)
	}
}

func TestNewTracer_Success(t *testing.T) {
	cases := []*Config{
		{Enabled: true, Endpoint: "localhost:4318", SamplingRate: 0.5},
		{Enabled: true, Endpoint: "http://localhost:4318"},
		{Enabled: true, Endpoint: "https://collector:4318", Headers: map[string]string{"Authorization": "Bearer token"}},
	}
	for _, cfg := range cases {
		tp, err := NewTracer(cfg, "rankstore", "1.0.0")

		require.NoError(t, err, cfg.Endpoint)
		assert.Equal(t, tp, otel.GetTracerProvider())
		_ = tp.Shutdown(context.Background())
	}
}

func TestSplitEndpoint(t *testing.T) {
	endpoint, insecure := splitEndpoint("http://localhost:4318")
	assert.Equal(t, "localhost:4318", endpoint)
	assert.True(t, insecure)

	endpoint, insecure = splitEndpoint("https://collector:4318")
	assert.Equal(t, "collector:4318", endpoint)
	assert.False(t, insecure)

	endpoint, insecure = splitEndpoint("collector:4318")
	assert.Equal(t, "collector:4318", endpoint)
	assert.True(t, insecure)
}

func TestSamplingRate(t *testing.T) {
	assert.Equal(t, 1.0, samplingRate(0))
	assert.Equal(t, 1.0, samplingRate(-0.5))
	assert.Equal(t, 1.0, samplingRate(1.5))
	assert.Equal(t, 0.1, samplingRate(0.1))
}
