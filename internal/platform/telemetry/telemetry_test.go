package telemetry_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/nikbrunner/fellows/internal/platform/telemetry"
)

func TestInitTracer_StdoutWritesSpans(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	tp, err := telemetry.InitTracer(ctx, "fellows-test", telemetry.ExporterStdout, "", &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(ctx, "list fellowships")
	span.End()
	require.NoError(t, tp.Shutdown(ctx))

	assert.Contains(t, buf.String(), "list fellowships")
}

func TestInitTracer_OTLP(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.InitTracer(ctx, "fellows-test", telemetry.ExporterOTLP, "http://localhost:4318", nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		// No collector runs in unit tests.
		_ = tp.Shutdown(ctx)
	})

	assert.NotEmpty(t, otel.GetTextMapPropagator().Fields())
}

func TestInitTracer_UnsupportedExporter(t *testing.T) {
	t.Parallel()

	_, err := telemetry.InitTracer(context.Background(), "fellows-test", "zipkin", "", nil)

	assert.Error(t, err)
}
