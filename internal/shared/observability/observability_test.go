package observability

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestWriteTextfile(t *testing.T) {
	before := testutil.ToFloat64(PagesAnalyzed)
	PagesAnalyzed.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(PagesAnalyzed))

	path := filepath.Join(t.TempDir(), "importtree.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# TYPE importtree_pages_analyzed_total counter")
}

func TestSetupTracing_Disabled(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "", false)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestTracerFollowsGlobalProvider(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	_, span := Tracer.Start(context.Background(), "probe")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "probe", spans[0].Name)
}
