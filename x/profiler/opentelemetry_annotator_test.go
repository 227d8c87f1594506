// Copyright © 2026 The Mell authors

package profiler_test

import (
	"context"
	"testing"

	"github.com/mell-lang/mell/compiler"
	"github.com/mell-lang/mell/mell"
	"github.com/mell-lang/mell/parser"
	"github.com/mell-lang/mell/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const testScript = `
proc('_count', @n, if(gt(@n, 0), _count(sub(@n, 1))))
_count(3)
msg(add(1, 2))
`

// passNames is the fixed pass sequence in completion order.
var passNames = []string{
	"autoconcat-reduction",
	"branch-reduction",
	"function-optimization",
	"strict-mode-check",
	"procedure-registry",
	"function-optimization",
	"function-optimization",
	"branch-reduction",
}

func optimizeTraced(t *testing.T, ppa mell.Profiler, env *mell.CompileEnv) {
	t.Helper()
	tree, err := parser.Parse("test.mell", []byte(testScript), nil)
	require.NoError(t, err)
	_, err = compiler.Optimize(tree, env)
	require.NoError(t, err)
	assert.NoError(t, ppa.Complete())
}

func newExporter(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)
	return exporter
}

func TestNewOpenTelemetryAnnotator(t *testing.T) {
	exporter := newExporter(t)

	env := mell.NewCompileEnv(mell.StandardRegistry())
	ppa := profiler.NewOpenTelemetryAnnotator(env, context.Background())
	assert.NoError(t, ppa.Enable())
	optimizeTraced(t, ppa, env)

	spans := exporter.GetSpans()
	require.Len(t, spans, len(passNames), "one span per compiler pass")
	for i, span := range spans {
		assert.Equal(t, passNames[i], span.Name)
	}
}

func TestNewOpenTelemetryAnnotatorSkip(t *testing.T) {
	exporter := newExporter(t)

	env := mell.NewCompileEnv(mell.StandardRegistry())
	ppa := profiler.NewOpenTelemetryAnnotator(env, context.Background(),
		profiler.WithSkipFilter(func(name string) bool {
			return name == "function-optimization"
		}))
	assert.NoError(t, ppa.Enable())
	optimizeTraced(t, ppa, env)

	spans := exporter.GetSpans()
	require.Len(t, spans, 5, "filtered passes are not traced")
	for _, span := range spans {
		assert.NotEqual(t, "function-optimization", span.Name)
	}
}

func TestOpenTelemetryAnnotatorEnableTwice(t *testing.T) {
	env := mell.NewCompileEnv(mell.StandardRegistry())
	ppa := profiler.NewOpenTelemetryAnnotator(env, context.Background())
	require.NoError(t, ppa.Enable())
	assert.Error(t, ppa.Enable())
}

func TestOpenTelemetryAnnotatorNilContext(t *testing.T) {
	env := mell.NewCompileEnv(mell.StandardRegistry())
	ppa := profiler.NewOpenTelemetryAnnotator(env, nil)
	assert.Error(t, ppa.Enable())
}
