package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/andrewortman/pqbench"
)

var series = []pqbench.Result{
	{Size: 100, InsertTimeMs: 0.25, ExtractTimeMs: 1.5},
	{Size: 2000, InsertTimeMs: 3, ExtractTimeMs: 40},
}

func TestLogReporter(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	require.NoError(t, NewLogReporter(zap.New(core)).Report("unsorted", series))

	entries := logs.All()
	require.Len(t, entries, 2)
	fields := entries[1].ContextMap()
	assert.Equal(t, "unsorted", fields["queue"])
	assert.Equal(t, int64(2000), fields["size"])
	assert.Equal(t, 3.0, fields["insert_ms"])
	assert.Equal(t, 40.0, fields["extract_ms"])
}

func TestLogReporter_NilLogger(t *testing.T) {
	assert.NoError(t, NewLogReporter(nil).Report("heap", series))
}

func TestMetricsReporter(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewMetricsReporter(reg)
	require.NoError(t, err)
	require.NoError(t, r.Report("heap", series))

	assert.Equal(t, 4, testutil.CollectAndCount(r.durations))
	assert.Equal(t, 0.25, testutil.ToFloat64(r.durations.WithLabelValues("heap", "100", PhaseInsert)))
	assert.Equal(t, 40.0, testutil.ToFloat64(r.durations.WithLabelValues("heap", "2000", PhaseExtract)))

	// registering twice on the same registry is rejected
	_, err = NewMetricsReporter(reg)
	require.Error(t, err)
}

func TestTableReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableReporter(&buf).Report("heap", series))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "heap", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "ExtractMax Time (ms)")
	assert.Equal(t, []string{"n=100", "0.250", "1.500"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"n=2000", "3.000", "40.000"}, strings.Fields(lines[3]))
}

type failingReporter struct{ calls int }

func (f *failingReporter) Report(string, []pqbench.Result) error {
	f.calls++
	return errors.New("sink down")
}

func TestMulti(t *testing.T) {
	var buf bytes.Buffer
	failing := &failingReporter{}
	err := Multi(failing, NewTableReporter(&buf)).Report("unsorted", series)

	require.ErrorContains(t, err, "sink down")
	assert.Equal(t, 1, failing.calls)
	assert.Contains(t, buf.String(), "n=2000")
}
