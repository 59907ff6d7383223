// Package report provides sinks for benchmark series produced by pqbench.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/andrewortman/pqbench"
)

// Reporter consumes an ordered benchmark series for one queue implementation.
type Reporter interface {
	Report(label string, results []pqbench.Result) error
}

// Multi fans a series out to every reporter. All reporters run; the joined
// errors are returned.
func Multi(reporters ...Reporter) Reporter {
	return multi(reporters)
}

type multi []Reporter

func (m multi) Report(label string, results []pqbench.Result) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(label, results); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogReporter writes one structured line per point.
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter returns a reporter logging to l. A nil logger discards output.
func NewLogReporter(l *zap.Logger) *LogReporter {
	if l == nil {
		l = zap.NewNop()
	}
	return &LogReporter{logger: l}
}

// Report logs one line per result.
func (r *LogReporter) Report(label string, results []pqbench.Result) error {
	for _, res := range results {
		r.logger.Info("benchmark result",
			zap.String("queue", label),
			zap.Int("size", res.Size),
			zap.Float64("insert_ms", res.InsertTimeMs),
			zap.Float64("extract_ms", res.ExtractTimeMs),
		)
	}
	return nil
}

// Phase label values of the duration gauge.
const (
	PhaseInsert  = "insert"
	PhaseExtract = "extract"
)

// MetricsReporter exports every point as a gauge labelled by queue, size and phase.
type MetricsReporter struct {
	durations *prometheus.GaugeVec
}

// NewMetricsReporter registers the duration gauge on reg.
func NewMetricsReporter(reg prometheus.Registerer) (*MetricsReporter, error) {
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pqbench",
		Name:      "phase_duration_ms",
		Help:      "Wall-clock duration of a benchmark phase in milliseconds.",
	}, []string{"queue", "size", "phase"})
	if err := reg.Register(g); err != nil {
		return nil, fmt.Errorf("register duration gauge: %w", err)
	}
	return &MetricsReporter{durations: g}, nil
}

// Report sets the insert and extract gauges for every result.
func (r *MetricsReporter) Report(label string, results []pqbench.Result) error {
	for _, res := range results {
		size := strconv.Itoa(res.Size)
		r.durations.WithLabelValues(label, size, PhaseInsert).Set(res.InsertTimeMs)
		r.durations.WithLabelValues(label, size, PhaseExtract).Set(res.ExtractTimeMs)
	}
	return nil
}

// TableReporter writes an aligned text table per series.
type TableReporter struct {
	w io.Writer
}

// NewTableReporter returns a reporter writing tables to w.
func NewTableReporter(w io.Writer) *TableReporter {
	return &TableReporter{w: w}
}

// Report writes the label, a header row and one row per result.
func (r *TableReporter) Report(label string, results []pqbench.Result) error {
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", label)
	fmt.Fprintf(tw, "Number of Elements\tInsert Time (ms)\tExtractMax Time (ms)\n")
	for _, res := range results {
		fmt.Fprintf(tw, "n=%d\t%.3f\t%.3f\n", res.Size, res.InsertTimeMs, res.ExtractTimeMs)
	}
	return tw.Flush()
}
