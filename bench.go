package pqbench

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrInvalidConfig is a base error for invalid benchmark configurations.
	ErrInvalidConfig = errors.New("pqbench: invalid config")
	// ErrInvalidSize is returned when a benchmark size is negative.
	ErrInvalidSize = fmt.Errorf("%w: negative size", ErrInvalidConfig)
	// ErrInvalidRange is returned when the priority range is empty.
	ErrInvalidRange = fmt.Errorf("%w: min priority above max priority", ErrInvalidConfig)
)

// Default priority bounds, inclusive.
const (
	DefaultMinPriority = 1
	DefaultMaxPriority = 1000
)

// DefaultPayloadPrefix is prepended to the insertion index to build payloads.
const DefaultPayloadPrefix = "value"

var (
	// DefaultUnsortedSizes are the input sizes used for the unsorted queue.
	DefaultUnsortedSizes = []int{100, 2000, 10000}
	// DefaultHeapSizes are the input sizes used for the binary heap.
	DefaultHeapSizes = []int{1, 1000, 100000}
)

// PriorityRange bounds the random priorities, inclusive on both ends.
// Any range with Min <= Max is valid, including the full int range.
type PriorityRange struct {
	Min int
	Max int
}

// DefaultPriorityRange returns [DefaultMinPriority, DefaultMaxPriority].
func DefaultPriorityRange() PriorityRange {
	return PriorityRange{Min: DefaultMinPriority, Max: DefaultMaxPriority}
}

// Validate returns ErrInvalidRange if the range is empty.
func (r PriorityRange) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// draw returns a uniform value in [r.Min, r.Max]. The width is computed in
// uint64 so ranges wider than math.MaxInt do not overflow.
func (r PriorityRange) draw(rng *rand.Rand) int {
	width := uint64(r.Max) - uint64(r.Min)
	var off uint64
	if width == math.MaxUint64 {
		off = rng.Uint64()
	} else {
		off = rng.Uint64N(width + 1)
	}
	return int(uint64(r.Min) + off)
}

// Config describes a benchmark series.
type Config struct {
	Sizes []int

	// Priorities bounds the random priorities. Nil means DefaultPriorityRange.
	Priorities *PriorityRange

	// Seed for the priority generator used by RunSeries.
	Seed int64
}

// PriorityRange returns the configured range, or the default one.
func (c Config) PriorityRange() PriorityRange {
	if c.Priorities == nil {
		return DefaultPriorityRange()
	}
	return *c.Priorities
}

// Validate checks the priority range and sizes.
func (c Config) Validate() error {
	if err := c.PriorityRange().Validate(); err != nil {
		return err
	}
	for _, n := range c.Sizes {
		if n < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidSize, n)
		}
	}
	return nil
}

// Durations holds the wall-clock time of both phases of a run.
type Durations struct {
	Insert  time.Duration
	Extract time.Duration
}

// Result is one point of a benchmark series.
type Result struct {
	Size          int
	InsertTimeMs  float64
	ExtractTimeMs float64
}

// RunOption configures Run and RunSeries.
type RunOption func(*runOptions)

type runOptions struct {
	rng    *rand.Rand
	now    func() time.Time
	logger *zap.Logger
	prio   PriorityRange
	prefix string
}

// WithRand sets the priority generator.
func WithRand(r *rand.Rand) RunOption {
	return func(o *runOptions) { o.rng = r }
}

// WithClock replaces time.Now for measuring phases.
func WithClock(now func() time.Time) RunOption {
	return func(o *runOptions) { o.now = now }
}

// WithLogger sets the logger that receives one line per run.
func WithLogger(l *zap.Logger) RunOption {
	return func(o *runOptions) { o.logger = l }
}

// WithPriorityRange sets the inclusive priority bounds for Run.
// RunSeries takes its bounds from Config instead.
func WithPriorityRange(lo, hi int) RunOption {
	return func(o *runOptions) { o.prio = PriorityRange{Min: lo, Max: hi} }
}

// WithPayloadPrefix sets the payload tag, so payload i is prefix+i.
func WithPayloadPrefix(prefix string) RunOption {
	return func(o *runOptions) { o.prefix = prefix }
}

func buildRunOptions(opts []RunOption) runOptions {
	o := runOptions{
		now:    time.Now,
		logger: zap.NewNop(),
		prio:   DefaultPriorityRange(),
		prefix: DefaultPayloadPrefix,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return o
}

// Run builds a queue with factory, inserts n values with random priorities,
// then extracts n values, timing each phase.
// An error from ExtractMax aborts the run and is returned wrapped.
func Run[Q Queue[string, int]](factory func() Q, n int, opts ...RunOption) (Durations, error) {
	if n < 0 {
		return Durations{}, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	o := buildRunOptions(opts)
	if err := o.prio.Validate(); err != nil {
		return Durations{}, err
	}
	return run(factory, n, o)
}

func run[Q Queue[string, int]](factory func() Q, n int, o runOptions) (Durations, error) {
	q := factory()

	start := o.now()
	for i := 0; i < n; i++ {
		q.Insert(o.prefix+strconv.Itoa(i), o.prio.draw(o.rng))
	}
	insertDur := o.now().Sub(start)

	start = o.now()
	for i := 0; i < n; i++ {
		if _, err := q.ExtractMax(); err != nil {
			return Durations{}, fmt.Errorf("extract %d of %d: %w", i+1, n, err)
		}
	}
	extractDur := o.now().Sub(start)

	d := Durations{Insert: insertDur, Extract: extractDur}
	o.logger.Info("benchmark run",
		zap.Int("size", n),
		zap.Float64("insert_ms", millis(d.Insert)),
		zap.Float64("extract_ms", millis(d.Extract)),
	)
	return d, nil
}

// RunSeries runs one benchmark per size in cfg.Sizes, in order, and returns
// the results in the same order. The first failing run aborts the series.
func RunSeries[Q Queue[string, int]](factory func() Q, cfg Config, opts ...RunOption) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := buildRunOptions(append([]RunOption{
		WithRand(rand.New(rand.NewPCG(uint64(cfg.Seed), 0))),
	}, opts...))
	o.prio = cfg.PriorityRange()

	results := make([]Result, 0, len(cfg.Sizes))
	for _, n := range cfg.Sizes {
		d, err := run(factory, n, o)
		if err != nil {
			return nil, fmt.Errorf("size %d: %w", n, err)
		}
		results = append(results, Result{
			Size:          n,
			InsertTimeMs:  millis(d.Insert),
			ExtractTimeMs: millis(d.Extract),
		})
	}
	return results, nil
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
