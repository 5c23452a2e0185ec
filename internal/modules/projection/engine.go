package projection

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/karlseguin/ccache/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aristath/horizon/internal/modules/universe"
	"github.com/aristath/horizon/pkg/formulas"
)

// Defaults applied when Options leaves a field at zero.
const (
	DefaultMaxSimulations   = 10000
	DefaultMetricsCacheSize = 1000
	DefaultMetricsCacheTTL  = time.Hour
)

// Percentile levels reported for every year.
var percentileLevels = [5]float64{0.05, 0.25, 0.50, 0.75, 0.95}

// Recorder observes engine activity. The server backs it with Prometheus.
type Recorder interface {
	ObserveRun(paths, years int, elapsed time.Duration)
	ObserveRejected(field string)
	ObserveMetricsLookup(cached bool)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRun(int, int, time.Duration) {}
func (nopRecorder) ObserveRejected(string)             {}
func (nopRecorder) ObserveMetricsLookup(bool)          {}

// Options configures an Engine.
type Options struct {
	Workers          int // path workers per run, defaults to GOMAXPROCS
	MaxSimulations   int
	MetricsCacheSize int64
	MetricsCacheTTL  time.Duration
	Recorder         Recorder
}

// Engine runs projections against one universe. It is safe for concurrent use:
// the Model is read-only and every run builds its own per-worker generators.
type Engine struct {
	model          *Model
	workers        int
	maxSimulations int
	validate       *validator.Validate
	metricsCache   *ccache.Cache
	metricsTTL     time.Duration
	recorder       Recorder
	log            zerolog.Logger
}

// NewEngine builds an engine. The covariance matrix and its Cholesky factor are
// computed here, once, and reused by every run.
func NewEngine(u *universe.Universe, opts Options, log zerolog.Logger) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.MaxSimulations <= 0 {
		opts.MaxSimulations = DefaultMaxSimulations
	}
	if opts.MetricsCacheSize <= 0 {
		opts.MetricsCacheSize = DefaultMetricsCacheSize
	}
	if opts.MetricsCacheTTL <= 0 {
		opts.MetricsCacheTTL = DefaultMetricsCacheTTL
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}

	return &Engine{
		model:          NewModel(u),
		workers:        opts.Workers,
		maxSimulations: opts.MaxSimulations,
		validate:       newValidator(),
		metricsCache:   ccache.New(ccache.Configure().MaxSize(opts.MetricsCacheSize)),
		metricsTTL:     opts.MetricsCacheTTL,
		recorder:       opts.Recorder,
		log:            log.With().Str("component", "projection_engine").Logger(),
	}
}

// Universe returns the universe the engine simulates.
func (e *Engine) Universe() *universe.Universe {
	return e.model.Universe()
}

// MaxSimulations is the largest simulation count Run accepts.
func (e *Engine) MaxSimulations() int {
	return e.maxSimulations
}

// Validate checks parameters without running anything.
func (e *Engine) Validate(params Parameters) error {
	_, err := validateParameters(e.validate, params, e.maxSimulations)
	return err
}

// Run simulates params.Simulations independent paths and summarises them per year.
func (e *Engine) Run(ctx context.Context, params Parameters) (*Projection, error) {
	weights, err := validateParameters(e.validate, params, e.maxSimulations)
	if err != nil {
		e.reject(err)
		return nil, err
	}

	runID := uuid.New().String()
	seed := rand.Uint64()
	if params.Seed != nil {
		seed = *params.Seed
	}
	workers := e.workers
	if workers > params.Simulations {
		workers = params.Simulations
	}

	log := e.log.With().Str("run_id", runID).Logger()
	log.Debug().
		Int("paths", params.Simulations).
		Int("years", params.Years).
		Int("workers", workers).
		Int("active_assets", len(weights.Active())).
		Msg("Starting projection")

	start := time.Now()

	// byYear[k][i] is the value of path i after k years.
	byYear := make([][]float64, params.Years+1)
	for k := range byYear {
		byYear[k] = make([]float64, params.Simulations)
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		first := w
		g.Go(func() error {
			pcg := rand.NewPCG(seed, 0)
			sim := e.model.NewPathSimulator(rand.New(pcg))
			path := make([]float64, params.Years+1)

			for i := first; i < params.Simulations; i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				pcg.Seed(seed, uint64(i))
				sim.simulateInto(path, weights, params.InitialInvestment, params.MonthlyContribution)
				for k, v := range path {
					byYear[k][i] = v
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("projection %s interrupted: %w", runID, err)
	}

	years := summarize(byYear, params.InitialInvestment, params.MonthlyContribution)
	elapsed := time.Since(start)
	e.recorder.ObserveRun(params.Simulations, params.Years, elapsed)

	projection := &Projection{
		RunID:      runID,
		Parameters: params,
		Years:      years,
		Duration:   elapsed,
	}

	final := projection.Final()
	log.Info().
		Int("paths", params.Simulations).
		Int("years", params.Years).
		Dur("elapsed", elapsed).
		Float64("final_p50", final.Percentile50).
		Float64("final_mean", final.Mean).
		Msg("Projection complete")

	return projection, nil
}

// summarize sorts each year's values in place and reduces them to percentiles
// and the mean. It only runs once every path has finished, so the result does
// not depend on the order in which paths completed.
func summarize(byYear [][]float64, initial, contribution float64) []YearSummary {
	out := make([]YearSummary, len(byYear))
	for k, values := range byYear {
		sort.Float64s(values)

		var p [len(percentileLevels)]float64
		for j, level := range percentileLevels {
			p[j] = formulas.NearestRankPercentile(values, level)
		}

		out[k] = YearSummary{
			Year:         k,
			Percentile5:  p[0],
			Percentile25: p[1],
			Percentile50: p[2],
			Percentile75: p[3],
			Percentile95: p[4],
			Mean:         formulas.Mean(values),
			Contributed:  initial + contribution*float64(k*MonthsPerYear),
		}
	}
	return out
}

// Metrics returns the closed-form metrics of an allocation, cached by its
// normalized weights.
func (e *Engine) Metrics(alloc Allocation) (PortfolioMetrics, error) {
	w, err := alloc.Normalize()
	if err != nil {
		e.reject(err)
		return PortfolioMetrics{}, err
	}

	key := w.key()
	if item := e.metricsCache.Get(key); item != nil && !item.Expired() {
		e.recorder.ObserveMetricsLookup(true)
		return item.Value().(PortfolioMetrics).clone(), nil
	}

	e.recorder.ObserveMetricsLookup(false)
	metrics := metricsFor(e.model.Universe(), w)
	e.metricsCache.Set(key, metrics, e.metricsTTL)
	return metrics.clone(), nil
}

// Close stops the metrics cache's background worker.
func (e *Engine) Close() {
	e.metricsCache.Stop()
}

func (e *Engine) reject(err error) {
	field := "unknown"
	var ve *ValidationError
	if errors.As(err, &ve) {
		field = ve.Field
	}
	e.recorder.ObserveRejected(field)
	e.log.Debug().Err(err).Str("field", field).Msg("Rejected projection request")
}
