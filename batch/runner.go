package batch

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/debatelab/speakerkit/artifact"
	"github.com/debatelab/speakerkit/errors"
	"github.com/debatelab/speakerkit/logger"
	"github.com/debatelab/speakerkit/stats"
	"github.com/debatelab/speakerkit/storage"
	"github.com/debatelab/speakerkit/transcript"
)

// DefaultWorkers is the worker pool size when the config leaves it unset.
const DefaultWorkers = 4

// Config holds batch runner configuration.
type Config struct {
	// Workers bounds how many payloads are processed concurrently.
	Workers int `mapstructure:"workers" json:"workers"`

	// Storage is the backend configuration shared by all locations.
	Storage storage.Config `mapstructure:"storage" json:"storage"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	c.Storage.ApplyDefaults()
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return c.Storage.Validate()
}

// Failure records one entry that could not be processed.
type Failure struct {
	Location storage.Location
	Err      error
}

// Summary is the outcome of one batch run.
type Summary struct {
	Processed int
	Failed    int
	Failures  []Failure
}

// Runner processes transcript payloads into stats artifacts.
type Runner struct {
	cfg     Config
	log     *logger.Logger
	metrics *metrics

	// openStorage is swappable in tests.
	openStorage func(ctx context.Context, loc storage.Location, cfg storage.Config, log *logger.Logger) (storage.Storage, error)

	mu     sync.Mutex
	writes map[string]*sync.Mutex
}

// NewRunner creates a batch runner.
func NewRunner(cfg Config, log *logger.Logger) (*Runner, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m, err := newMetrics()
	if err != nil {
		return nil, errors.Internal(err)
	}
	return &Runner{
		cfg:         cfg,
		log:         log.WithComponent("batch"),
		metrics:     m,
		openStorage: storage.Open,
		writes:      make(map[string]*sync.Mutex),
	}, nil
}

// Run processes every location with a bounded worker pool. Entry failures
// are recorded in the summary, never returned: one bad payload must not
// sink the batch. Run itself errors only on empty input or a canceled
// context.
func (r *Runner) Run(ctx context.Context, locations []storage.Location) (*Summary, error) {
	if len(locations) == 0 {
		return nil, errors.InvalidInput("locations", "no payload locations given")
	}

	r.log.Info("starting batch run", map[string]interface{}{
		"entries": len(locations),
		"workers": r.cfg.Workers,
	})

	summary := &Summary{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, loc := range locations {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			started := time.Now()
			err := r.processEntry(ctx, loc)
			elapsed := time.Since(started).Seconds()

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				summary.Failures = append(summary.Failures, Failure{Location: loc, Err: err})
				r.metrics.recordFailure(ctx, loc.Scheme, string(errors.CodeOf(err)), elapsed)
				r.log.WithError(err).Error("entry failed", map[string]interface{}{
					logger.FieldLocation: loc.String(),
				})
				return nil
			}
			summary.Processed++
			r.metrics.recordSuccess(ctx, loc.Scheme, elapsed)
			r.log.Info("entry processed", map[string]interface{}{
				logger.FieldLocation: loc.String(),
				logger.FieldDuration: elapsed,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, errors.Internal(err)
	}

	r.log.Info("batch run complete", map[string]interface{}{
		"processed": summary.Processed,
		"failed":    summary.Failed,
	})
	return summary, nil
}

// processEntry runs the full pipeline for one payload: fetch, parse,
// aggregate, write the colocated stats artifact.
func (r *Runner) processEntry(ctx context.Context, loc storage.Location) error {
	backend, err := r.openStorage(ctx, loc, r.cfg.Storage, r.log)
	if err != nil {
		return err
	}

	body, err := backend.Download(ctx, loc.Key)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(body)
	body.Close()
	if err != nil {
		return errors.FetchFailed(loc.String(), err)
	}

	payload, err := transcript.ParsePayload(data)
	if err != nil {
		return err
	}

	byLabel := stats.AggregateTranscript(payload.Segments())
	encoded, err := artifact.Encode(byLabel)
	if err != nil {
		return err
	}

	target := artifact.LocationFor(loc)

	// Two entries can resolve to the same artifact; serialize those writes.
	lock := r.writeLock(target.String())
	lock.Lock()
	defer lock.Unlock()
	return backend.Upload(ctx, target.Key, bytes.NewReader(encoded))
}

func (r *Runner) writeLock(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.writes[key]
	if !ok {
		lock = &sync.Mutex{}
		r.writes[key] = lock
	}
	return lock
}
