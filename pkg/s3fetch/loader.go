package s3fetch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cecil-earth/cecil-go/internal/logctx"
	"github.com/cecil-earth/cecil-go/pkg/dataframe"
	"github.com/cecil-earth/cecil-go/pkg/logging"
)

// LoaderConfig controls how a batch of fragments is fetched.
type LoaderConfig struct {
	// Concurrency is the number of fragments fetched in parallel.
	Concurrency int

	// MaxAttempts is the total number of download attempts per fragment,
	// including the first.
	MaxAttempts int

	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration

	// BackoffMultiplier scales the delay after each failed attempt.
	BackoffMultiplier float64

	// Schema, when set, is enforced on every fragment. A fragment that
	// decodes to a different schema aborts the batch.
	Schema *dataframe.Schema
}

// DefaultLoaderConfig returns the settings used for zero-value config fields.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		Concurrency:       4,
		MaxAttempts:       5,
		InitialBackoff:    time.Second,
		BackoffMultiplier: 2.0,
	}
}

func (c LoaderConfig) withDefaults() LoaderConfig {
	def := DefaultLoaderConfig()
	if c.Concurrency <= 0 {
		c.Concurrency = def.Concurrency
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = def.InitialBackoff
	}
	if c.BackoffMultiplier <= 1 {
		c.BackoffMultiplier = def.BackoffMultiplier
	}
	return c
}

// Loader fetches batches of data fragments from an ObjectStore and
// concatenates them into a single frame.
type Loader struct {
	store ObjectStore
	cfg   LoaderConfig
}

// NewLoader creates a loader over the given store.
func NewLoader(store ObjectStore, cfg LoaderConfig) *Loader {
	return &Loader{store: store, cfg: cfg.withDefaults()}
}

// Load fetches every fragment in refs and concatenates them, in ref order,
// into one frame with a contiguous zero-based index. Fragments are fetched
// concurrently; the first unrecoverable failure aborts the whole batch.
// An empty refs slice yields an empty frame.
func (l *Loader) Load(ctx context.Context, refs []FileRef) (*dataframe.DataFrame, error) {
	if len(refs) == 0 {
		if l.cfg.Schema != nil {
			return dataframe.New(*l.cfg.Schema), nil
		}
		return dataframe.New(dataframe.Schema{}), nil
	}

	start := time.Now()
	tracker := logging.NewProgressTracker(int64(len(refs)))

	// One slot per fragment keeps batch order independent of completion order.
	frames := make([]*dataframe.DataFrame, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.Concurrency)

	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			fctx := logctx.WithInt(gctx, "fragment", i)
			fragStart := time.Now()

			data, attempts, err := l.fetchWithRetry(fctx, ref)
			if err != nil {
				return err
			}

			df, err := dataframe.ReadFragment(data, ref.Key, l.cfg.Schema)
			if err != nil {
				// Corrupt or mismatched content will not improve on a
				// second download.
				return &FetchError{
					Bucket:    ref.Bucket,
					Key:       ref.Key,
					Attempts:  attempts,
					Permanent: true,
					Err:       err,
				}
			}
			frames[i] = df

			elapsed := time.Since(fragStart)
			tracker.RecordFragment(int64(len(data)), elapsed)
			logging.FragmentComplete(logctx.FromContext(fctx), elapsed).
				Str("key", ref.Key).
				Int64("rows", int64(df.NumRows())).
				Bytes("size", int64(len(data))).
				Progress(tracker).
				LogDebug("fragment loaded")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}

	df, err := dataframe.Concat(frames...)
	if err != nil {
		return nil, fmt.Errorf("concatenate fragments: %w", err)
	}

	logging.BatchComplete(logctx.FromContext(ctx), time.Since(start)).
		Count("fragments", int64(len(refs))).
		Count("rows", int64(df.NumRows())).
		Bytes("size", tracker.Bytes()).
		Throughput(tracker.Bytes()).
		Log("batch loaded")

	return df, nil
}
