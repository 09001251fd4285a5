package loader

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/parcel-balance-map/internal/domain"
	"github.com/couchcryptid/parcel-balance-map/internal/observability"
	"github.com/couchcryptid/parcel-balance-map/internal/presentation"
)

// CSVSource returns the balance spreadsheet as CSV text.
type CSVSource interface {
	Name() string
	FetchCSV(ctx context.Context) (string, error)
}

// ShapeSource returns the parcel map SVG document.
type ShapeSource interface {
	FetchSVG(ctx context.Context) ([]byte, error)
}

// SnapshotPublisher receives every freshly built dataset.
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, ds *domain.Dataset) error
}

// Result describes one load. A nil error means that half of the state was
// replaced; otherwise the previously published state is unchanged.
type Result struct {
	Source      string
	Records     int
	Shapes      int
	ParseStats  domain.ParseStats
	DatasetErr  error
	ShapesErr   error
	SnapshotErr error
	Duration    time.Duration
}

// Err joins the fetch errors of the load, ignoring snapshot publishing.
func (r Result) Err() error {
	return errors.Join(r.DatasetErr, r.ShapesErr)
}

// Loader fetches the dataset and the map and publishes them to the app.
type Loader struct {
	csv       CSVSource
	shapes    ShapeSource
	publisher SnapshotPublisher
	app       *presentation.App
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
	mu        sync.Mutex
}

// New creates a Loader. publisher may be nil.
func New(csv CSVSource, shapes ShapeSource, publisher SnapshotPublisher, app *presentation.App, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		csv:       csv,
		shapes:    shapes,
		publisher: publisher,
		app:       app,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a dataset has been published,
// or an error describing why the service is not yet ready.
func (l *Loader) CheckReadiness(_ context.Context) error {
	if !l.ready.Load() {
		return errors.New("no dataset has been loaded yet")
	}
	return nil
}

// Load fetches the dataset and then the map. Concurrent calls are serialized.
func (l *Loader) Load(ctx context.Context) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	res := Result{Source: l.csv.Name()}

	l.loadDataset(ctx, &res)
	l.loadShapes(ctx, &res)
	l.updateUnmatched()

	res.Duration = time.Since(start)
	l.logger.Info("load finished",
		"source", res.Source,
		"records", res.Records,
		"shapes", res.Shapes,
		"duration", res.Duration,
		"ok", res.Err() == nil,
	)
	return res
}

func (l *Loader) loadDataset(ctx context.Context, res *Result) {
	text, err := timedFetch(l.metrics, res.Source, func() (string, error) {
		return l.csv.FetchCSV(ctx)
	})
	if err != nil {
		l.logger.Error("fetch dataset failed", "source", res.Source, "error", err)
		res.DatasetErr = err
		return
	}

	rows, stats := domain.ParseCSVWithStats(text)
	ds := domain.BuildDataset(rows)
	res.ParseStats = stats
	res.Records = ds.Len()

	dsStats := ds.Stats()
	l.metrics.LinesDropped.WithLabelValues("blank").Add(float64(stats.Blank))
	l.metrics.LinesDropped.WithLabelValues("malformed").Add(float64(stats.Malformed))
	l.metrics.LinesDropped.WithLabelValues("no_number").Add(float64(dsStats.NoNumber))
	if stats.Malformed > 0 || dsStats.NoNumber > 0 {
		l.logger.Warn("rows dropped",
			"malformed", stats.Malformed,
			"no_number", dsStats.NoNumber,
		)
	}

	l.app.PublishDataset(ds)
	l.ready.Store(true)
	l.metrics.DatasetLoaded.Set(1)
	l.metrics.DatasetRecords.Set(float64(ds.Len()))
	l.metrics.BalanceMin.Set(ds.MinBalance())
	l.metrics.BalanceMax.Set(ds.MaxBalance())

	l.logger.Info("dataset published",
		"records", ds.Len(),
		"collisions", dsStats.Collisions,
		"no_balance", dsStats.NoBalance,
		"min_balance", ds.MinBalance(),
		"max_balance", ds.MaxBalance(),
	)

	if l.publisher == nil {
		return
	}
	if err := l.publisher.PublishSnapshot(ctx, ds); err != nil {
		l.logger.Error("publish snapshot failed", "error", err)
		l.metrics.SnapshotErrors.Inc()
		res.SnapshotErr = err
		return
	}
	l.metrics.SnapshotMessages.Add(float64(ds.Len()))
}

func (l *Loader) loadShapes(ctx context.Context, res *Result) {
	svg, err := timedFetch(l.metrics, "shapes", func() ([]byte, error) {
		return l.shapes.FetchSVG(ctx)
	})
	if err == nil {
		var shapes *presentation.Shapes
		shapes, err = presentation.NewShapes(svg)
		if err == nil {
			l.app.PublishShapes(shapes)
			res.Shapes = shapes.Len()
			return
		}
	}
	l.logger.Error("load map failed", "error", err)
	res.ShapesErr = err
}

func (l *Loader) updateUnmatched() {
	rec, err := l.app.Reconcile()
	if err != nil {
		return
	}
	l.metrics.ShapesUnmatched.Set(float64(len(rec.ShapesWithoutRecord)))
	if len(rec.ShapesWithoutRecord) > 0 {
		l.logger.Debug("shapes without record", "places", rec.ShapesWithoutRecord)
	}
}

func timedFetch[T any](m *observability.Metrics, source string, fetch func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fetch()
	m.FetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.FetchRequests.WithLabelValues(source, outcome).Inc()
	return v, err
}
