package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"market_dashboard/internal/marketdata"
	"market_dashboard/internal/models"
)

// Fetcher retrieves one dashboard document, optionally filtered by job name.
type Fetcher interface {
	FetchDashboard(ctx context.Context, jobName string) (*models.DashboardData, error)
}

// Recorder receives one observation per completed load.
type Recorder interface {
	ObserveFetch(outcome string, duration time.Duration)
}

var _ Fetcher = (*marketdata.Client)(nil)

type noopRecorder struct{}

func (noopRecorder) ObserveFetch(string, time.Duration) {}

const outcomeSuperseded = "superseded"

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout bounds every load; zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.timeout = d
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithLogger sets the logger used for load outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller owns the dashboard data and its loading/error state.
// Only the most recently issued load may change the state.
type Controller struct {
	fetcher  Fetcher
	timeout  time.Duration
	recorder Recorder
	log      *slog.Logger

	mu      sync.Mutex
	state   State
	seq     uint64
	cancel  context.CancelFunc
	baseCtx context.Context

	inflight sync.WaitGroup
}

// NewController creates an idle controller. Call Start to issue the initial load.
func NewController(fetcher Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher:  fetcher,
		timeout:  15 * time.Second,
		recorder: noopRecorder{},
		log:      slog.Default(),
		baseCtx:  context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start binds ctx as the parent of asynchronous loads and issues the
// initial unfiltered load without blocking.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.baseCtx = ctx
	c.mu.Unlock()
	c.LoadAsync("")
}

// Load fetches the dashboard for filter and binds filter for later refetches.
// It blocks until the fetch completes and returns the resulting state, which
// may belong to a newer load if this one was superseded.
func (c *Controller) Load(ctx context.Context, filter string) State {
	filter = strings.TrimSpace(filter)
	loadCtx, cancel, seq := c.begin(ctx, filter)
	defer cancel()

	start := time.Now()
	data, err := c.fetch(loadCtx, filter)
	elapsed := time.Since(start)

	c.mu.Lock()
	if seq != c.seq {
		state := c.state
		c.mu.Unlock()
		c.recorder.ObserveFetch(outcomeSuperseded, elapsed)
		c.log.Debug("discarding superseded dashboard load", "seq", seq, "latest", state.Seq)
		return state
	}
	c.cancel = nil
	if err != nil {
		c.state = c.state.fail(marketdata.Message(err))
	} else {
		c.state = c.state.succeed(data)
	}
	state := c.state
	c.mu.Unlock()

	outcome := marketdata.Kind(err)
	c.recorder.ObserveFetch(outcome, elapsed)
	if err != nil {
		c.log.Warn("dashboard load failed", "seq", seq, "job_name", filter, "error", err)
	} else {
		c.log.Info("dashboard fetch completed",
			"seq", seq,
			"job_name", filter,
			"outcome", outcome,
			"duration_ms", elapsed.Milliseconds(),
		)
	}
	return state
}

// Refetch reloads with the last bound filter.
func (c *Controller) Refetch(ctx context.Context) State {
	return c.Load(ctx, c.State().Filter)
}

// RefetchWithFilter reloads with filter, replacing the bound one.
func (c *Controller) RefetchWithFilter(ctx context.Context, filter string) State {
	return c.Load(ctx, filter)
}

// LoadAsync runs Load on its own goroutine under the Start context.
func (c *Controller) LoadAsync(filter string) {
	c.mu.Lock()
	ctx := c.baseCtx
	c.mu.Unlock()

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		c.Load(ctx, filter)
	}()
}

// RefetchAsync runs Refetch on its own goroutine under the Start context.
func (c *Controller) RefetchAsync() {
	c.LoadAsync(c.State().Filter)
}

// Wait blocks until every asynchronous load has returned.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// begin moves to Loading under a new sequence number and cancels the load
// it supersedes.
func (c *Controller) begin(ctx context.Context, filter string) (context.Context, context.CancelFunc, uint64) {
	var (
		loadCtx context.Context
		cancel  context.CancelFunc
	)
	if c.timeout > 0 {
		loadCtx, cancel = context.WithTimeout(ctx, c.timeout)
	} else {
		loadCtx, cancel = context.WithCancel(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	c.cancel = cancel
	c.state = c.state.begin(c.seq, filter)
	return loadCtx, cancel, c.seq
}

func (c *Controller) fetch(ctx context.Context, filter string) (data *models.DashboardData, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("dashboard fetch panicked: %v", r)
		}
	}()
	data, err = c.fetcher.FetchDashboard(ctx, filter)
	if err == nil && data == nil {
		err = &marketdata.ParseError{Err: errors.New("empty document")}
	}
	return data, err
}
