// Package job owns the lifecycle of the single vanity search job: the state
// machine, the messages from the search loop, and the status snapshot read
// by the HTTP API and the CLI.
package job

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Amr-9/btcvanity/internal/metrics"
	"github.com/Amr-9/btcvanity/pkg/generator"
	"github.com/Amr-9/btcvanity/pkg/generator/cpu"
)

// Searcher starts a search loop. The returned channel carries the loop's
// messages and is closed when the loop exits.
type Searcher interface {
	Start(ctx context.Context, cfg generator.SearchConfig) <-chan cpu.Message
}

// Match is the key material of a found address.
type Match struct {
	Address       string
	PrivateKeyWIF string
	PrivateKeyHex string
	PublicKeyHex  string
	Duration      time.Duration
}

// Snapshot is an immutable point-in-time view of the controller's job.
type Snapshot struct {
	JobID         string
	Status        Status
	Attempts      uint64
	RatePerSecond uint64
	Elapsed       time.Duration
	StartedAt     time.Time
	LastUpdatedAt time.Time
	Config        *Request
	Match         *Match
	Error         string
}

// job is the controller-owned record of one search. All fields except the
// channels are guarded by Controller.mu.
type job struct {
	id      string
	request Request
	cfg     generator.SearchConfig

	status        Status
	attempts      uint64
	startedAt     time.Time
	lastUpdatedAt time.Time
	finishedAt    time.Time
	match         *Match
	errMsg        string
	stopRequested bool

	cancel context.CancelFunc
	done   chan struct{} // closed on the terminal transition
	exited chan struct{} // closed after the loop's channel is drained
}

// Controller runs at most one search job at a time.
type Controller struct {
	searcher Searcher
	logger   *zap.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	mu  sync.Mutex
	job *job
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the collectors updated on progress and transitions.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithClock replaces time.Now for timestamps and rate computation.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController creates an idle controller driving searcher.
func NewController(searcher Searcher, opts ...Option) *Controller {
	c := &Controller{
		searcher: searcher,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start validates req and launches a new search job, discarding any
// finished previous job. It returns ErrAlreadyRunning while a job is
// running or stopping, and a *ValidationError for bad input.
func (c *Controller) Start(req Request) (string, error) {
	for {
		c.mu.Lock()
		prev := c.job
		if prev != nil && prev.status.Active() {
			c.mu.Unlock()
			return "", ErrAlreadyRunning
		}

		cfg, err := ParseRequest(req)
		if err != nil {
			c.mu.Unlock()
			return "", err
		}

		// A terminal job's loop may still be returning; wait for it so that
		// two loops never coexist.
		if prev != nil && !closed(prev.exited) {
			c.mu.Unlock()
			<-prev.exited
			continue
		}

		id := c.launch(req.Normalize(), cfg)
		c.mu.Unlock()
		return id, nil
	}
}

// launch creates and starts a job. Caller holds c.mu.
func (c *Controller) launch(req Request, cfg generator.SearchConfig) string {
	ctx, cancel := context.WithCancel(context.Background())
	now := c.now()

	j := &job{
		id:            uuid.NewString(),
		request:       req,
		cfg:           cfg,
		status:        StatusRunning,
		startedAt:     now,
		lastUpdatedAt: now,
		cancel:        cancel,
		done:          make(chan struct{}),
		exited:        make(chan struct{}),
	}
	c.job = j

	msgs := c.searcher.Start(ctx, cfg)
	go c.dispatch(j, msgs)

	c.metrics.JobStarted()
	c.logger.Info("search job started",
		zap.String("job_id", j.id),
		zap.String("suffix", cfg.Suffix),
		zap.Stringer("address_type", cfg.Variant),
		zap.Stringer("network", cfg.Network),
	)
	return j.id
}

// Stop asks the running job's loop to stop and returns immediately. The loop
// observes the request at its next batch boundary.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	j := c.job
	if j == nil || j.status != StatusRunning {
		return ErrNotRunning
	}

	j.status = StatusStopping
	j.stopRequested = true
	j.cancel()

	c.logger.Info("search job stopping", zap.String("job_id", j.id), zap.Uint64("attempts", j.attempts))
	return nil
}

// Status returns a snapshot of the current job.
func (c *Controller) Status() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	j := c.job
	if j == nil {
		return Snapshot{Status: StatusIdle}
	}

	end := c.now()
	if j.status.Terminal() {
		end = j.finishedAt
	}

	req := j.request
	snap := Snapshot{
		JobID:         j.id,
		Status:        j.status,
		Attempts:      j.attempts,
		RatePerSecond: generator.Rate(j.attempts, j.startedAt, end),
		Elapsed:       end.Sub(j.startedAt),
		StartedAt:     j.startedAt,
		LastUpdatedAt: j.lastUpdatedAt,
		Config:        &req,
		Error:         j.errMsg,
	}
	if j.match != nil {
		m := *j.match
		snap.Match = &m
	}
	return snap
}

// Wait blocks until the current job reaches a terminal state or ctx ends.
// It returns immediately when no job was ever started.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	j := c.job
	c.mu.Unlock()

	if j == nil {
		return nil
	}

	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops a running job and waits for its loop to exit.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	j := c.job
	if j != nil && j.status == StatusRunning {
		j.status = StatusStopping
		j.stopRequested = true
		j.cancel()
	}
	c.mu.Unlock()

	if j == nil {
		return nil
	}

	select {
	case <-j.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dispatch applies the loop's messages to j in order, then maps the loop's
// exit. It is the only writer of progress and terminal state for j.
func (c *Controller) dispatch(j *job, msgs <-chan cpu.Message) {
	for msg := range msgs {
		c.handle(j, msg)
	}
	c.handleExit(j)
	close(j.exited)
}

func (c *Controller) handle(j *job, msg cpu.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.job != j || j.status.Terminal() {
		return
	}

	c.recordAttempts(j, msg.Attempts)

	switch msg.Kind {
	case cpu.MessageProgress:
	case cpu.MessageFound:
		if msg.Result == nil {
			c.finish(j, StatusErrored, "search loop reported a match without a result")
			return
		}
		j.match = &Match{
			Address:       msg.Result.Address,
			PrivateKeyWIF: msg.Result.PrivateKeyWIF,
			PrivateKeyHex: msg.Result.PrivateKeyHex,
			PublicKeyHex:  msg.Result.PublicKeyHex,
			Duration:      msg.Result.Duration,
		}
		c.finish(j, StatusFound, "")
	case cpu.MessageErrored:
		reason := "search loop failed"
		if msg.Err != nil {
			reason = msg.Err.Error()
		}
		c.finish(j, StatusErrored, reason)
	default:
		c.logger.Warn("unknown search message", zap.String("job_id", j.id), zap.Stringer("kind", msg.Kind))
	}
}

func (c *Controller) handleExit(j *job) {
	c.mu.Lock()
	defer c.mu.Unlock()

	j.cancel()
	if j.status.Terminal() {
		return
	}

	if j.stopRequested {
		c.finish(j, StatusStopped, "")
		return
	}
	c.finish(j, StatusErrored, errUnexpectedExit.Error())
}

// recordAttempts keeps the counter monotonic; a message carrying fewer
// attempts than already seen (a recovered panic reports zero) is ignored.
// Caller holds c.mu.
func (c *Controller) recordAttempts(j *job, attempts uint64) {
	j.lastUpdatedAt = c.now()
	if attempts <= j.attempts {
		return
	}
	c.metrics.AddAttempts(attempts - j.attempts)
	j.attempts = attempts
}

// finish records the terminal transition exactly once. Caller holds c.mu.
func (c *Controller) finish(j *job, status Status, reason string) {
	j.status = status
	j.errMsg = reason
	j.finishedAt = c.now()
	j.cancel()

	elapsed := j.finishedAt.Sub(j.startedAt)
	c.metrics.JobFinished(status.String(), elapsed)

	fields := []zap.Field{
		zap.String("job_id", j.id),
		zap.Stringer("status", status),
		zap.Uint64("attempts", j.attempts),
		zap.Duration("elapsed", elapsed),
	}
	switch status {
	case StatusFound:
		c.logger.Info("search job found match", append(fields, zap.String("address", j.match.Address))...)
	case StatusErrored:
		c.logger.Error("search job failed", append(fields, zap.String("error", reason))...)
	default:
		c.logger.Info("search job stopped", fields...)
	}
	close(j.done)
}

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
