package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/podx/internal/models"
	"golang.org/x/time/rate"
)

// StreamLister fetches the live stream list, optionally filtered by status.
// Implemented by services.LiveService.
type StreamLister interface {
	Streams(ctx context.Context, status string) ([]models.LiveStream, error)
}

// StreamUpdate is the result of one poll cycle.
type StreamUpdate struct {
	Generation uint64
	Streams    []models.LiveStream
	Err        error
}

// Poller refreshes the live stream list on an interval.
//
// Every fetch carries a monotonically increasing generation. A result is only
// delivered when its generation is newer than the last delivered one, so a
// slow response can never overwrite a fresher list. Fetch rate is capped by a
// limiter independent of the tick interval.
type Poller struct {
	lister   StreamLister
	limiter  *rate.Limiter
	logger   *log.Logger
	interval time.Duration
	status   string

	mu         sync.Mutex
	generation uint64
	applied    uint64
	closed     bool
}

// PollerOpts configures a Poller. Zero values fall back to defaults:
// 15s interval, one request per second burst 1, no status filter.
type PollerOpts struct {
	Lister   StreamLister
	Logger   *log.Logger
	Interval time.Duration
	Status   string
	Limit    rate.Limit
}

// NewPoller creates a poller for the given stream lister.
func NewPoller(opts PollerOpts) *Poller {
	interval := opts.Interval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = rate.Every(time.Second)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Poller{
		lister:   opts.Lister,
		limiter:  rate.NewLimiter(limit, 1),
		logger:   logger,
		interval: interval,
		status:   opts.Status,
	}
}

// Run polls until ctx is cancelled, delivering results on updates. An
// immediate poll happens before the first tick. Sends never block: when the
// consumer is not keeping up the update is dropped and the next poll carries
// the fresh list anyway. The channel is closed when Run returns so receivers
// blocked on it unwind; late [Poller.Poll] results are discarded after that.
func (p *Poller) Run(ctx context.Context, updates chan<- StreamUpdate) {
	defer p.close(updates)

	p.poll(ctx, updates)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx, updates)
		}
	}
}

// Invalidate bumps the generation so any in-flight fetch started earlier is
// discarded on arrival. Call after a mutation (join, leave, start, stop) that
// makes the last fetched list stale.
func (p *Poller) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.applied = p.generation
}

// Poll performs a single fetch and delivers the result, subject to the same
// generation rule as Run.
func (p *Poller) Poll(ctx context.Context, updates chan<- StreamUpdate) {
	p.poll(ctx, updates)
}

func (p *Poller) poll(ctx context.Context, updates chan<- StreamUpdate) {
	if err := p.limiter.Wait(ctx); err != nil {
		return
	}

	gen := p.nextGeneration()
	streams, err := p.lister.Streams(ctx, p.status)
	if err != nil {
		p.logger.Warn("stream poll failed", "generation", gen, "error", err)
	}

	p.deliver(StreamUpdate{Generation: gen, Streams: streams, Err: err}, updates)
}

func (p *Poller) nextGeneration() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	return p.generation
}

// deliver applies the generation rule and sends without blocking. Returns
// whether the update was accepted as the newest. The send happens under the
// mutex so it cannot race the close in [Poller.Run].
func (p *Poller) deliver(update StreamUpdate, updates chan<- StreamUpdate) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false
	}
	if update.Generation <= p.applied {
		p.logger.Debug("discarding stale stream update",
			"generation", update.Generation, "applied", p.applied)
		return false
	}
	p.applied = update.Generation

	if updates == nil {
		return true
	}
	select {
	case updates <- update:
	default:
		// Consumer not keeping up; the next poll carries fresher data.
	}
	return true
}

func (p *Poller) close(updates chan<- StreamUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if updates != nil {
		close(updates)
	}
}
