package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// Syncer re-fetches the inbox from the server.
type Syncer interface {
	SyncInbox(ctx context.Context) error
}

// Scheduler keeps the rendered inbox in step with the server by syncing on a
// fixed interval and whenever a refresh is requested.
type Scheduler struct {
	syncer   Syncer
	interval time.Duration
	logger   *log.Logger
	refresh  chan struct{}

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	lastRun  time.Time
	lastErr  error
	failures int
}

// Status describes the outcome of the most recent sync.
type Status struct {
	Running  bool       `json:"running"`
	Interval string     `json:"interval"`
	LastRun  *time.Time `json:"last_run,omitempty"`
	LastErr  string     `json:"last_error,omitempty"`
	Failures int        `json:"consecutive_failures"`
}

// ErrAlreadyRunning is returned when Start is called on a running loop.
var ErrAlreadyRunning = errors.New("inbox refresh already running")

// ErrNotRunning is returned when Stop or Refresh is called on an idle loop.
var ErrNotRunning = errors.New("inbox refresh not running")

// New builds a scheduler.
func New(syncer Syncer, interval time.Duration, logger *log.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = log.New(log.Writer(), "scheduler ", log.LstdFlags)
	}
	return &Scheduler{
		syncer:   syncer,
		interval: interval,
		logger:   logger,
		refresh:  make(chan struct{}, 1),
	}
}

// Start syncs once and then keeps syncing until Stop or ctx ends.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	if ctx == nil {
		ctx = context.Background()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	go s.run(loopCtx)
	s.logger.Printf("inbox refresh started (every %s)", s.interval)

	return nil
}

// Stop cancels the loop.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ErrNotRunning
	}

	s.cancel()
	s.running = false
	s.logger.Println("inbox refresh stopped")
	return nil
}

// Refresh asks the running loop to sync now. Requests made while one is
// already pending are merged.
func (s *Scheduler) Refresh() error {
	if !s.IsRunning() {
		return ErrNotRunning
	}
	select {
	case s.refresh <- struct{}{}:
	default:
	}
	return nil
}

// IsRunning reports the scheduler state.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Status returns the loop state and the result of the last sync.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Running:  s.running,
		Interval: s.interval.String(),
		Failures: s.failures,
	}
	if !s.lastRun.IsZero() {
		ts := s.lastRun
		st.LastRun = &ts
	}
	if s.lastErr != nil {
		st.LastErr = s.lastErr.Error()
	}
	return st
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.execute(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.execute(ctx)
		case <-s.refresh:
			s.execute(ctx)
			ticker.Reset(s.interval)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context) {
	err := s.syncer.SyncInbox(ctx)
	if errors.Is(err, context.Canceled) {
		return
	}

	s.mu.Lock()
	s.lastRun = time.Now().UTC()
	s.lastErr = err
	if err != nil {
		s.failures++
	} else {
		s.failures = 0
	}
	failures := s.failures
	s.mu.Unlock()

	if err != nil {
		s.logger.Printf("inbox sync failed (%d in a row): %v", failures, err)
	}
}
