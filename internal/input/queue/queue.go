package queue

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is the minimum spacing between two throttled jobs.
const DefaultInterval = 30 * time.Millisecond

// Job is a unit of deferred work.
type Job func()

// Mode selects how submitted jobs are executed.
type Mode uint8

const (
	// Throttled runs jobs on the worker, spaced by Interval.
	Throttled Mode = iota
	// Sync runs jobs inline on the caller.
	Sync
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Throttled:
		return "throttled"
	case Sync:
		return "sync"
	default:
		return "unknown"
	}
}

// PanicHandler is called when a job panics.
type PanicHandler func(recovered any, stack []byte)

// Option configures a Queue.
type Option func(*Queue)

// WithMode sets the execution mode. The default is Throttled.
func WithMode(m Mode) Option {
	return func(q *Queue) {
		q.mode = m
	}
}

// WithInterval sets the spacing between throttled jobs.
func WithInterval(d time.Duration) Option {
	return func(q *Queue) {
		if d >= 0 {
			q.interval = d
		}
	}
}

// WithClock replaces time.Now for computing due times.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) {
		if now != nil {
			q.now = now
		}
	}
}

// WithLocker sets the lock the worker holds while running a job.
func WithLocker(l sync.Locker) Option {
	return func(q *Queue) {
		q.locker = l
	}
}

// WithPanicHandler sets the handler for panicking jobs.
func WithPanicHandler(h PanicHandler) Option {
	return func(q *Queue) {
		q.panicHandler = h
	}
}

type task struct {
	job Job
	due time.Time
}

// Queue is a FIFO of jobs drained by one worker.
type Queue struct {
	mode         Mode
	interval     time.Duration
	now          func() time.Time
	locker       sync.Locker
	panicHandler PanicHandler

	mu       sync.Mutex
	pending  []task
	next     time.Time
	inflight int
	idle     chan struct{}
	closed   bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}

	submitted atomic.Uint64
	executed  atomic.Uint64
	panicked  atomic.Uint64
}

// New creates a Queue and, in Throttled mode, starts its worker.
func New(opts ...Option) *Queue {
	q := &Queue{
		mode:     Throttled,
		interval: DefaultInterval,
		now:      time.Now,
		idle:     make(chan struct{}),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	close(q.idle)

	if q.mode == Throttled {
		go q.worker()
	} else {
		close(q.done)
	}
	return q
}

// Mode returns the execution mode.
func (q *Queue) Mode() Mode {
	return q.mode
}

// Interval returns the current job spacing.
func (q *Queue) Interval() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.interval
}

// SetInterval changes the spacing for jobs submitted from now on.
func (q *Queue) SetInterval(d time.Duration) {
	if d < 0 {
		return
	}
	q.mu.Lock()
	q.interval = d
	q.mu.Unlock()
}

// Submit enqueues job and returns the time it is due to run. In Sync mode
// the job has already run when Submit returns.
func (q *Queue) Submit(job Job) (time.Time, error) {
	if job == nil {
		return time.Time{}, ErrNilJob
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return time.Time{}, ErrClosed
	}
	now := q.now()
	q.submitted.Add(1)

	if q.mode == Sync {
		q.mu.Unlock()
		q.run(job)
		return now, nil
	}

	due := q.next
	if due.Before(now) {
		due = now
	}
	q.next = due.Add(q.interval)
	q.pending = append(q.pending, task{job: job, due: due})
	if q.inflight == 0 {
		q.idle = make(chan struct{})
	}
	q.inflight++
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return due, nil
}

// Pending returns the number of jobs not yet finished.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inflight
}

// Flush blocks until every job submitted so far has run or ctx is done.
func (q *Queue) Flush(ctx context.Context) error {
	q.mu.Lock()
	idle := q.idle
	q.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting jobs, runs the remaining ones without further
// delay, and waits for the worker to exit. Close is idempotent.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	close(q.stop)
	<-q.done
	return nil
}

// worker drains the queue in order, sleeping until each job is due.
func (q *Queue) worker() {
	defer close(q.done)

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	stopping := false

	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			if stopping {
				return
			}
			select {
			case <-q.wake:
			case <-q.stop:
				stopping = true
			}
			continue
		}
		t := q.pending[0]
		q.mu.Unlock()

		if wait := t.due.Sub(q.now()); wait > 0 && !stopping {
			timer.Reset(wait)
			select {
			case <-timer.C:
			case <-q.stop:
				stopping = true
				if !timer.Stop() {
					<-timer.C
				}
			}
		}

		q.mu.Lock()
		q.pending = q.pending[1:]
		q.mu.Unlock()

		q.exec(t.job)

		q.mu.Lock()
		q.inflight--
		if q.inflight == 0 {
			close(q.idle)
		}
		q.mu.Unlock()
	}
}

// exec runs a worker job under the configured lock.
func (q *Queue) exec(job Job) {
	if q.locker != nil {
		q.locker.Lock()
		defer q.locker.Unlock()
	}
	q.run(job)
}

// run executes job, recovering from panics.
func (q *Queue) run(job Job) {
	defer func() {
		if r := recover(); r != nil {
			q.panicked.Add(1)
			if q.panicHandler != nil {
				stack := debug.Stack()
				func() {
					defer func() { _ = recover() }()
					q.panicHandler(r, stack)
				}()
			}
		}
	}()
	job()
	q.executed.Add(1)
}

// Stats contains queue counters.
type Stats struct {
	// Submitted is the number of accepted jobs.
	Submitted uint64

	// Executed is the number of jobs that returned normally.
	Executed uint64

	// Panicked is the number of jobs that panicked.
	Panicked uint64

	// Pending is the number of jobs not yet finished.
	Pending int
}

// Stats returns a snapshot of the queue counters.
func (q *Queue) Stats() Stats {
	return Stats{
		Submitted: q.submitted.Load(),
		Executed:  q.executed.Load(),
		Panicked:  q.panicked.Load(),
		Pending:   q.Pending(),
	}
}
