/*
Package worker runs batches of tasks on a bounded set of goroutines with
optional rate limiting, reporting each completion as it happens. The CLI
uses it to simulate work whose progress feeds a determinate indicator.

Basic usage:

	pool, err := worker.NewPool(worker.Config{
		Workers:   4,
		RateLimit: 10, // 10 tasks/sec
	})

	stats, err := pool.Run(ctx, tasks, func(done, total int, err error) {
		ind.SetProgressAmount(float64(done) * 100 / float64(total))
	})
*/
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Task is a unit of work
type Task struct {
	// ID identifies the task in errors
	ID int

	// Execute performs the work; it should return promptly once ctx is done
	Execute func(context.Context) error
}

// Config holds the configuration for the worker pool
type Config struct {
	// Workers is the number of concurrent workers
	Workers int

	// RateLimit is the maximum number of task starts per second (0 for unlimited)
	RateLimit int
}

// Stats summarises a Run
type Stats struct {
	Completed int
	Failed    int
	Duration  time.Duration
}

// ProgressFunc is called after every task, from the worker that ran it.
// done counts finished tasks whether they failed or not. Calls are
// serialised and done strictly increases, so the last call always reports
// done == total for a run that was not cancelled.
type ProgressFunc func(done, total int, err error)

// Pool runs task batches
type Pool struct {
	config  Config
	limiter *rate.Limiter
	active  atomic.Int32
}

// NewPool creates a new worker pool with the given configuration
func NewPool(config Config) (*Pool, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	p := &Pool{config: config}
	if config.RateLimit > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}
	return p, nil
}

func validateConfig(config Config) error {
	if config.Workers <= 0 {
		return fmt.Errorf("number of workers must be positive")
	}
	if config.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}
	return nil
}

// Active returns the number of tasks currently executing
func (p *Pool) Active() int {
	return int(p.active.Load())
}

// Run executes tasks and blocks until all have finished or ctx is done.
// Task failures are counted and joined into the returned error; they do
// not stop the remaining tasks.
func (p *Pool) Run(ctx context.Context, tasks []Task, progress ProgressFunc) (Stats, error) {
	start := time.Now()
	total := len(tasks)

	queue := make(chan Task)
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		done      int
		completed int
		errs      []error
	)

	finish := func(err error) {
		mu.Lock()
		defer mu.Unlock()

		done++
		if err != nil {
			errs = append(errs, err)
		} else {
			completed++
		}

		// reported under mu so done never goes backwards for the callback
		if progress != nil {
			progress(done, total, err)
		}
	}

	for i := 0; i < p.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				if p.limiter != nil {
					if err := p.limiter.Wait(ctx); err != nil {
						finish(fmt.Errorf("task %d: rate limiter: %w", task.ID, err))
						continue
					}
				}

				p.active.Add(1)
				err := task.Execute(ctx)
				p.active.Add(-1)

				if err != nil {
					err = fmt.Errorf("task %d failed: %w", task.ID, err)
				}
				finish(err)
			}
		}()
	}

	var cancelled error
feed:
	for _, task := range tasks {
		if ctx.Err() != nil {
			cancelled = fmt.Errorf("pool is shutting down: %w", ctx.Err())
			break
		}
		select {
		case <-ctx.Done():
			cancelled = fmt.Errorf("pool is shutting down: %w", ctx.Err())
			break feed
		case queue <- task:
		}
	}
	close(queue)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()

	stats := Stats{
		Completed: completed,
		Failed:    len(errs),
		Duration:  time.Since(start),
	}
	if cancelled != nil {
		errs = append(errs, cancelled)
	}
	return stats, errors.Join(errs...)
}
