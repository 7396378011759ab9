package concurrency

import (
	"context"
	"sync"
)

// WorkerPool runs jobs on a fixed number of goroutines.
type WorkerPool struct {
	workers int
	jobs    chan Job
	results chan Result
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// Job is one unit of work. Seq orders results for callers that need them
// back in submission order.
type Job struct {
	ID   string
	Seq  int
	Task func(ctx context.Context) (any, error)
}

// Result carries a job's outcome.
type Result struct {
	JobID string
	Seq   int
	Data  any
	Error error
}

// NewWorkerPool creates a pool bound to ctx. Cancelling ctx stops workers
// from picking up further jobs.
func NewWorkerPool(ctx context.Context, workers, bufferSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool{
		workers: workers,
		jobs:    make(chan Job, bufferSize),
		results: make(chan Result, bufferSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case job, ok := <-wp.jobs:
			if !ok {
				return
			}

			data, err := job.Task(wp.ctx)
			wp.results <- Result{
				JobID: job.ID,
				Seq:   job.Seq,
				Data:  data,
				Error: err,
			}
		}
	}
}

// Submit queues a job. It returns the context error if the pool was
// cancelled before the job could be queued.
func (wp *WorkerPool) Submit(job Job) error {
	select {
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	case wp.jobs <- job:
		return nil
	}
}

// Results returns the results channel. It is closed by Shutdown.
func (wp *WorkerPool) Results() <-chan Result {
	return wp.results
}

// Shutdown stops accepting jobs and waits for the workers to drain the queue.
// If ctx ends first the remaining jobs are cancelled.
func (wp *WorkerPool) Shutdown(ctx context.Context) error {
	close(wp.jobs)

	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		close(wp.results)
		wp.cancel()
		return nil
	case <-ctx.Done():
		wp.cancel()
		return ctx.Err()
	}
}

// Collect runs jobs on a fresh pool of the given size and returns their
// results indexed by Seq. Jobs not run because ctx was cancelled have a
// Result carrying the context error.
func Collect(ctx context.Context, workers int, jobs []Job) []Result {
	out := make([]Result, len(jobs))
	for i := range jobs {
		jobs[i].Seq = i
		out[i] = Result{JobID: jobs[i].ID, Seq: i}
	}
	ran := make([]bool, len(jobs))

	wp := NewWorkerPool(ctx, workers, len(jobs))
	wp.Start()

	for _, job := range jobs {
		if err := wp.Submit(job); err != nil {
			break
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for res := range wp.Results() {
			out[res.Seq] = res
			ran[res.Seq] = true
		}
	}()
	wp.Shutdown(context.Background())
	<-done

	for i := range out {
		if !ran[i] {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			out[i].Error = err
		}
	}
	return out
}
