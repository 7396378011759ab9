package concurrency

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	wp := NewWorkerPool(context.Background(), 3, 10)
	wp.Start()

	for i := 0; i < 10; i++ {
		n := i
		if err := wp.Submit(Job{ID: fmt.Sprint(n), Seq: n, Task: func(context.Context) (any, error) {
			return n * n, nil
		}}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	if err := wp.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	sum := 0
	for res := range wp.Results() {
		if res.Error != nil {
			t.Errorf("job %s failed: %v", res.JobID, res.Error)
		}
		sum += res.Data.(int)
	}
	if sum != 285 {
		t.Errorf("sum of squares = %d, want 285", sum)
	}
}

func TestCollectPreservesOrder(t *testing.T) {
	boom := errors.New("boom")
	jobs := make([]Job, 5)
	for i := range jobs {
		n := i
		jobs[i] = Job{ID: fmt.Sprintf("job-%d", n), Task: func(context.Context) (any, error) {
			time.Sleep(time.Duration(5-n) * time.Millisecond)
			if n == 3 {
				return nil, boom
			}
			return n, nil
		}}
	}

	results := Collect(context.Background(), 2, jobs)
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	for i, res := range results {
		if res.Seq != i || res.JobID != fmt.Sprintf("job-%d", i) {
			t.Errorf("result %d = %+v", i, res)
		}
		if i == 3 {
			if !errors.Is(res.Error, boom) {
				t.Errorf("result 3 error = %v, want boom", res.Error)
			}
			continue
		}
		if res.Error != nil || res.Data.(int) != i {
			t.Errorf("result %d = %+v", i, res)
		}
	}
}

func TestCollectLimitsConcurrency(t *testing.T) {
	var running, peak int32
	jobs := make([]Job, 8)
	for i := range jobs {
		jobs[i] = Job{Task: func(context.Context) (any, error) {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil, nil
		}}
	}

	Collect(context.Background(), 2, jobs)
	if peak > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak)
	}
}

func TestCollectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{{Task: func(context.Context) (any, error) { return 1, nil }}}
	results := Collect(ctx, 1, jobs)
	// The job may or may not have been picked up before the workers noticed.
	if results[0].Error != nil && !errors.Is(results[0].Error, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", results[0].Error)
	}
}
