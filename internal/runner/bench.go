package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/all-dot-files/tictoc/internal/models"
	"github.com/all-dot-files/tictoc/internal/tracker"
	"github.com/all-dot-files/tictoc/pkg/concurrency"
	"github.com/all-dot-files/tictoc/pkg/errors"
	"github.com/all-dot-files/tictoc/pkg/tictoc"
)

// BenchSpec runs Spec Runs times, at most Parallel at once.
type BenchSpec struct {
	Spec
	Runs     int
	Parallel int
}

// BenchResult summarises a benchmark. Runs are in run order; Total covers the
// whole batch under the bench key.
type BenchResult struct {
	Key    string
	Unit   tictoc.Unit
	Runs   []models.Run
	Total  tictoc.Timer
	Failed int

	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// RunKey returns the timer key of the n-th run (1-based) of a bench.
func RunKey(key string, n int) string {
	return fmt.Sprintf("%s#%d", key, n)
}

// Bench times spec.Runs executions of the command. Each run uses its own
// timer, RunKey(key, n), and the batch as a whole is timed under key. The
// result is returned even when runs fail; their failures are aggregated in
// the error.
func Bench(ctx context.Context, tr *tracker.Tracker, spec BenchSpec) (BenchResult, error) {
	if spec.Runs < 1 {
		return BenchResult{}, errors.New(errors.ErrInvalidInput, "runner.Bench", "runs must be at least 1")
	}
	if len(spec.Command) == 0 {
		return BenchResult{}, errors.New(errors.ErrInvalidInput, "runner.Bench", "no command given")
	}
	if spec.Parallel < 1 {
		spec.Parallel = 1
	}
	if spec.Unit == 0 {
		spec.Unit = tictoc.DefaultUnit
	}

	key := spec.KeyFor()
	res := BenchResult{Key: key, Unit: spec.Unit, Runs: make([]models.Run, 0, spec.Runs)}

	jobs := make([]concurrency.Job, spec.Runs)
	for i := range jobs {
		runSpec := spec.Spec
		runSpec.Key = RunKey(key, i+1)
		jobs[i] = concurrency.Job{
			ID: runSpec.Key,
			Task: func(ctx context.Context) (any, error) {
				return Run(ctx, tr, runSpec)
			},
		}
	}

	var results []concurrency.Result
	total, err := tr.Measure(key, func() error {
		results = concurrency.Collect(ctx, spec.Parallel, jobs)
		return nil
	})
	if err != nil {
		return BenchResult{}, err
	}
	res.Total = total

	var errs *multierror.Error
	var sum time.Duration
	for _, r := range results {
		if r.Error != nil {
			res.Failed++
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", r.JobID, r.Error))
			continue
		}
		run := r.Data.(models.Run)
		res.Runs = append(res.Runs, run)
		if !run.Succeeded() {
			res.Failed++
			errs = multierror.Append(errs, fmt.Errorf("%s: %s", r.JobID, run.Error))
		}

		if len(res.Runs) == 1 || run.Duration < res.Min {
			res.Min = run.Duration
		}
		if run.Duration > res.Max {
			res.Max = run.Duration
		}
		sum += run.Duration
	}
	if n := len(res.Runs); n > 0 {
		res.Mean = sum / time.Duration(n)
	}

	return res, errs.ErrorOrNil()
}
