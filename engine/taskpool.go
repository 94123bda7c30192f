package engine

import (
	"context"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/semaphore"
)

// TaskPool is the fixed-size, work-stealing-disabled worker pool §5
// reserves for *offline* batch tasks — building obstacle trees at
// preprocess, benchmark analysis — never for per-tick agent scheduling,
// which stays strictly sequential on the engine thread. A weighted
// semaphore bounds how many tasks run at once; results fan in through
// channerics.Merge in the idiom of niceyeti-tabular's own worker pools
// (reinforcement/learning.go's agent_worker/estimator pipeline), whose
// done channel doubles as the "wake all" broadcast half of §5's
// signalling primitive, while each worker's own result channel is the
// "wake one" half.
type TaskPool struct {
	sem *semaphore.Weighted
}

// NewTaskPool constructs a TaskPool allowing up to size tasks to run
// concurrently. size <= 0 is treated as 1 (sequential).
func NewTaskPool(size int) *TaskPool {
	if size <= 0 {
		size = 1
	}

	return &TaskPool{sem: semaphore.NewWeighted(int64(size))}
}

// runTaskPool runs every task in tasks, each bounded by pool's semaphore,
// and returns their results once all have completed. done, when closed,
// broadcasts cancellation to every task not yet started or mid-run that
// checks it; a nil done never cancels. Result order is not the submission
// order — callers needing positional results should have each task close
// over its own index.
func runTaskPool[T any](pool *TaskPool, done <-chan struct{}, tasks []func() T) []T {
	channels := make([]<-chan T, len(tasks))
	for i, task := range tasks {
		out := make(chan T, 1)
		channels[i] = out

		go func(task func() T, out chan<- T) {
			defer close(out)

			if err := pool.sem.Acquire(context.Background(), 1); err != nil {
				return
			}
			defer pool.sem.Release(1)

			select {
			case <-done:
				return
			default:
			}

			out <- task()
		}(task, out)
	}

	results := make([]T, 0, len(tasks))
	for v := range channerics.Merge(done, channels...) {
		results = append(results, v)
	}

	return results
}
