// internal/downloader/pool.go
package downloader

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// WorkerPool manages concurrent downloads using a worker pool pattern
type WorkerPool struct {
	downloader  *Downloader
	concurrency int
}

// NewWorkerPool creates a new worker pool with specified concurrency
func NewWorkerPool(downloader *Downloader, concurrency int) *WorkerPool {
	if concurrency <= 0 {
		concurrency = 5
	}
	if concurrency > 50 {
		concurrency = 50
	}

	return &WorkerPool{
		downloader:  downloader,
		concurrency: concurrency,
	}
}

// DownloadBatch downloads jobs concurrently and blocks until every one
// has finished. Results are returned in job order; per-job failure is
// carried in the result, never as an error from the batch.
func (wp *WorkerPool) DownloadBatch(ctx context.Context, jobs []Job, opts DownloadOptions) []*DownloadResult {
	if len(jobs) == 0 {
		return []*DownloadResult{}
	}

	type indexed struct {
		pos    int
		result *DownloadResult
	}

	work := make(chan int, len(jobs))
	results := make(chan indexed, len(jobs))

	var wg sync.WaitGroup
	for w := 1; w <= wp.concurrency; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			for pos := range work {
				select {
				case <-ctx.Done():
					log.Debug().Int("worker_id", id).Msg("Worker cancelled")
					return
				default:
				}

				res := wp.downloader.Download(ctx, jobs[pos], opts)

				select {
				case results <- indexed{pos: pos, result: res}:
				case <-ctx.Done():
					return
				}
			}
		}(w)
	}

	go func() {
		for i := range jobs {
			work <- i
		}
		close(work)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]*DownloadResult, len(jobs))
	for r := range results {
		ordered[r.pos] = r.result
		if opts.OnResult != nil {
			opts.OnResult(r.result)
		}
	}

	// Jobs abandoned on cancellation get an explicit failed result.
	for i, r := range ordered {
		if r == nil {
			ordered[i] = &DownloadResult{Job: jobs[i], Error: ctx.Err()}
		}
	}

	return ordered
}
