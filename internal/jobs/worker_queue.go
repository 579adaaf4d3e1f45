package jobs

import (
	"github.com/vytor/wkstats/internal/monitoring"
	"github.com/vytor/wkstats/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	prefetchPool *worker.Pool
	client       worker.PrefetchClient
	metrics      *monitoring.Metrics
}

// NewWorkerQueue creates a new WorkerQueue implementation. metrics may be nil.
func NewWorkerQueue(prefetchPool *worker.Pool, client worker.PrefetchClient, metrics *monitoring.Metrics) JobQueue {
	return &WorkerQueue{
		prefetchPool: prefetchPool,
		client:       client,
		metrics:      metrics,
	}
}

func (q *WorkerQueue) EnqueuePrefetch(token string) error {
	err := q.prefetchPool.Submit(&worker.PrefetchJob{
		Client: q.client,
		Token:  token,
	})
	if err != nil {
		q.metrics.ObservePrefetchDropped()
	}
	return err
}
