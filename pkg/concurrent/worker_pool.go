package concurrent

import (
	"sync"
)

type JobFunc[T any, R any] func(job T) R

// WorkerPool fans a queue of jobs over a fixed number of workers and collects
// one result per job. Add all jobs, Close, then drain CollectResults after
// Wait closes it.
type WorkerPool[T any, R any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan R
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, R any](numWorkers, jobQueueSize int) *WorkerPool[T, R] {
	return &WorkerPool[T, R]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan R, jobQueueSize),
	}
}

func (wp *WorkerPool[T, R]) worker(jobFunc JobFunc[T, R]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(job)
	}
}

func (wp *WorkerPool[T, R]) Start(jobFunc JobFunc[T, R]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

func (wp *WorkerPool[T, R]) AddJob(job T) {
	wp.jobQueue <- job
}

// Close marks the job queue complete. Workers exit after draining it.
func (wp *WorkerPool[T, R]) Close() {
	close(wp.jobQueue)
}

// Wait blocks until every worker finished, then closes the results channel.
func (wp *WorkerPool[T, R]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, R]) CollectResults() chan R {
	return wp.results
}
