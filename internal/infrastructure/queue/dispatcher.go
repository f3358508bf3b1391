// Package queue runs background removal of uploaded files.
package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/twittoo/twittoo-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes image URLs to a fixed set of workers using consistent
// hashing on the URL, so removals of one file are handled in order by one worker.
type Dispatcher struct {
	workers []chan string
	remover ports.ImageRemover
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, remover ports.ImageRemover, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		remover: remover,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands each URL to its worker. It never blocks: when a worker's
// buffer is full the URL is dropped and logged, leaving the file on disk.
func (d *Dispatcher) Enqueue(urls []string) {
	for _, url := range urls {
		select {
		case d.workers[d.shardIndex(url)] <- url:
		default:
			d.log.Warn().Str("url", url).Msg("cleanup queue full, dropping")
		}
	}
}

// shardIndex maps a URL deterministically to a worker index.
func (d *Dispatcher) shardIndex(url string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case url, ok := <-ch:
			if !ok {
				return
			}
			if err := d.remover.Remove(ctx, url); err != nil {
				d.log.Error().Err(err).
					Str("url", url).
					Int("worker_id", id).
					Msg("image cleanup failed")
			}
		}
	}
}
