package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingRemover struct {
	mu      sync.Mutex
	removed []string
	done    chan struct{}
	err     error
}

func (r *recordingRemover) Remove(_ context.Context, url string) error {
	r.mu.Lock()
	r.removed = append(r.removed, url)
	r.mu.Unlock()
	r.done <- struct{}{}
	return r.err
}

func waitFor(t *testing.T, ch <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d removals", i, n)
		}
	}
}

func TestDispatcher_RemovesEveryURL(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	remover := &recordingRemover{done: make(chan struct{}, 8)}
	d := NewDispatcher(3, remover, zerolog.Nop())
	d.Start(ctx)

	urls := []string{"/uploads/a.png", "/uploads/b.jpg", "/uploads/c.gif"}
	d.Enqueue(urls)
	waitFor(t, remover.done, len(urls))

	remover.mu.Lock()
	defer remover.mu.Unlock()
	if len(remover.removed) != len(urls) {
		t.Fatalf("expected %d removals, got %v", len(urls), remover.removed)
	}
}

func TestDispatcher_KeepsRunningAfterFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	remover := &recordingRemover{done: make(chan struct{}, 4), err: errors.New("permission denied")}
	d := NewDispatcher(1, remover, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue([]string{"/uploads/x.png"})
	d.Enqueue([]string{"/uploads/y.png"})
	waitFor(t, remover.done, 2)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	first := d.shardIndex("/uploads/a.png")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("/uploads/a.png"); got != first {
			t.Fatalf("shard changed from %d to %d", first, got)
		}
	}
}

func TestDispatcher_EnqueueDoesNotBlockWhenFull(t *testing.T) {
	d := NewDispatcher(1, nil, zerolog.Nop())

	urls := make([]string, channelBuffer+10)
	for i := range urls {
		urls[i] = "/uploads/same.png"
	}

	done := make(chan struct{})
	go func() {
		d.Enqueue(urls)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full worker")
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected full buffer of %d, got %d", channelBuffer, got)
	}
}
