package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// DefaultWriteQueueSize bounds the number of pending durable writes.
const DefaultWriteQueueSize = 64

// Writer applies durable writes on a background goroutine so callers never
// wait on the disk. Writes run in the order they were enqueued. A failed
// write is logged and dropped; nothing is retried.
type Writer struct {
	st   *Store
	log  hclog.Logger
	jobs chan writeJob
	done chan struct{}

	mu     sync.RWMutex
	closed bool
}

type writeJob struct {
	op  string
	key string
	run func(ctx context.Context) error
	// ack is set on flush markers only.
	ack chan struct{}
}

// NewWriter starts a writer over st. size bounds the queue; enqueueing blocks
// while the queue is full.
func NewWriter(st *Store, logger hclog.Logger, size int) *Writer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if size <= 0 {
		size = DefaultWriteQueueSize
	}
	w := &Writer{
		st:   st,
		log:  logger,
		jobs: make(chan writeJob, size),
		done: make(chan struct{}),
	}
	go w.processLoop()
	return w
}

// PutDict enqueues Store.PutDict.
func (w *Writer) PutDict(key string, value json.RawMessage) {
	w.enqueue(writeJob{op: "put_dict", key: key, run: func(ctx context.Context) error {
		return w.st.PutDict(ctx, key, value)
	}})
}

// DeleteDict enqueues Store.DeleteDict.
func (w *Writer) DeleteDict(key string) {
	w.enqueue(writeJob{op: "delete_dict", key: key, run: func(ctx context.Context) error {
		return w.st.DeleteDict(ctx, key)
	}})
}

// DeleteDictPrefix enqueues Store.DeleteDictPrefix.
func (w *Writer) DeleteDictPrefix(prefix string) {
	w.enqueue(writeJob{op: "delete_dict_prefix", key: prefix, run: func(ctx context.Context) error {
		_, err := w.st.DeleteDictPrefix(ctx, prefix)
		return err
	}})
}

// PutProfileID enqueues Store.PutProfileID.
func (w *Writer) PutProfileID(id string) {
	w.enqueue(writeJob{op: "put_profile_id", key: id, run: func(ctx context.Context) error {
		return w.st.PutProfileID(ctx, id)
	}})
}

// DeleteProfileID enqueues Store.DeleteProfileID.
func (w *Writer) DeleteProfileID(id string) {
	w.enqueue(writeJob{op: "delete_profile_id", key: id, run: func(ctx context.Context) error {
		return w.st.DeleteProfileID(ctx, id)
	}})
}

// Flush waits until every write enqueued before the call has been attempted.
func (w *Writer) Flush(ctx context.Context) error {
	ack := make(chan struct{})
	if !w.enqueue(writeJob{op: "flush", ack: ack}) {
		return nil
	}
	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains the queue and stops the writer. Later writes are dropped.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.jobs)
	w.mu.Unlock()
	<-w.done
}

func (w *Writer) enqueue(job writeJob) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		if job.ack == nil {
			w.log.Warn("durable write after close dropped", "op", job.op, "key", job.key)
		}
		return false
	}
	w.jobs <- job
	return true
}

func (w *Writer) processLoop() {
	defer close(w.done)
	for job := range w.jobs {
		if job.ack != nil {
			close(job.ack)
			continue
		}
		// Keys are structural paths; values are never logged.
		if err := job.run(context.Background()); err != nil {
			w.log.Warn("durable write failed", "op", job.op, "key", job.key, "error", err)
		}
	}
}
