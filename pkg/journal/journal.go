// Package journal persists inbound ESL events to a durable,
// append-only JSONL log (SPEC_FULL.md §2). It is not part of the
// protocol spec.md describes — it is ambient infrastructure a long
// running listener needs so that events are not lost to a crash
// between being received and being acted on.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/jg-phare/esl/pkg/esllog"
	"github.com/jg-phare/esl/pkg/frame"
)

const (
	writerBufferSize = 256
	flushIdleTimeout = 100 * time.Millisecond
	lockTimeout      = 5 * time.Second
)

// ErrLockTimeout is returned when the journal's file lock cannot be
// acquired within lockTimeout, e.g. another process holds it.
var ErrLockTimeout = errors.New("journal: timed out acquiring file lock")

// record is the on-disk JSONL shape for one journaled message.
type record struct {
	ReceivedAt time.Time      `json:"received_at"`
	EventName  string         `json:"event_name,omitempty"`
	Headers    map[string]any `json:"headers,omitempty"`
	EventData  map[string]any `json:"event_data,omitempty"`
}

// writeOp is one batched append request, adapted from asyncWriter's
// batching-goroutine shape, generalized from an arbitrary path+bytes
// write to a single fixed journal file appending one frame.Message at
// a time.
type writeOp struct {
	data []byte
	errc chan error
}

// Journal batches writes to one append-only file in a background
// goroutine, serialized across processes with a flock-based lock file
// (SPEC_FULL.md §2).
type Journal struct {
	path   string
	logger esllog.Logger

	ch   chan writeOp
	done chan struct{}

	mu sync.Mutex
	f  *os.File

	closeOnce sync.Once
	closeErr  error
}

// Open opens (creating if needed) the journal file at path and starts
// its background batching writer.
func Open(path string, logger esllog.Logger) (*Journal, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	j := &Journal{
		path:   path,
		logger: esllog.OrNop(logger),
		ch:     make(chan writeOp, writerBufferSize),
		done:   make(chan struct{}),
		f:      f,
	}
	go j.run()
	return j, nil
}

// Record enqueues msg for durable append. Record never blocks on disk
// I/O; the background writer batches and flushes.
func (j *Journal) Record(msg *frame.Message) {
	rec := record{
		ReceivedAt: time.Now(),
		EventName:  msg.EventName().String(),
		Headers:    headersToMap(msg.Headers),
		EventData:  msg.EventData,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		j.logger.Errorf("journal: marshal record: %v", err)
		return
	}
	data = append(data, '\n')
	j.ch <- writeOp{data: data}
}

// RecordSync behaves like Record but blocks until the write has been
// flushed to disk (or failed), for callers that need the durability
// guarantee before acknowledging upstream.
func (j *Journal) RecordSync(msg *frame.Message) error {
	rec := record{
		ReceivedAt: time.Now(),
		EventName:  msg.EventName().String(),
		Headers:    headersToMap(msg.Headers),
		EventData:  msg.EventData,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	errc := make(chan error, 1)
	j.ch <- writeOp{data: data, errc: errc}
	return <-errc
}

func (j *Journal) run() {
	defer close(j.done)

	timer := time.NewTimer(flushIdleTimeout)
	defer timer.Stop()

	var pending []writeOp

	for {
		select {
		case op, ok := <-j.ch:
			if !ok {
				j.flushAll(pending)
				return
			}
			pending = append(pending, op)
		drain:
			for {
				select {
				case op2, ok2 := <-j.ch:
					if !ok2 {
						j.flushAll(pending)
						return
					}
					pending = append(pending, op2)
				default:
					break drain
				}
			}
			j.flushAll(pending)
			pending = pending[:0]
			timer.Reset(flushIdleTimeout)

		case <-timer.C:
			if len(pending) > 0 {
				j.flushAll(pending)
				pending = pending[:0]
			}
			timer.Reset(flushIdleTimeout)
		}
	}
}

func (j *Journal) flushAll(ops []writeOp) {
	for _, op := range ops {
		err := j.append(op.data)
		if err != nil {
			j.logger.Errorf("journal: append failed: %v", err)
		}
		if op.errc != nil {
			op.errc <- err
		}
	}
}

// headersToMap flattens Headers into a plain map for JSON encoding;
// order is not preserved on disk since JSON objects are unordered.
func headersToMap(h *frame.Headers) map[string]any {
	if h == nil || h.Len() == 0 {
		return nil
	}
	m := make(map[string]any, h.Len())
	for _, k := range h.Keys() {
		m[k] = h.Get(k)
	}
	return m
}

func (j *Journal) append(data []byte) error {
	fl := flock.New(j.path + ".lock")
	timeoutCtx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(timeoutCtx, 50*time.Millisecond)
	if err != nil || !locked {
		return ErrLockTimeout
	}
	defer fl.Unlock()

	j.mu.Lock()
	_, err = j.f.Write(data)
	j.mu.Unlock()
	return err
}

// Close signals the background writer to flush and stop, then closes
// the journal file. Later calls return the first call's result.
func (j *Journal) Close() error {
	j.closeOnce.Do(func() {
		close(j.ch)
		<-j.done

		j.mu.Lock()
		defer j.mu.Unlock()
		j.closeErr = j.f.Close()
	})
	return j.closeErr
}
