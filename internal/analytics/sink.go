// Package analytics stores one flat record per simulation run and aggregates
// them for the usage summary.
package analytics

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// ErrBufferFull is returned by AsyncSink when an entry had to be dropped
var ErrBufferFull = errors.New("analytics buffer full, entry dropped")

// ErrClosed is returned when recording into a closed sink
var ErrClosed = errors.New("analytics sink closed")

// Sink receives analytics entries. The calculation engine treats it as
// fire-and-forget: errors are logged and never surface to the caller.
type Sink interface {
	Record(ctx context.Context, entry domain.AnalyticsEntry) error
}

// Source lists previously recorded entries
type Source interface {
	Entries(ctx context.Context) ([]domain.AnalyticsEntry, error)
}

// MemorySink keeps entries in memory
type MemorySink struct {
	mu      sync.Mutex
	entries []domain.AnalyticsEntry
}

// NewMemorySink creates an empty in-memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (m *MemorySink) Record(_ context.Context, entry domain.AnalyticsEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

// Entries returns a copy of everything recorded so far
func (m *MemorySink) Entries(_ context.Context) ([]domain.AnalyticsEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AnalyticsEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// Len returns the number of recorded entries
func (m *MemorySink) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// AsyncSink decouples callers from a slow sink. Entries are queued on a
// bounded buffer and written by a single worker; when the buffer is full the
// entry is dropped.
type AsyncSink struct {
	next    Sink
	queue   chan domain.AnalyticsEntry
	onError func(error)

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Int64
}

// NewAsyncSink starts the worker. onError may be nil.
func NewAsyncSink(next Sink, buffer int, onError func(error)) *AsyncSink {
	if buffer < 1 {
		buffer = 1
	}
	s := &AsyncSink{
		next:    next,
		queue:   make(chan domain.AnalyticsEntry, buffer),
		onError: onError,
	}
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *AsyncSink) run() {
	defer s.wg.Done()
	for entry := range s.queue {
		if err := s.next.Record(context.Background(), entry); err != nil && s.onError != nil {
			s.onError(err)
		}
	}
}

func (s *AsyncSink) Record(_ context.Context, entry domain.AnalyticsEntry) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	select {
	case s.queue <- entry:
		return nil
	default:
		s.dropped.Add(1)
		return ErrBufferFull
	}
}

// Dropped reports how many entries were discarded because the buffer was full
func (s *AsyncSink) Dropped() int64 {
	return s.dropped.Load()
}

// Close stops accepting entries and waits until the queue is drained
func (s *AsyncSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}
