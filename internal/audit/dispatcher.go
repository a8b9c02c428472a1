package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const queueSize = 100

type Event struct {
	HospitalID *uuid.UUID
	UserID     *uuid.UUID
	Action     string
	Entity     string
	EntityID   *uuid.UUID
	Metadata   any
}

// Sink persists a single event.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sink  Sink
	log   zerolog.Logger
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log.With().Str("component", "audit").Logger(),
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.log.Warn().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

// Dispatch never blocks; events are dropped when the queue is full or the
// dispatcher is closed.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queued ones to be written
// or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
