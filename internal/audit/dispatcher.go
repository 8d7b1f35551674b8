package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Event struct {
	TenantID string
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	IP       string
	Metadata any
}

// Dispatcher writes events in the background. It never blocks or fails the caller:
// a full queue drops the event and write errors are only logged.
type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(sink Sink, log *zap.Logger, size int) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Write(ctx, toEntry(ev)); err != nil {
			d.log.Warn("security log write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Dispatch is safe on a nil Dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("security log queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains queued events and stops the worker. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}
