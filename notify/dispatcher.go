package notify

import (
	"context"
	"sync"
	"sync/atomic"
)

// Config controls dispatcher buffering behavior.
type Config struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// Dispatcher forwards notifications to a sink asynchronously so emitters on
// the request path never wait on a display surface. A nil Dispatcher is a
// valid no-op Notifier.
type Dispatcher struct {
	cfg       Config
	sink      Notifier
	ch        chan Notification
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewDispatcher creates a running Dispatcher, or nil when cfg.Enabled is
// false.
func NewDispatcher(cfg Config, sink Notifier) *Dispatcher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpNotifier{}
	}

	d := &Dispatcher{
		cfg:  cfg,
		sink: sink,
		ch:   make(chan Notification, cfg.BufferSize),
		done: make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case n := <-d.ch:
			d.sink.Notify(context.Background(), n)
		case <-d.done:
			// Drain whatever is buffered, then stop.
			for {
				select {
				case n := <-d.ch:
					d.sink.Notify(context.Background(), n)
				default:
					return
				}
			}
		}
	}
}

// Notify enqueues a notification. With DropIfFull, a full buffer drops the
// notification and counts it instead of blocking the emitter.
func (d *Dispatcher) Notify(ctx context.Context, n Notification) {
	if d == nil || d.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.cfg.DropIfFull {
		select {
		case d.ch <- n:
		case <-d.done:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.ch <- n:
	case <-ctx.Done():
	case <-d.done:
	}
}

// Close drains the buffer and stops the worker. Safe to call twice.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

// Dropped reports how many notifications were dropped on a full buffer.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
