package app

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/awmpietro/palindrome-trace/internal/palindrome"
)

// RunEvent describes one finished service call.
type RunEvent struct {
	Op        string
	Algorithm palindrome.Algorithm
	Length    int
	Steps     int
	Duration  time.Duration
	Err       error
}

type RunObserver interface {
	ObserveRun(ctx context.Context, ev RunEvent)
}

type RunLogger struct {
	logger *slog.Logger
}

func NewRunLogger(logger *slog.Logger) *RunLogger {
	return &RunLogger{logger: logger}
}

func (l *RunLogger) ObserveRun(ctx context.Context, ev RunEvent) {
	if l == nil || l.logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("op", ev.Op),
		slog.Int("length", ev.Length),
		slog.Float64("duration_ms", float64(ev.Duration.Microseconds())/1000.0),
	}
	if ev.Algorithm != "" {
		attrs = append(attrs, slog.String("algorithm", string(ev.Algorithm)))
	}
	if ev.Steps > 0 {
		attrs = append(attrs, slog.Int("steps", ev.Steps))
	}
	if ev.Err != nil {
		attrs = append(attrs, slog.String("error", ev.Err.Error()))
		l.logger.LogAttrs(ctx, slog.LevelWarn, "palindrome_run", attrs...)
		return
	}
	l.logger.LogAttrs(ctx, slog.LevelInfo, "palindrome_run", attrs...)
}

// AsyncRunObserver hands events to next on a background goroutine. Events
// arriving while the buffer is full, or after Close, are dropped and counted.
type AsyncRunObserver struct {
	next    RunObserver
	events  chan runEvent
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

type runEvent struct {
	ctx context.Context
	ev  RunEvent
}

func NewAsyncRunObserver(next RunObserver, buffer int) *AsyncRunObserver {
	if buffer <= 0 {
		buffer = 1
	}

	o := &AsyncRunObserver{
		next:   next,
		events: make(chan runEvent, buffer),
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for e := range o.events {
			if o.next == nil {
				continue
			}
			o.next.ObserveRun(e.ctx, e.ev)
		}
	}()

	return o
}

func (o *AsyncRunObserver) ObserveRun(ctx context.Context, ev RunEvent) {
	if o == nil {
		return
	}
	o.mu.RLock()
	if o.closed {
		o.mu.RUnlock()
		o.dropped.Add(1)
		return
	}
	select {
	case o.events <- runEvent{ctx: context.WithoutCancel(ctx), ev: ev}:
	default:
		o.dropped.Add(1)
	}
	o.mu.RUnlock()
}

func (o *AsyncRunObserver) Dropped() uint64 {
	if o == nil {
		return 0
	}
	return o.dropped.Load()
}

// Close drains pending events and stops the worker.
func (o *AsyncRunObserver) Close() {
	if o == nil {
		return
	}
	o.once.Do(func() {
		o.mu.Lock()
		o.closed = true
		close(o.events)
		o.mu.Unlock()
		o.wg.Wait()
	})
}
