package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/awmpietro/palindrome-trace/internal/logging"
	"github.com/awmpietro/palindrome-trace/internal/palindrome"
)

func TestAsyncRunObserver_DeliversEventsOnClose(t *testing.T) {
	spy := &spyObserver{}
	async := NewAsyncRunObserver(spy, 8)

	async.ObserveRun(context.Background(), RunEvent{Op: "visualize"})
	async.ObserveRun(context.Background(), RunEvent{Op: "benchmark"})
	async.Close()

	assert.Len(t, spy.events, 2)
}

func TestAsyncRunObserver_DropsWhenBufferIsFull(t *testing.T) {
	spy := &spyObserver{}
	async := NewAsyncRunObserver(spy, 1)

	for i := 0; i < 1000; i++ {
		async.ObserveRun(context.Background(), RunEvent{Op: "visualize"})
	}
	async.Close()

	assert.NotZero(t, async.Dropped())
}

func TestAsyncRunObserver_DropsAfterClose(t *testing.T) {
	async := NewAsyncRunObserver(&spyObserver{}, 4)
	async.Close()

	async.ObserveRun(context.Background(), RunEvent{Op: "visualize"})
	assert.Equal(t, uint64(1), async.Dropped())
}

func TestAsyncRunObserver_CloseDuringConcurrentObserveDoesNotPanic(t *testing.T) {
	async := NewAsyncRunObserver(&spyObserver{}, 32)

	const workers = 8
	const perWorker = 200
	var wg sync.WaitGroup
	var panics atomic.Int32

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if recover() != nil {
					panics.Add(1)
				}
			}()
			for j := 0; j < perWorker; j++ {
				async.ObserveRun(context.Background(), RunEvent{Op: "visualize"})
			}
		}()
	}

	time.Sleep(1 * time.Millisecond)
	async.Close()
	wg.Wait()

	assert.Zero(t, panics.Load())
}

func TestRunLogger_KeepsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewCorrelationHandler(slog.NewTextHandler(&buf, nil)))
	async := NewAsyncRunObserver(NewRunLogger(logger), 4)

	ctx, cancel := context.WithCancel(logging.WithRequestID(context.Background(), "req-9"))
	async.ObserveRun(ctx, RunEvent{Op: "visualize", Algorithm: palindrome.Manacher, Length: 5, Steps: 40})
	cancel()
	async.Close()

	out := buf.String()
	assert.Contains(t, out, "palindrome_run")
	assert.Contains(t, out, "request_id=req-9")
	assert.Contains(t, out, "algorithm=manacher")
	assert.Contains(t, out, "steps=40")
}

func TestRunLogger_LogsErrorsAtWarn(t *testing.T) {
	var buf bytes.Buffer
	NewRunLogger(slog.New(slog.NewTextHandler(&buf, nil))).
		ObserveRun(context.Background(), RunEvent{Op: "benchmark", Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "error=boom")
}

func TestRunLogger_NilIsNoop(t *testing.T) {
	var l *RunLogger
	assert.NotPanics(t, func() {
		l.ObserveRun(context.Background(), RunEvent{})
	})
}
