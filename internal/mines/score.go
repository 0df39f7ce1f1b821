package mines

import (
	"context"
	"sync"
	"time"
)

const DefaultTick = time.Second

// ScoreTracker counts elapsed ticks while a game is running. Stop is final:
// once it returns, the background ticker has exited and the value no longer
// changes.
type ScoreTracker struct {
	interval time.Duration

	mu      sync.Mutex
	value   int
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewScoreTracker(interval time.Duration) *ScoreTracker {
	if interval <= 0 {
		interval = DefaultTick
	}
	return &ScoreTracker{interval: interval}
}

// Start launches the ticker. Calling it twice, or after Stop, does nothing.
func (t *ScoreTracker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.stopped {
		return
	}
	t.started = true

	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})
	go t.run(ctx)
}

func (t *ScoreTracker) run(ctx context.Context) {
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.stopped {
				t.mu.Unlock()
				return
			}
			t.value++
			t.mu.Unlock()
		}
	}
}

// Stop halts the counter and returns its final value.
func (t *ScoreTracker) Stop() int {
	t.mu.Lock()
	if t.stopped {
		v := t.value
		t.mu.Unlock()
		return v
	}
	t.stopped = true
	cancel, done := t.cancel, t.done
	v := t.value
	t.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	return v
}

func (t *ScoreTracker) Value() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// Running reports whether the ticker has been started and not stopped.
func (t *ScoreTracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started && !t.stopped
}
