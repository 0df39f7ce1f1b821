package mines

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreTrackerCounts(t *testing.T) {
	tracker := NewScoreTracker(time.Millisecond)
	assert.False(t, tracker.Running())

	tracker.Start(context.Background())
	assert.True(t, tracker.Running())

	require.Eventually(t, func() bool {
		return tracker.Value() >= 3
	}, time.Second, time.Millisecond)

	final := tracker.Stop()
	assert.GreaterOrEqual(t, final, 3)
	assert.False(t, tracker.Running())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, final, tracker.Value(), "counter moved after stop")
	assert.Equal(t, final, tracker.Stop())
}

func TestScoreTrackerStartAfterStop(t *testing.T) {
	tracker := NewScoreTracker(time.Millisecond)
	assert.Equal(t, 0, tracker.Stop())

	tracker.Start(context.Background())
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 0, tracker.Value())
	assert.False(t, tracker.Running())
}

func TestScoreTrackerStartTwice(t *testing.T) {
	tracker := NewScoreTracker(time.Millisecond)
	tracker.Start(context.Background())
	tracker.Start(context.Background())

	require.Eventually(t, func() bool {
		return tracker.Value() >= 1
	}, time.Second, time.Millisecond)
	tracker.Stop()
}

func TestScoreTrackerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tracker := NewScoreTracker(time.Millisecond)
	tracker.Start(ctx)

	require.Eventually(t, func() bool {
		return tracker.Value() >= 1
	}, time.Second, time.Millisecond)
	cancel()

	done := make(chan int)
	go func() { done <- tracker.Stop() }()
	select {
	case v := <-done:
		assert.Equal(t, v, tracker.Value())
	case <-time.After(time.Second):
		t.Fatal("stop did not return after context cancel")
	}
}

func TestScoreTrackerDefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultTick, NewScoreTracker(0).interval)
	assert.Equal(t, DefaultTick, NewScoreTracker(-time.Second).interval)
}
