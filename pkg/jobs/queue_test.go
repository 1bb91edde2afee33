package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	var mu sync.Mutex
	seen := []string{}
	done := make(chan struct{}, 2)
	q := NewQueue("test", func(_ context.Context, job Job) error {
		mu.Lock()
		seen = append(seen, job.ID)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "a", Type: "counter.upserted"}))
	require.NoError(t, q.Enqueue(Job{ID: "b", Type: "counter.upserted"}))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("job not processed")
		}
	}
	mu.Lock()
	assert.ElementsMatch(t, []string{"a", "b"}, seen)
	mu.Unlock()
	assert.Eventually(t, func() bool { return q.Stats().Processed == 2 }, time.Second, 10*time.Millisecond)
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	attempts := make(chan int, 4)
	q := NewQueue("retry", func(_ context.Context, job Job) error {
		attempts <- job.Attempt
		if job.Attempt < 2 {
			return errors.New("broker unavailable")
		}
		return nil
	}, QueueConfig{MaxRetries: 3, RetryDelay: 5 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "r"}))

	got := []int{}
	for len(got) < 3 {
		select {
		case a := <-attempts:
			got = append(got, a)
		case <-time.After(2 * time.Second):
			t.Fatalf("expected three attempts, got %v", got)
		}
	}
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Eventually(t, func() bool { return q.Stats().Retried == 2 }, time.Second, 10*time.Millisecond)
}

func TestQueueRejectsBeforeStartAndAfterStop(t *testing.T) {
	q := NewQueue("idle", func(context.Context, Job) error { return nil }, QueueConfig{})
	assert.Error(t, q.Enqueue(Job{ID: "x"}))

	q.Start(context.Background())
	q.Stop()
	assert.Error(t, q.Enqueue(Job{ID: "y"}))
}

func TestQueueReportsFullBuffer(t *testing.T) {
	block := make(chan struct{})
	q := NewQueue("full", func(ctx context.Context, _ Job) error {
		select {
		case <-block:
		case <-ctx.Done():
		}
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer q.Stop()
	defer close(block)

	var full error
	for i := 0; i < 5 && full == nil; i++ {
		full = q.Enqueue(Job{ID: "f"})
	}
	assert.ErrorIs(t, full, ErrQueueFull)
	assert.NotZero(t, q.Stats().Dropped)
}
