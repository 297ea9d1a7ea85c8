package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]bool)
	done := make(chan struct{}, 3)

	q := NewQueue("test", func(_ context.Context, job Job) error {
		mu.Lock()
		seen[job.ID] = true
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 2, BufferSize: 8})

	q.Start(context.Background())
	defer q.Stop()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(Job{ID: id, Type: "test"}))
	}

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 3)
}

func TestQueueEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("test", func(context.Context, Job) error { return nil }, QueueConfig{})
	err := q.Enqueue(Job{ID: "early"})
	assert.Error(t, err)
}

func TestQueueStampsEnqueueTime(t *testing.T) {
	received := make(chan Job, 1)
	q := NewQueue("test", func(_ context.Context, job Job) error {
		received <- job
		return nil
	}, QueueConfig{Workers: 1})

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "j1"}))
	select {
	case job := <-received:
		assert.False(t, job.Enqueued.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job")
	}
}

func TestQueueHandlerErrorDoesNotStopWorkers(t *testing.T) {
	done := make(chan string, 2)
	q := NewQueue("test", func(_ context.Context, job Job) error {
		done <- job.ID
		if job.ID == "bad" {
			return assert.AnError
		}
		return nil
	}, QueueConfig{Workers: 1})

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "bad"}))
	require.NoError(t, q.Enqueue(Job{ID: "good"}))

	var ids []string
	for i := 0; i < 2; i++ {
		select {
		case id := <-done:
			ids = append(ids, id)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}
	assert.Equal(t, []string{"bad", "good"}, ids)
}
