package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemory_EnqueueDequeue(t *testing.T) {
	q := NewMemory(4)
	ctx := context.Background()

	want := Job{OwnerID: "u1", FileID: "f1"}
	require.NoError(t, q.Enqueue(ctx, want))

	got, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestMemory_DequeueBlocksUntilEnqueue(t *testing.T) {
	q := NewMemory(1)
	ctx := context.Background()

	done := make(chan Job, 1)
	go func() {
		job, err := q.Dequeue(ctx)
		if err == nil {
			done <- job
		}
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, q.Enqueue(ctx, Job{FileID: "f2"}))

	select {
	case job := <-done:
		require.Equal(t, "f2", job.FileID)
	case <-time.After(time.Second):
		t.Fatal("dequeue never returned")
	}
}

func TestMemory_DequeueHonorsContext(t *testing.T) {
	q := NewMemory(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Dequeue(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
