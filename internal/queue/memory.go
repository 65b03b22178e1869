package queue

import "context"

// Memory is a channel-backed queue for single-process deployments and tests.
type Memory struct {
	jobs chan Job
}

func NewMemory(capacity int) *Memory {
	return &Memory{jobs: make(chan Job, capacity)}
}

func (m *Memory) Enqueue(ctx context.Context, job Job) error {
	select {
	case m.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Memory) Dequeue(ctx context.Context) (Job, error) {
	select {
	case job := <-m.jobs:
		return job, nil
	case <-ctx.Done():
		return Job{}, ctx.Err()
	}
}

// Len reports the number of pending jobs. Test helper.
func (m *Memory) Len() int {
	return len(m.jobs)
}
