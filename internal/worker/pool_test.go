package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stubResult struct {
	err error
}

func (r *stubResult) Err() error {
	return r.err
}

type stubJob struct {
	duration  time.Duration
	shouldErr bool
	executed  *int32
}

func (j *stubJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &stubResult{err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &stubResult{err: errors.New("job error")}
	}
	return &stubResult{}
}

func TestNewPoolMinimumWorkers(t *testing.T) {
	if p := NewPool(5); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("expected minimum of 1 worker, got %d", p.workers)
	}
	if p := NewPool(-3); p.workers != 1 {
		t.Errorf("expected minimum of 1 worker, got %d", p.workers)
	}
}

func TestPoolExecutesAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	var executed int32
	for i := 0; i < 10; i++ {
		pool.Submit(&stubJob{executed: &executed})
	}

	results := pool.Wait()
	if len(results) != 10 {
		t.Errorf("expected 10 results, got %d", len(results))
	}
	if n := atomic.LoadInt32(&executed); n != 10 {
		t.Errorf("expected 10 executions, got %d", n)
	}
}

func TestPoolCollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&stubJob{})
	pool.Submit(&stubJob{shouldErr: true})
	pool.Submit(&stubJob{shouldErr: true})

	results := pool.Wait()
	errCount := 0
	for _, r := range results {
		if r.Err() != nil {
			errCount++
		}
	}
	if errCount != 2 {
		t.Errorf("expected 2 errors, got %d", errCount)
	}
}

func TestPoolShutdownCancelsInFlight(t *testing.T) {
	pool := NewPool(1)
	pool.Start()

	pool.Submit(&stubJob{duration: 5 * time.Second})

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not cancel the in-flight job")
	}
}

func TestPoolSubmitAfterShutdownIsDropped(t *testing.T) {
	pool := NewPool(1)
	pool.Start()
	pool.Shutdown()

	// Must not block or panic.
	pool.Submit(&stubJob{})
}

func TestPoolSubmitAfterWaitIsDropped(t *testing.T) {
	pool := NewPool(1)
	pool.Start()

	var executed int32
	pool.Submit(&stubJob{executed: &executed})
	results := pool.Wait()

	// Must not panic on the closed queue, and must not execute.
	pool.Submit(&stubJob{executed: &executed})

	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
	if n := atomic.LoadInt32(&executed); n != 1 {
		t.Errorf("expected 1 execution, got %d", n)
	}
}
