package parallel

import (
	"sync/atomic"
	"testing"
)

func TestNewPool(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		wantMin int
	}{
		{name: "explicit", workers: 4, wantMin: 4},
		{name: "zero uses GOMAXPROCS", workers: 0, wantMin: 1},
		{name: "negative uses GOMAXPROCS", workers: -1, wantMin: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool(tt.workers)
			defer p.Close()

			if p.Workers() < tt.wantMin {
				t.Errorf("Workers() = %d, want >= %d", p.Workers(), tt.wantMin)
			}
			if tt.workers > 0 && p.Workers() != tt.workers {
				t.Errorf("Workers() = %d, want %d", p.Workers(), tt.workers)
			}
			if !p.Running() {
				t.Error("fresh pool is not running")
			}
		})
	}
}

func TestExecuteAll(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	const n = 1000
	var counter atomic.Int64
	work := make([]func(), n)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	p.ExecuteAll(work)
	if got := counter.Load(); got != n {
		t.Errorf("executed %d items, want %d", got, n)
	}

	// Second batch on the same pool.
	counter.Store(0)
	p.ExecuteAll(work[:100])
	if got := counter.Load(); got != 100 {
		t.Errorf("executed %d items, want 100", got)
	}
}

func TestExecuteAllEmpty(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	p.ExecuteAll(nil)
	p.ExecuteAll([]func(){})
}

func TestExecuteAllMoreWorkThanWorkers(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	var counter atomic.Int64
	work := make([]func(), 256)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	p.ExecuteAll(work)

	if got := counter.Load(); got != 256 {
		t.Errorf("executed %d items, want 256", got)
	}
}

func TestSubmit(t *testing.T) {
	p := NewPool(2)

	done := make(chan struct{})
	p.Submit(func() { close(done) })
	<-done

	p.Submit(nil) // no-op
	p.Close()
}

func TestClose(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close() // idempotent

	if p.Running() {
		t.Error("pool reports running after Close")
	}

	// Work after Close is discarded, not deadlocked.
	var counter atomic.Int64
	p.ExecuteAll([]func(){func() { counter.Add(1) }})
	p.Submit(func() { counter.Add(1) })
	if got := counter.Load(); got != 0 {
		t.Errorf("closed pool executed %d items", got)
	}
}
