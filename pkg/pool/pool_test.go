package pool

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestAddAndSize(t *testing.T) {
	p := New[string]()

	if !p.Empty() {
		t.Fatal("New pool should be empty")
	}

	for i, name := range []string{"a", "b", "c"} {
		if err := p.Add(name); err != nil {
			t.Fatalf("Failed to add resource %d: %v", i, err)
		}
	}

	if p.Size() != 3 {
		t.Errorf("Expected size 3, got %d", p.Size())
	}
	if p.Empty() {
		t.Error("Pool with resources should not be empty")
	}
}

func TestAcquireReturnsAddedResource(t *testing.T) {
	p := New[string]()
	if err := p.Add("only"); err != nil {
		t.Fatalf("Failed to add resource: %v", err)
	}

	lease, err := p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire: %v", err)
	}

	if lease.Resource() != "only" {
		t.Errorf("Expected resource 'only', got '%s'", lease.Resource())
	}
	if !p.Empty() {
		t.Error("Pool should be empty while its one resource is leased")
	}
}

func TestConservation(t *testing.T) {
	p := New[int]()
	const n = 5

	for i := 0; i < n; i++ {
		if err := p.Add(i); err != nil {
			t.Fatalf("Failed to add resource %d: %v", i, err)
		}
	}

	leases := make([]*Lease[int], 0, n)
	for i := 0; i < n; i++ {
		lease, err := p.Acquire()
		if err != nil {
			t.Fatalf("Failed to acquire resource %d: %v", i, err)
		}
		leases = append(leases, lease)
	}

	if !p.Empty() {
		t.Errorf("Expected empty pool after draining, size %d", p.Size())
	}
	if p.Leased() != n {
		t.Errorf("Expected %d leased, got %d", n, p.Leased())
	}

	for i, lease := range leases {
		if err := lease.Release(); err != nil {
			t.Fatalf("Failed to release lease %d: %v", i, err)
		}
	}

	if p.Size() != n {
		t.Errorf("Expected size %d after returning everything, got %d", n, p.Size())
	}
	if p.Leased() != 0 {
		t.Errorf("Expected 0 leased, got %d", p.Leased())
	}
}

func TestReleaseOrderIndependent(t *testing.T) {
	p := New[string]()
	p.Add("a")
	p.Add("b")

	first, err := p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire first: %v", err)
	}
	second, err := p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire second: %v", err)
	}

	// Return in the opposite order of borrowing
	if err := second.Release(); err != nil {
		t.Fatalf("Failed to release second: %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("Failed to release first: %v", err)
	}

	if p.Size() != 2 {
		t.Errorf("Expected size 2, got %d", p.Size())
	}

	lease, err := p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire after returns: %v", err)
	}
	lease.Release()
}

func TestAcquireExhausted(t *testing.T) {
	p := New[string]()

	lease, err := p.Acquire()
	if !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("Expected ErrPoolExhausted, got %v", err)
	}
	if lease != nil {
		t.Error("Lease should be nil on exhaustion")
	}

	// A failed borrow must leave the pool usable
	if err := p.Add("late"); err != nil {
		t.Fatalf("Failed to add after exhaustion: %v", err)
	}
	lease, err = p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire after add: %v", err)
	}
	if lease.Resource() != "late" {
		t.Errorf("Expected resource 'late', got '%s'", lease.Resource())
	}
}

func TestExhaustionDoesNotMutate(t *testing.T) {
	p := New[string]()
	p.Add("a")

	held, err := p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire: %v", err)
	}

	if _, err := p.Acquire(); !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("Expected ErrPoolExhausted, got %v", err)
	}

	stats := p.Stats()
	if stats.Idle != 0 || stats.Leased != 1 {
		t.Errorf("Expected idle 0 leased 1, got idle %d leased %d", stats.Idle, stats.Leased)
	}
	if stats.Exhausted != 1 {
		t.Errorf("Expected 1 exhausted borrow, got %d", stats.Exhausted)
	}

	if err := held.Release(); err != nil {
		t.Fatalf("Failed to release: %v", err)
	}
	if p.Size() != 1 {
		t.Errorf("Expected size 1, got %d", p.Size())
	}
}

func TestTwoResourceScenario(t *testing.T) {
	p := New[string]()
	p.Add("A")
	p.Add("B")

	first, err := p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire first: %v", err)
	}
	second, err := p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire second: %v", err)
	}

	// Between them the two leases must hold exactly A and B, in either order
	got := map[string]bool{first.Resource(): true, second.Resource(): true}
	if !got["A"] || !got["B"] {
		t.Errorf("Expected leases over A and B, got %v", got)
	}

	if _, err := p.Acquire(); !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("Expected ErrPoolExhausted, got %v", err)
	}

	returned := first.Resource()
	if err := first.Release(); err != nil {
		t.Fatalf("Failed to release: %v", err)
	}

	again, err := p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire after release: %v", err)
	}
	if again.Resource() != returned {
		t.Errorf("Expected returned resource '%s', got '%s'", returned, again.Resource())
	}
}

func TestConcurrentBorrowReturn(t *testing.T) {
	p := New[int]()
	const resources = 4
	const workers = 8
	const iterations = 50

	for i := 0; i < resources; i++ {
		p.Add(i)
	}

	var borrows atomic.Int64
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				lease, err := p.AcquireContext(context.Background())
				if err != nil {
					t.Errorf("Failed to acquire: %v", err)
					return
				}
				borrows.Add(1)
				if err := lease.Release(); err != nil {
					t.Errorf("Failed to release: %v", err)
					return
				}
			}
		}()
	}

	wg.Wait()

	if borrows.Load() != workers*iterations {
		t.Errorf("Expected %d borrows, got %d", workers*iterations, borrows.Load())
	}

	stats := p.Stats()
	if stats.Idle != resources {
		t.Errorf("Expected %d idle after all returns, got %d", resources, stats.Idle)
	}
	if stats.Leased != 0 {
		t.Errorf("Expected 0 leased, got %d", stats.Leased)
	}
	if stats.Acquires != stats.Releases {
		t.Errorf("Borrow/return counts diverged: %d acquires, %d releases", stats.Acquires, stats.Releases)
	}
}

func TestAcquireContextBlocksUntilRelease(t *testing.T) {
	p := New[string]()
	p.Add("shared")

	held, err := p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire: %v", err)
	}

	got := make(chan string, 1)
	go func() {
		lease, err := p.AcquireContext(context.Background())
		if err != nil {
			t.Errorf("Blocked acquire failed: %v", err)
			close(got)
			return
		}
		got <- lease.Resource()
		lease.Release()
	}()

	select {
	case <-got:
		t.Fatal("AcquireContext should block while the resource is leased")
	case <-time.After(50 * time.Millisecond):
	}

	if err := held.Release(); err != nil {
		t.Fatalf("Failed to release: %v", err)
	}

	select {
	case resource := <-got:
		if resource != "shared" {
			t.Errorf("Expected resource 'shared', got '%s'", resource)
		}
	case <-time.After(time.Second):
		t.Fatal("Blocked acquire was not woken by the release")
	}
}

func TestAcquireContextWokenByAdd(t *testing.T) {
	p := New[string]()

	got := make(chan string, 1)
	go func() {
		lease, err := p.AcquireContext(context.Background())
		if err != nil {
			t.Errorf("Blocked acquire failed: %v", err)
			close(got)
			return
		}
		got <- lease.Resource()
		lease.Release()
	}()

	// Give the borrower time to block before the resource arrives
	time.Sleep(20 * time.Millisecond)

	if err := p.Add("fresh"); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}

	select {
	case resource := <-got:
		if resource != "fresh" {
			t.Errorf("Expected resource 'fresh', got '%s'", resource)
		}
	case <-time.After(time.Second):
		t.Fatal("Blocked acquire was not woken by the add")
	}
}

func TestAcquireContextCancelled(t *testing.T) {
	p := New[string]()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := p.AcquireContext(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected DeadlineExceeded, got %v", err)
	}

	stats := p.Stats()
	if stats.Waiting != 0 {
		t.Errorf("Expected 0 waiting after cancellation, got %d", stats.Waiting)
	}

	// The pool stays usable after a cancelled borrow
	p.Add("a")
	lease, err := p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire after cancellation: %v", err)
	}
	lease.Release()
}

func TestCancelledBorrowConservesResources(t *testing.T) {
	p := New[string]()
	p.Add("one")

	held, err := p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := p.AcquireContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected DeadlineExceeded, got %v", err)
	}

	if err := held.Release(); err != nil {
		t.Fatalf("Failed to release: %v", err)
	}

	if p.Size() != 1 {
		t.Errorf("Expected size 1 after cancellation and release, got %d", p.Size())
	}
	if p.Leased() != 0 {
		t.Errorf("Expected 0 leased, got %d", p.Leased())
	}
}

func TestCancelReleaseRace(t *testing.T) {
	p := New[string]()
	p.Add("contended")

	const rounds = 300
	var served, cancelled atomic.Int64

	for i := 0; i < rounds; i++ {
		held, err := p.Acquire()
		if err != nil {
			t.Fatalf("Failed to acquire round %d: %v", i, err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			lease, err := p.AcquireContext(ctx)
			switch {
			case err == nil:
				served.Add(1)
				if err := lease.Release(); err != nil {
					t.Errorf("Failed to release: %v", err)
				}
			case errors.Is(err, context.Canceled):
				cancelled.Add(1)
			default:
				t.Errorf("Unexpected acquire error: %v", err)
			}
		}()

		// Wait for the borrower to join the waiter queue so the cancel
		// and the release genuinely collide
		deadline := time.Now().Add(time.Second)
		for p.Stats().Waiting == 0 {
			if time.Now().After(deadline) {
				t.Fatal("Borrower never joined the waiter queue")
			}
			runtime.Gosched()
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			cancel()
		}()
		go func() {
			defer wg.Done()
			if err := held.Release(); err != nil {
				t.Errorf("Failed to release held lease: %v", err)
			}
		}()
		wg.Wait()
		<-done

		// Whether the borrower was served or gave up, the resource must
		// be back in the pool before the next round
		stats := p.Stats()
		if stats.Idle != 1 || stats.Leased != 0 || stats.Waiting != 0 {
			t.Fatalf("Round %d left the pool inconsistent: %+v", i, stats)
		}
	}

	if served.Load()+cancelled.Load() != rounds {
		t.Errorf("Expected %d outcomes, got %d served and %d cancelled",
			rounds, served.Load(), cancelled.Load())
	}
}

func TestConcurrentTimeoutsConserveResources(t *testing.T) {
	p := New[int]()
	const resources = 2
	const workers = 8
	const rounds = 150

	for i := 0; i < resources; i++ {
		p.Add(i)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				timeout := time.Duration((seed+i)%5) * time.Microsecond
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				lease, err := p.AcquireContext(ctx)
				cancel()
				if err != nil {
					if !errors.Is(err, context.DeadlineExceeded) {
						t.Errorf("Unexpected acquire error: %v", err)
						return
					}
					continue
				}
				if err := lease.Release(); err != nil {
					t.Errorf("Failed to release: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	stats := p.Stats()
	if stats.Idle != resources {
		t.Errorf("Expected %d idle after all borrowers finished, got %d", resources, stats.Idle)
	}
	if stats.Leased != 0 {
		t.Errorf("Expected 0 leased, got %d", stats.Leased)
	}
	if stats.Waiting != 0 {
		t.Errorf("Expected 0 waiting, got %d", stats.Waiting)
	}
	if stats.Acquires != stats.Releases {
		t.Errorf("Borrow/return counts diverged: %d acquires, %d releases", stats.Acquires, stats.Releases)
	}
}

func TestCloseFailsWaiters(t *testing.T) {
	p := New[string]()

	errs := make(chan error, 1)
	go func() {
		_, err := p.AcquireContext(context.Background())
		errs <- err
	}()

	time.Sleep(20 * time.Millisecond)

	if err := p.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	select {
	case err := <-errs:
		if !errors.Is(err, ErrPoolClosed) {
			t.Errorf("Expected ErrPoolClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Blocked acquire was not failed by Close")
	}
}

func TestCloseDiscardsIdle(t *testing.T) {
	var discarded atomic.Int64
	p := NewWithCleanup(func(string) { discarded.Add(1) })

	p.Add("a")
	p.Add("b")
	p.Add("c")

	if err := p.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	if discarded.Load() != 3 {
		t.Errorf("Expected 3 discarded resources, got %d", discarded.Load())
	}
	if p.Size() != 0 {
		t.Errorf("Expected size 0 after close, got %d", p.Size())
	}

	// Close is idempotent
	if err := p.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}

	if err := p.Add("late"); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Expected ErrPoolClosed on add, got %v", err)
	}
	if discarded.Load() != 4 {
		t.Errorf("Expected the late add to be discarded, got %d", discarded.Load())
	}

	if _, err := p.Acquire(); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Expected ErrPoolClosed on acquire, got %v", err)
	}
	if _, err := p.AcquireContext(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Expected ErrPoolClosed on blocking acquire, got %v", err)
	}
}

func TestReleaseAfterCloseDiscards(t *testing.T) {
	var discarded atomic.Int64
	p := NewWithCleanup(func(string) { discarded.Add(1) })
	p.Add("a")

	lease, err := p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire: %v", err)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	if err := lease.Release(); err != nil {
		t.Fatalf("Release after close failed: %v", err)
	}
	if discarded.Load() != 1 {
		t.Errorf("Expected released resource to be discarded, got %d", discarded.Load())
	}
	if p.Size() != 0 {
		t.Errorf("Expected size 0, got %d", p.Size())
	}
}

func TestStatsCounters(t *testing.T) {
	p := New[string]()
	p.Add("a")

	lease, err := p.Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire: %v", err)
	}
	if _, err := p.Acquire(); !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("Expected ErrPoolExhausted, got %v", err)
	}
	if err := lease.Release(); err != nil {
		t.Fatalf("Failed to release: %v", err)
	}

	stats := p.Stats()
	if stats.Acquires != 1 {
		t.Errorf("Expected 1 acquire, got %d", stats.Acquires)
	}
	if stats.Releases != 1 {
		t.Errorf("Expected 1 release, got %d", stats.Releases)
	}
	if stats.Exhausted != 1 {
		t.Errorf("Expected 1 exhausted borrow, got %d", stats.Exhausted)
	}
	if stats.Idle != 1 || stats.Leased != 0 || stats.Waiting != 0 {
		t.Errorf("Unexpected gauges: %+v", stats)
	}
}
