package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewBarrier_Invalid(t *testing.T) {
	if _, err := NewBarrier(0); err == nil {
		t.Error("Expected error for zero parties")
	}
	if _, err := NewBarrier(-3); err == nil {
		t.Error("Expected error for negative parties")
	}
}

func TestBarrier_SingleCycle(t *testing.T) {
	const parties = 4
	b, err := NewBarrier(parties)
	if err != nil {
		t.Fatalf("NewBarrier failed: %v", err)
	}

	var before atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < parties; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			before.Add(1)
			b.Await()
			// Everyone must have arrived before anyone is released.
			if got := before.Load(); got != parties {
				t.Errorf("Released with %d/%d arrived", got, parties)
			}
		}()
	}
	wg.Wait()
}

func TestBarrier_ReusableAcrossCycles(t *testing.T) {
	const parties = 3
	const cycles = 500

	b, err := NewBarrier(parties)
	if err != nil {
		t.Fatalf("NewBarrier failed: %v", err)
	}

	// Each participant bumps a per-cycle counter; if the barrier ever lets
	// a participant run ahead, the counters diverge by more than one cycle.
	counters := make([]atomic.Int32, parties)
	var wg sync.WaitGroup
	for i := 0; i < parties; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for c := 0; c < cycles; c++ {
				counters[id].Add(1)
				b.Await()
				for other := range counters {
					if got := counters[other].Load(); got != int32(c+1) {
						t.Errorf("cycle %d: participant %d saw counter %d", c, other, got)
						return
					}
				}
				b.Await()
			}
		}(i)
	}
	wg.Wait()
}

func TestBarrier_Parties(t *testing.T) {
	b, err := NewBarrier(7)
	if err != nil {
		t.Fatalf("NewBarrier failed: %v", err)
	}
	if b.Parties() != 7 {
		t.Errorf("Expected 7 parties, got %d", b.Parties())
	}
}

func TestBarrier_LastArriverReleasesPromptly(t *testing.T) {
	b, err := NewBarrier(2)
	if err != nil {
		t.Fatalf("NewBarrier failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		b.Await()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("Participant released before the barrier was full")
	default:
	}

	b.Await()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Participant not released after the barrier filled")
	}
}
