package counter

import (
	"sync"
	"testing"
)

// TestPlain_Lifecycle tests the create/clone/drop counting sequence.
func TestPlain_Lifecycle(t *testing.T) {
	var c Plain

	c.Init()
	if c.Count() != 1 {
		t.Errorf("Expected count = 1 after Init, got %d", c.Count())
	}

	c.Incr()
	if c.Count() != 2 {
		t.Errorf("Expected count = 2 after Incr, got %d", c.Count())
	}

	if rem := c.Decr(); rem != 1 {
		t.Errorf("Expected Decr to return 1, got %d", rem)
	}
	if rem := c.Decr(); rem != 0 {
		t.Errorf("Expected final Decr to return 0, got %d", rem)
	}
}

// TestAtomic_Lifecycle tests the same sequence on the atomic variant.
func TestAtomic_Lifecycle(t *testing.T) {
	var c Atomic

	c.Init()
	if c.Count() != 1 {
		t.Errorf("Expected count = 1 after Init, got %d", c.Count())
	}

	c.Incr()
	c.Incr()
	if c.Count() != 3 {
		t.Errorf("Expected count = 3, got %d", c.Count())
	}

	if rem := c.Decr(); rem != 2 {
		t.Errorf("Expected Decr to return 2, got %d", rem)
	}
}

// TestAtomic_ConcurrentZeroObserver tests that exactly one of many
// concurrent decrements observes the transition to zero.
func TestAtomic_ConcurrentZeroObserver(t *testing.T) {
	const handles = 64

	var c Atomic
	c.Init()
	for i := 1; i < handles; i++ {
		c.Incr()
	}

	var wg sync.WaitGroup
	zeroObservers := make(chan int64, handles)

	for i := 0; i < handles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Decr() == 0 {
				zeroObservers <- 1
			}
		}()
	}
	wg.Wait()
	close(zeroObservers)

	observers := 0
	for range zeroObservers {
		observers++
	}
	if observers != 1 {
		t.Errorf("Expected exactly 1 goroutine to observe zero, got %d", observers)
	}
	if c.Count() != 0 {
		t.Errorf("Expected final count = 0, got %d", c.Count())
	}
}

// TestAtomic_ConcurrentInterleaving tests balanced concurrent incr/decr
// pairs never push the count to zero while handles remain.
func TestAtomic_ConcurrentInterleaving(t *testing.T) {
	const workers = 16
	const rounds = 1000

	var c Atomic
	c.Init()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				c.Incr() // clone
				if rem := c.Decr(); rem < 1 {
					t.Errorf("Count dropped to %d while the original handle is live", rem)
					return
				}
			}
		}()
	}
	wg.Wait()

	if c.Count() != 1 {
		t.Errorf("Expected count = 1 after balanced clone/drop, got %d", c.Count())
	}
}
