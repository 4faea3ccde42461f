package own

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// TestMutex_TryAcquireScenario walks the canonical non-blocking sequence:
// A holds the lock, B's TryAcquire returns busy; A releases, B's next
// TryAcquire succeeds.
func TestMutex_TryAcquireScenario(t *testing.T) {
	mu := NewMutex(0)

	a, err := mu.Acquire()
	require.NoError(t, err)

	_, err = mu.TryAcquire()
	assert.ErrorIs(t, err, ErrBusy)

	a.Release()

	b, err := mu.TryAcquire()
	require.NoError(t, err)
	b.Release()
}

// TestMutex_MutualExclusion tests that at no observable instant do two
// goroutines hold a live guard.
func TestMutex_MutualExclusion(t *testing.T) {
	const workers = 8
	const rounds = 200

	mu := NewMutex(0)
	var inCritical atomic.Int32

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := 0; j < rounds; j++ {
				guard, err := mu.Acquire()
				if err != nil {
					return err
				}
				if n := inCritical.Add(1); n != 1 {
					t.Errorf("%d goroutines inside the critical section", n)
				}
				*guard.Get()++
				inCritical.Add(-1)
				guard.Release()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	guard, err := mu.Acquire()
	require.NoError(t, err)
	assert.Equal(t, workers*rounds, *guard.Get(),
		"every increment must be visible to the next acquirer")
	guard.Release()
}

// TestMutex_AcquireBlocksUntilRelease tests that a second acquirer is
// unblocked only after the first guard is destroyed.
func TestMutex_AcquireBlocksUntilRelease(t *testing.T) {
	mu := NewMutex(0)
	var released atomic.Bool

	a, err := mu.Acquire()
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		b, err := mu.Acquire()
		if err != nil {
			t.Error(err)
			close(acquired)
			return
		}
		if !released.Load() {
			t.Error("second acquirer ran before the first guard was released")
		}
		b.Release()
		close(acquired)
	}()

	// Give the waiter time to park, then release.
	time.Sleep(20 * time.Millisecond)
	released.Store(true)
	a.Release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter was never woken by the release")
	}
}

// TestMutex_AcquireTimeout tests the bounded wait: timeout on a held lock
// fails with ErrTimedOut and leaves the lock state unchanged.
func TestMutex_AcquireTimeout(t *testing.T) {
	mu := NewMutex("payload")

	a, err := mu.Acquire()
	require.NoError(t, err)

	_, err = mu.AcquireTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, ErrTimedOut)

	// The failed wait queued nothing: a single release frees the lock.
	a.Release()
	b, err := mu.TryAcquire()
	require.NoError(t, err)

	// And a free lock is acquired well within the deadline.
	b.Release()
	c, err := mu.AcquireTimeout(time.Second)
	require.NoError(t, err)
	c.Release()
}

// TestMutex_GuardDoubleReleaseIsFatal tests exactly-once release.
func TestMutex_GuardDoubleReleaseIsFatal(t *testing.T) {
	mu := NewMutex(0)

	g, err := mu.Acquire()
	require.NoError(t, err)
	g.Release()
	assert.Panics(t, func() { g.Release() })

	// The lock itself is still usable and unlocked.
	g2, err := mu.TryAcquire()
	require.NoError(t, err)
	g2.Release()
}

// TestMutex_GuardUseAfterReleaseIsFatal tests that a released guard no
// longer proves access.
func TestMutex_GuardUseAfterReleaseIsFatal(t *testing.T) {
	mu := NewMutex(0)

	g, err := mu.Acquire()
	require.NoError(t, err)
	g.Release()
	assert.Panics(t, func() { _ = *g.Get() })
}

// TestMutex_DropWhileHeldIsFatal tests the lock-held-on-destroy condition.
func TestMutex_DropWhileHeldIsFatal(t *testing.T) {
	mu := NewMutex(0)

	g, err := mu.Acquire()
	require.NoError(t, err)

	assert.Panics(t, func() { _ = mu.Drop() })

	// The failed destroy must not have corrupted the lock.
	g.Release()
	g2, err := mu.TryAcquire()
	require.NoError(t, err)
	g2.Release()
}

// TestMutex_DropRunsDestructorAndKillsLock tests the unlocked destroy path.
func TestMutex_DropRunsDestructorAndKillsLock(t *testing.T) {
	tr := &dropTracker{}
	mu := NewMutex(tr)

	require.NoError(t, mu.Drop())
	assert.Equal(t, 1, tr.drops)

	_, err := mu.Acquire()
	assert.ErrorIs(t, err, ErrUseAfterMove)
	_, err = mu.TryAcquire()
	assert.ErrorIs(t, err, ErrUseAfterMove)
	_, err = mu.AcquireTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, ErrUseAfterMove)

	assert.ErrorIs(t, mu.Drop(), ErrUseAfterMove)
	assert.Equal(t, 1, tr.drops, "destructor must not run twice")
}

// TestMutex_ReleaseWakesExactlyOne tests that each release admits exactly
// one of the parked waiters.
func TestMutex_ReleaseWakesExactlyOne(t *testing.T) {
	const waiters = 3

	mu := NewMutex(0)
	var acquired atomic.Int32
	proceed := make(chan struct{})
	done := make(chan struct{}, waiters)

	a, err := mu.Acquire()
	require.NoError(t, err)

	for i := 0; i < waiters; i++ {
		go func() {
			g, err := mu.Acquire()
			if err != nil {
				t.Error(err)
				return
			}
			acquired.Add(1)
			<-proceed // hold the lock until the test advances us
			g.Release()
			done <- struct{}{}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), acquired.Load(), "no waiter may run while the lock is held")

	a.Release()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), acquired.Load(), "one release must admit exactly one waiter")

	// Advance the chain; each release admits the next waiter.
	for i := 0; i < waiters; i++ {
		proceed <- struct{}{}
		<-done
	}
	assert.Equal(t, int32(waiters), acquired.Load())
}
