package service

import (
	"sync"
	"testing"
)

func TestKeyedLocksMutualExclusion(t *testing.T) {
	var locks keyedLocks

	const workers = 50
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := locks.acquire("a")
			counter++
			locks.release("a", e)
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

// Entries must be reclaimed once released, whatever path the holder took
// out; otherwise abandoned sessions pin map entries forever.
func TestKeyedLocksReclaimsEntries(t *testing.T) {
	var locks keyedLocks

	a := locks.acquire("a")
	b := locks.acquire("b")
	if got := locks.len(); got != 2 {
		t.Fatalf("entries = %d, want 2", got)
	}

	locks.release("a", a)
	if got := locks.len(); got != 1 {
		t.Errorf("entries = %d after releasing one key, want 1", got)
	}

	locks.release("b", b)
	if got := locks.len(); got != 0 {
		t.Errorf("entries = %d after releasing all keys, want 0", got)
	}
}

// A second holder on the same key keeps the entry alive until it
// releases too.
func TestKeyedLocksWaiterKeepsEntry(t *testing.T) {
	var locks keyedLocks

	first := locks.acquire("a")
	done := make(chan struct{})
	go func() {
		e := locks.acquire("a")
		locks.release("a", e)
		close(done)
	}()

	locks.release("a", first)
	<-done

	if got := locks.len(); got != 0 {
		t.Errorf("entries = %d after all holders released, want 0", got)
	}
}
