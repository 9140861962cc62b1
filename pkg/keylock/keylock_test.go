package keylock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortedUnique(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, SortedUnique([]string{"C", "A", "B", "A"}))
	assert.Empty(t, SortedUnique(nil))
}

func TestLock_SerializaMismaClave(t *testing.T) {
	k := New()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("PRD-1")
			defer unlock()
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assertLibre(t, k, "PRD-1")
}

func TestLockAll_OrdenesCruzadosNoInterbloquean(t *testing.T) {
	k := New()
	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				k.LockAll([]string{"A", "B"})()
			}()
			go func() {
				defer wg.Done()
				k.LockAll([]string{"B", "A", "B"})()
			}()
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("interbloqueo al adquirir claves en distinto orden")
	}
	assertLibre(t, k, "A")
	assertLibre(t, k, "B")
}

func TestLock_ClavesDistintasNoSeBloquean(t *testing.T) {
	k := New()
	unlock := k.Lock("PRD-1")
	defer unlock()

	assertLibre(t, k, "PRD-2")
}

// assertLibre falla si la clave sigue tomada.
func assertLibre(t *testing.T, k *KeyLock, key string) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		k.Lock(key)()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("la clave %s sigue bloqueada", key)
	}
}
