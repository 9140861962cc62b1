// Package keylock ordena la toma de locks por clave sobre moby/locker.
package keylock

import (
	"sort"

	"github.com/moby/locker"
)

// KeyLock serializa el trabajo por clave (p. ej. id de producto).
type KeyLock struct {
	locks *locker.Locker
}

// New crea un KeyLock vacío.
func New() *KeyLock {
	return &KeyLock{locks: locker.New()}
}

// Lock bloquea una clave y devuelve la función que la libera.
func (k *KeyLock) Lock(key string) func() {
	k.locks.Lock(key)
	return func() {
		// Solo falla si la clave no está tomada, y aquí siempre lo está.
		_ = k.locks.Unlock(key)
	}
}

// LockAll bloquea varias claves en orden lexicográfico, sin duplicados.
// El orden global evita interbloqueos entre llamadas que comparten claves.
func (k *KeyLock) LockAll(keys []string) func() {
	ordered := SortedUnique(keys)
	unlocks := make([]func(), 0, len(ordered))
	for _, key := range ordered {
		unlocks = append(unlocks, k.Lock(key))
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

// SortedUnique devuelve las claves ordenadas y sin repetir.
func SortedUnique(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
