// Package lookup provides a fixed-bucket hash table with separate chaining.
//
// Keys are hashed from their canonical string form (fmt's %v rendering) so
// an int package id, a truck id and a location name all share one hash
// function. Equality inside a bucket is plain == on the key.
package lookup

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"delivery-simulation-service/internal/domain"
)

// DefaultCapacity is the bucket count used when New is given a non-positive size.
const DefaultCapacity = 40

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Table is not safe for concurrent use.
type Table[K comparable, V any] struct {
	buckets [][]entry[K, V]
	count   int
}

func New[K comparable, V any](capacity int) *Table[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Table[K, V]{buckets: make([][]entry[K, V], capacity)}
}

// Hash returns the bucket-independent hash of key.
func Hash[K comparable](key K) uint64 {
	return xxhash.Sum64String(fmt.Sprint(key))
}

func (t *Table[K, V]) index(key K) int {
	return int(Hash(key) % uint64(len(t.buckets)))
}

// Insert stores value under key, overwriting any existing value.
func (t *Table[K, V]) Insert(key K, value V) {
	i := t.index(key)
	for j := range t.buckets[i] {
		if t.buckets[i][j].key == key {
			t.buckets[i][j].value = value
			return
		}
	}
	t.buckets[i] = append(t.buckets[i], entry[K, V]{key: key, value: value})
	t.count++
}

// Get returns the value stored under key or domain.ErrKeyNotFound.
func (t *Table[K, V]) Get(key K) (V, error) {
	if v, ok := t.Lookup(key); ok {
		return v, nil
	}
	var zero V
	return zero, fmt.Errorf("lookup %v: %w", key, domain.ErrKeyNotFound)
}

// Lookup is the comma-ok form of Get.
func (t *Table[K, V]) Lookup(key K) (V, bool) {
	for _, e := range t.buckets[t.index(key)] {
		if e.key == key {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Remove deletes key or returns domain.ErrKeyNotFound.
func (t *Table[K, V]) Remove(key K) error {
	i := t.index(key)
	for j, e := range t.buckets[i] {
		if e.key == key {
			t.buckets[i] = append(t.buckets[i][:j], t.buckets[i][j+1:]...)
			t.count--
			return nil
		}
	}
	return fmt.Errorf("remove %v: %w", key, domain.ErrKeyNotFound)
}

func (t *Table[K, V]) ContainsKey(key K) bool {
	_, ok := t.Lookup(key)
	return ok
}

func (t *Table[K, V]) Len() int { return t.count }

// Keys lists keys in bucket order, then insertion order within a bucket.
func (t *Table[K, V]) Keys() []K {
	out := make([]K, 0, t.count)
	for _, b := range t.buckets {
		for _, e := range b {
			out = append(out, e.key)
		}
	}
	return out
}

// Values lists values in the same order as Keys.
func (t *Table[K, V]) Values() []V {
	out := make([]V, 0, t.count)
	for _, b := range t.buckets {
		for _, e := range b {
			out = append(out, e.value)
		}
	}
	return out
}
