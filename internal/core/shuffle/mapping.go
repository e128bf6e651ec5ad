package shuffle

import (
	"fmt"
	"math/rand"
)

// Source is the subset of *rand.Rand the engine draws from.
type Source interface {
	Intn(n int) int
}

// NewSource returns the deterministic generator used for a randomization run.
//
// math/rand sequences for a given seed are stable across platforms and Go
// releases, which is what makes a shared seed reproduce the same result.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Mapping is an immutable id to id re-pairing.
//
// Keys keep the order of the ids BuildMapping was given. Values are a
// permutation of the keys.
type Mapping struct {
	keys  []int
	pairs map[int]int
}

// BuildMapping draws a re-pairing of ids without replacement.
//
// # Determinism
//
// For every id in input order one index into the shrinking pool of remaining
// ids is drawn with rng.Intn; the id at that index is removed from the pool and
// bound to the current id. The same ids and the same generator state always
// produce the same Mapping.
//
// # Edge cases
//
//   - An empty id sequence produces an empty Mapping and draws nothing.
//   - Repeated ids are collapsed to their first occurrence before drawing.
func BuildMapping(ids []int, rng Source) Mapping {
	keys := dedupe(ids)
	m := Mapping{
		keys:  keys,
		pairs: make(map[int]int, len(keys)),
	}
	if len(keys) == 0 {
		return m
	}

	pool := make([]int, len(keys))
	copy(pool, keys)
	for _, id := range keys {
		r := rng.Intn(len(pool))
		m.pairs[id] = pool[r]
		pool = append(pool[:r], pool[r+1:]...)
	}
	return m
}

// FromPairs builds a Mapping from explicit pairs, mostly for fixtures and
// stored runs. keys fixes the iteration order; every key must have a pair and
// the values must be a permutation of the keys.
func FromPairs(keys []int, pairs map[int]int) (Mapping, error) {
	keys = dedupe(keys)
	if len(keys) != len(pairs) {
		return Mapping{}, fmt.Errorf("%w: %d keys, %d pairs", ErrNotPermutation, len(keys), len(pairs))
	}
	seen := make(map[int]struct{}, len(keys))
	m := Mapping{keys: keys, pairs: make(map[int]int, len(keys))}
	for _, key := range keys {
		value, ok := pairs[key]
		if !ok {
			return Mapping{}, fmt.Errorf("%w: key %d has no pair", ErrNotPermutation, key)
		}
		if _, dup := seen[value]; dup {
			return Mapping{}, fmt.Errorf("%w: value %d repeated", ErrNotPermutation, value)
		}
		seen[value] = struct{}{}
		m.pairs[key] = value
	}
	for value := range seen {
		if _, ok := m.pairs[value]; !ok {
			return Mapping{}, fmt.Errorf("%w: value %d is not a key", ErrNotPermutation, value)
		}
	}
	return m, nil
}

// Len returns the number of ids in the mapping.
func (m Mapping) Len() int {
	return len(m.keys)
}

// Keys returns the mapped ids in draw order.
func (m Mapping) Keys() []int {
	out := make([]int, len(m.keys))
	copy(out, m.keys)
	return out
}

// Contains reports whether id is in the mapping's domain.
func (m Mapping) Contains(id int) bool {
	_, ok := m.pairs[id]
	return ok
}

// Lookup returns the id paired with id.
func (m Mapping) Lookup(id int) (int, bool) {
	v, ok := m.pairs[id]
	return v, ok
}

// MustLookup returns the id paired with id and panics when id is outside the
// mapping's domain. Callers only use it on ids taken from Keys.
func (m Mapping) MustLookup(id int) int {
	v, ok := m.pairs[id]
	if !ok {
		panic(fmt.Sprintf("shuffle: id %d is not in mapping domain", id))
	}
	return v
}

// Pairs returns a copy of the mapping as a plain map.
func (m Mapping) Pairs() map[int]int {
	out := make(map[int]int, len(m.pairs))
	for k, v := range m.pairs {
		out[k] = v
	}
	return out
}

// Each calls fn for every pair in draw order.
func (m Mapping) Each(fn func(from, to int)) {
	for _, id := range m.keys {
		fn(id, m.pairs[id])
	}
}

func dedupe(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
