// Package arena implements an append-only store that owns every node of one
// graph-construction session.
//
// Ownership model:
//   - Lifetime: the only strong owner of the storage. Release tears the whole
//     store down at once; there is no per-slot destruction.
//   - Ref: a copyable, non-owning reference used to allocate and resolve slots.
//   - Slots are addressed by index. Indices are never reused or compacted.
//
// Resolving a slot after Release, or resolving a slot that was never allocated,
// is a programming error and panics. The store is not safe for concurrent use.
//
// Example:
//
//	life, ref := arena.Build[float64]()
//	defer life.Release()
//
//	i := ref.Alloc(4.2)
//	*ref.At(i) += 1
package arena

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Invariant violations reported (via panic) when a slot cannot be resolved.
var (
	ErrReleased = errors.New("arena lifetime has ended")
	ErrDangling = errors.New("arena slot does not exist")
)

// store holds the slots. A nil store.items with released set means the
// lifetime guard has been released.
type store[V any] struct {
	id       uuid.UUID
	items    []V
	released bool
}

// Lifetime is the exclusive owner of an arena's storage.
type Lifetime[V any] struct {
	s *store[V]
}

// Ref is a non-owning reference to an arena. The zero Ref is not usable.
//
// Two Refs are equal (==) iff they refer to the same arena.
type Ref[V any] struct {
	s *store[V]
}

// Build creates a new arena and returns its lifetime guard and a Ref.
func Build[V any]() (*Lifetime[V], Ref[V]) {
	s := &store[V]{
		id:    uuid.New(),
		items: make([]V, 0, 64), // Pre-allocate for common case
	}
	return &Lifetime[V]{s: s}, Ref[V]{s: s}
}

// Release tears down the arena. Every Ref and every slot index issued from it
// becomes invalid. Calling Release more than once is a no-op.
func (l *Lifetime[V]) Release() {
	if l == nil || l.s == nil || l.s.released {
		return
	}
	clear(l.s.items)
	l.s.items = nil
	l.s.released = true
}

// Len returns the number of allocated slots (0 after Release).
func (l *Lifetime[V]) Len() int {
	return len(l.s.items)
}

// Alloc appends v and returns its slot index.
func (r Ref[V]) Alloc(v V) int {
	r.mustBeAlive()
	r.s.items = append(r.s.items, v)
	return len(r.s.items) - 1
}

// At resolves slot i. The returned pointer stays valid until the next Alloc
// on the same arena and must not be retained beyond that.
func (r Ref[V]) At(i int) *V {
	r.mustBeAlive()
	if i < 0 || i >= len(r.s.items) {
		panic(fmt.Errorf("%w: slot %d of %d in arena %s", ErrDangling, i, len(r.s.items), r.s.id))
	}
	return &r.s.items[i]
}

// Alive reports whether the arena can still be used.
// It never panics and is meant for API boundaries that receive Refs from
// outside.
func (r Ref[V]) Alive() bool {
	return r.s != nil && !r.s.released
}

// Len returns the number of allocated slots.
func (r Ref[V]) Len() int {
	r.mustBeAlive()
	return len(r.s.items)
}

// ID returns the arena identifier used in diagnostics.
func (r Ref[V]) ID() uuid.UUID {
	if r.s == nil {
		return uuid.Nil
	}
	return r.s.id
}

func (r Ref[V]) mustBeAlive() {
	if r.s == nil {
		panic(fmt.Errorf("%w: zero Ref", ErrReleased))
	}
	if r.s.released {
		panic(fmt.Errorf("%w: arena %s", ErrReleased, r.s.id))
	}
}
