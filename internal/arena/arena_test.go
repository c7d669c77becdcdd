package arena_test

import (
	"errors"
	"testing"

	"github.com/born-ml/micrograd/internal/arena"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recoverErr runs f and returns the error it panicked with, or nil.
func recoverErr(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	f()
	return nil
}

func TestAllocAndResolve(t *testing.T) {
	life, ref := arena.Build[float64]()
	defer life.Release()

	i := ref.Alloc(1.5)
	j := ref.Alloc(2.5)

	assert.Equal(t, 0, i)
	assert.Equal(t, 1, j)
	assert.Equal(t, 2, ref.Len())
	assert.Equal(t, 2, life.Len())
	assert.Equal(t, 1.5, *ref.At(i))

	*ref.At(j) += 1
	assert.Equal(t, 3.5, *ref.At(j))
}

func TestRefCopiesShareStorage(t *testing.T) {
	life, ref := arena.Build[int]()
	defer life.Release()

	other := ref
	i := other.Alloc(7)

	assert.True(t, ref == other)
	assert.Equal(t, 7, *ref.At(i))
}

func TestDistinctArenas(t *testing.T) {
	l1, r1 := arena.Build[int]()
	defer l1.Release()
	l2, r2 := arena.Build[int]()
	defer l2.Release()

	assert.False(t, r1 == r2)
	assert.NotEqual(t, r1.ID(), r2.ID())
	assert.NotEqual(t, uuid.Nil, r1.ID())
}

func TestReleaseInvalidatesRefs(t *testing.T) {
	life, ref := arena.Build[int]()
	i := ref.Alloc(1)
	require.True(t, ref.Alive())

	life.Release()

	assert.False(t, ref.Alive())
	assert.Equal(t, 0, life.Len())

	err := recoverErr(func() { ref.At(i) })
	require.Error(t, err)
	assert.True(t, errors.Is(err, arena.ErrReleased))
	assert.Contains(t, err.Error(), ref.ID().String())

	err = recoverErr(func() { ref.Alloc(2) })
	assert.ErrorIs(t, err, arena.ErrReleased)
}

func TestReleaseIsIdempotent(t *testing.T) {
	life, _ := arena.Build[int]()
	life.Release()
	assert.NotPanics(t, life.Release)
}

func TestDanglingSlotPanics(t *testing.T) {
	life, ref := arena.Build[int]()
	defer life.Release()
	ref.Alloc(1)

	err := recoverErr(func() { ref.At(5) })
	assert.ErrorIs(t, err, arena.ErrDangling)

	err = recoverErr(func() { ref.At(-1) })
	assert.ErrorIs(t, err, arena.ErrDangling)
}

func TestZeroRef(t *testing.T) {
	var ref arena.Ref[int]

	assert.False(t, ref.Alive())
	assert.Equal(t, uuid.Nil, ref.ID())
	assert.ErrorIs(t, recoverErr(func() { ref.Alloc(1) }), arena.ErrReleased)
}
