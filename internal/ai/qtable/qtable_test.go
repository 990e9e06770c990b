package qtable

import (
	"fmt"
	. "github.com/janpfeifer/dropfour/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

var _ = fmt.Printf

func keyAfter(columns ...int) StateKey {
	b := NewBoard()
	piece := PlayerA
	for _, col := range columns {
		b.Drop(col, piece)
		piece = piece.Opponent()
	}
	return Encode(b)
}

func TestGetOrInit(t *testing.T) {
	table := New()
	key := keyAfter(3)
	_, found := table.Lookup(key)
	assert.False(t, found)
	assert.Equal(t, 0, table.Len())

	assert.Equal(t, Values{}, table.GetOrInit(key))
	assert.Equal(t, 1, table.Len())
	assert.True(t, table.Has(key))
	v, found := table.Lookup(key)
	assert.True(t, found)
	assert.Equal(t, Values{}, v)

	// Lookup never initializes.
	_, _ = table.Lookup(keyAfter(4))
	assert.Equal(t, 1, table.Len())
}

func TestBestColumn(t *testing.T) {
	table := New()
	key := keyAfter()
	// All zeros: leftmost.
	assert.Equal(t, 0, table.BestColumn(key))

	table.Update(key, 4, 1, key, 0.5, 0)
	table.Update(key, 2, 1, key, 0.5, 0)
	v := table.GetOrInit(key)
	assert.InDelta(t, 0.5, v[4], 1e-6)
	assert.InDelta(t, 0.5, v[2], 1e-6)
	// Tie between 2 and 4: leftmost.
	assert.Equal(t, 2, table.BestColumn(key))
	assert.Equal(t, 4, table.BestPlayableColumn(key, []int{3, 4, 5}))
	assert.Equal(t, 2, table.BestPlayableColumn(key, []int{0, 1, 2, 3, 4, 5, 6}))

	// Unknown state: first playable, and not initialized.
	unknown := keyAfter(1)
	assert.Equal(t, 3, table.BestPlayableColumn(unknown, []int{3, 5}))
	assert.False(t, table.Has(unknown))
	assert.Panics(t, func() { table.BestPlayableColumn(key, nil) })
}

func TestUpdate(t *testing.T) {
	table := New()
	key, nextKey := keyAfter(3), keyAfter(3, 3)

	// Next state is lazily initialized.
	table.Update(key, 3, 0.9, nextKey, 0.1, 0.9)
	assert.Equal(t, 2, table.Len())
	v := table.GetOrInit(key)
	assert.InDelta(t, 0.09, v[3], 1e-6)

	// With values in the next state: v += lr * (r + gamma*max(next) - v)
	table.Update(nextKey, 5, 1, nextKey, 1, 0)
	table.Update(key, 3, -0.1, nextKey, 0.1, 0.9)
	v = table.GetOrInit(key)
	want := float32(0.09) + 0.1*(-0.1+0.9*1-0.09)
	assert.InDelta(t, want, v[3], 1e-6)
	// Other columns untouched.
	for col := range NumColumns {
		if col != 3 {
			assert.Equal(t, float32(0), v[col])
		}
	}

	assert.Panics(t, func() { table.Update(key, NumColumns, 1, nextKey, 0.1, 0.9) })
	assert.Panics(t, func() { table.Update(key, -1, 1, nextKey, 0.1, 0.9) })
}

// TestUpdateConvergesToZero checks that with zero reward and zero discount, repeated updates
// converge the value toward 0.
func TestUpdateConvergesToZero(t *testing.T) {
	table := New()
	key, nextKey := keyAfter(0), keyAfter(0, 1)
	table.Update(key, 2, 1, nextKey, 1, 0)
	table.Update(nextKey, 0, 5, nextKey, 1, 0)
	require.InDelta(t, 1, table.GetOrInit(key)[2], 1e-6)

	previous := float32(1)
	for range 200 {
		table.Update(key, 2, 0, nextKey, 0.1, 0)
		current := table.GetOrInit(key)[2]
		assert.Less(t, current, previous)
		assert.GreaterOrEqual(t, current, float32(0))
		previous = current
	}
	assert.InDelta(t, 0, previous, 1e-6)
}

func TestValuesMax(t *testing.T) {
	assert.Equal(t, float32(0), Values{}.Max())
	assert.Equal(t, float32(-0.1), Values{-1, -0.5, -0.1, -2, -3, -4, -5}.Max())
	assert.Equal(t, float32(3), Values{0, 0, 0, 0, 0, 0, 3}.Max())
}

func TestKeys(t *testing.T) {
	table := New()
	table.GetOrInit(keyAfter(0))
	table.GetOrInit(keyAfter(1))
	assert.ElementsMatch(t, []StateKey{keyAfter(0), keyAfter(1)}, table.Keys())
}
