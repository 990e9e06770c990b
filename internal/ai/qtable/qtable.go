// Package qtable implements the state-action value tables used by tabular Q-learning: for each
// visited board (identified by its state.StateKey) a vector with one value estimate per column.
package qtable

import (
	"github.com/chewxy/math32"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/dropfour/internal/generics"
	. "github.com/janpfeifer/dropfour/internal/state"
)

// Values holds the estimated value of dropping a piece in each column.
type Values [NumColumns]float32

// Max returns the largest value.
func (v Values) Max() float32 {
	m := v[0]
	for _, x := range v[1:] {
		m = math32.Max(m, x)
	}
	return m
}

// Store is the interface of a value table. Update is the only learning mutation.
type Store interface {
	// Lookup returns the values for key, and whether they were present. It never changes the table.
	Lookup(key StateKey) (Values, bool)

	// GetOrInit returns the values for key, creating a zero vector if it is not yet present.
	GetOrInit(key StateKey) Values

	// Len returns the number of states in the table.
	Len() int

	// BestColumn returns the column with the largest value for key, ties broken by the lowest column.
	// Unknown keys are initialized.
	BestColumn(key StateKey) int

	// BestPlayableColumn is like BestColumn, but restricted to the given columns, in ascending order.
	// Unknown keys are not initialized: the first of the playable columns is returned.
	BestPlayableColumn(key StateKey, playable []int) int

	// Update applies the Bellman update to values[key][column]:
	//
	//	v[column] += learningRate * (reward + discountFactor * max(values[nextKey]) - v[column])
	//
	// Both key and nextKey are initialized if not yet present.
	Update(key StateKey, column int, reward float32, nextKey StateKey, learningRate, discountFactor float32)
}

// Table is the unbounded Store: it grows with every new state seen and never evicts.
// It is not safe for concurrent writes.
type Table struct {
	entries map[StateKey]*Values
}

// Assert Table implements Store.
var _ Store = (*Table)(nil)

// New returns an empty unbounded Table.
func New() *Table {
	return &Table{entries: make(map[StateKey]*Values)}
}

// Lookup implements Store.
func (t *Table) Lookup(key StateKey) (Values, bool) {
	v, found := t.entries[key]
	if !found {
		return Values{}, false
	}
	return *v, true
}

// Has returns whether key is in the table.
func (t *Table) Has(key StateKey) bool {
	_, found := t.entries[key]
	return found
}

func (t *Table) getOrInit(key StateKey) *Values {
	v, found := t.entries[key]
	if !found {
		v = &Values{}
		t.entries[key] = v
	}
	return v
}

// GetOrInit implements Store.
func (t *Table) GetOrInit(key StateKey) Values {
	return *t.getOrInit(key)
}

// Len implements Store.
func (t *Table) Len() int {
	return len(t.entries)
}

// BestColumn implements Store.
func (t *Table) BestColumn(key StateKey) int {
	v := t.getOrInit(key)
	return generics.ArgMax(v[:])
}

// BestPlayableColumn implements Store.
func (t *Table) BestPlayableColumn(key StateKey, playable []int) int {
	return bestPlayable(t, key, playable)
}

// Update implements Store.
func (t *Table) Update(key StateKey, column int, reward float32, nextKey StateKey, learningRate, discountFactor float32) {
	checkColumn(column)
	v := t.getOrInit(key)
	next := t.getOrInit(nextKey)
	bellman(v, column, reward, next.Max(), learningRate, discountFactor)
}

// Keys returns the states in the table, in no particular order.
func (t *Table) Keys() []StateKey {
	keys := make([]StateKey, 0, len(t.entries))
	for key := range t.entries {
		keys = append(keys, key)
	}
	return keys
}

func checkColumn(column int) {
	if column < 0 || column >= NumColumns {
		exceptions.Panicf("value table update with invalid column %d, valid columns are 0 to %d", column, NumColumns-1)
	}
}

func bellman(v *Values, column int, reward, maxNext, learningRate, discountFactor float32) {
	v[column] += learningRate * (reward + discountFactor*maxNext - v[column])
}

func bestPlayable(s Store, key StateKey, playable []int) int {
	if len(playable) == 0 {
		exceptions.Panicf("BestPlayableColumn(%q) called without playable columns", key)
	}
	v, found := s.Lookup(key)
	if !found {
		return playable[0]
	}
	return generics.ArgMaxAmong(v[:], playable)
}
