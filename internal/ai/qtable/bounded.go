package qtable

import (
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/dropfour/internal/generics"
	. "github.com/janpfeifer/dropfour/internal/state"
	"k8s.io/klog/v2"
)

// BoundedTable is a Store with a maximum number of states. When full, the oldest inserted state
// is evicted (FIFO order), regardless of how often it is used.
//
// It is opt-in: the learning agents default to the unbounded Table.
type BoundedTable struct {
	maxEntries int
	entries    map[StateKey]*Values

	// fifo is a circular buffer with the keys in insertion order: fifo[fifoIdx] is the oldest
	// when the table is full.
	fifo      []StateKey
	fifoIdx   int
	evictions int
}

// Assert BoundedTable implements Store.
var _ Store = (*BoundedTable)(nil)

// NewBounded returns an empty BoundedTable holding at most maxEntries states.
// maxEntries must be at least 2, so an update never evicts its own key.
func NewBounded(maxEntries int) *BoundedTable {
	if maxEntries < 2 {
		exceptions.Panicf("qtable.NewBounded(%d): maxEntries must be >= 2", maxEntries)
	}
	return &BoundedTable{
		maxEntries: maxEntries,
		entries:    make(map[StateKey]*Values, maxEntries),
		fifo:       make([]StateKey, 0, maxEntries),
	}
}

// Lookup implements Store.
func (t *BoundedTable) Lookup(key StateKey) (Values, bool) {
	v, found := t.entries[key]
	if !found {
		return Values{}, false
	}
	return *v, true
}

// getOrInit returns the values of key, inserting it if needed. The optional protect key is
// not evicted to make room for it.
func (t *BoundedTable) getOrInit(key StateKey, protect ...StateKey) *Values {
	if v, found := t.entries[key]; found {
		return v
	}
	v := &Values{}
	if len(t.fifo) < t.maxEntries {
		t.fifo = append(t.fifo, key)
		t.entries[key] = v
		return v
	}

	// Evict the oldest, skipping a protected key.
	if len(protect) > 0 && t.fifo[t.fifoIdx] == protect[0] {
		t.fifoIdx = (t.fifoIdx + 1) % t.maxEntries
	}
	evicted := t.fifo[t.fifoIdx]
	delete(t.entries, evicted)
	t.evictions++
	if klog.V(3).Enabled() {
		klog.Infof("BoundedTable: evicted state %q (%d evictions so far)", evicted, t.evictions)
	}
	t.fifo[t.fifoIdx] = key
	t.fifoIdx = (t.fifoIdx + 1) % t.maxEntries
	t.entries[key] = v
	return v
}

// GetOrInit implements Store.
func (t *BoundedTable) GetOrInit(key StateKey) Values {
	return *t.getOrInit(key)
}

// Len implements Store.
func (t *BoundedTable) Len() int {
	return len(t.entries)
}

// Evictions returns how many states were evicted so far.
func (t *BoundedTable) Evictions() int {
	return t.evictions
}

// BestColumn implements Store.
func (t *BoundedTable) BestColumn(key StateKey) int {
	v := t.getOrInit(key)
	return generics.ArgMax(v[:])
}

// BestPlayableColumn implements Store.
func (t *BoundedTable) BestPlayableColumn(key StateKey, playable []int) int {
	return bestPlayable(t, key, playable)
}

// Update implements Store.
func (t *BoundedTable) Update(key StateKey, column int, reward float32, nextKey StateKey, learningRate, discountFactor float32) {
	checkColumn(column)
	v := t.getOrInit(key)
	next := t.getOrInit(nextKey, key)
	bellman(v, column, reward, next.Max(), learningRate, discountFactor)
}
