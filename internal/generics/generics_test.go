package generics

import (
	"github.com/stretchr/testify/assert"
	"slices"
	"testing"
)

func TestSliceMap(t *testing.T) {
	got := SliceMap([]int{1, 2, 3}, func(e int) float32 { return float32(e) / 2 })
	assert.Equal(t, []float32{0.5, 1, 1.5}, got)
}

func TestArgMax(t *testing.T) {
	assert.Equal(t, -1, ArgMax([]float32{}))
	assert.Equal(t, 2, ArgMax([]float32{0, 1, 3, -1}))
	// Ties go to the lowest index.
	assert.Equal(t, 0, ArgMax([]float32{0, 0, 0}))
	assert.Equal(t, 1, ArgMax([]int{-5, 2, 2, 1}))
}

func TestArgMaxAmong(t *testing.T) {
	values := []float32{10, 1, 3, 3, 0}
	assert.Equal(t, 2, ArgMaxAmong(values, []int{1, 2, 3, 4}))
	assert.Equal(t, 4, ArgMaxAmong(values, []int{4}))
	assert.Equal(t, -1, ArgMaxAmong(values, nil))
	assert.Equal(t, float32(10), Max(values))
}

func TestSortedKeys(t *testing.T) {
	m := map[int]string{1: "1", 5: "5", 3: "3"}
	// Since the builtin map iterator in Go is deliberately non-deterministic, we
	// run it a bunch of times to show it is stably sorted.
	want := []int{1, 3, 5}
	for _ = range 100 {
		got := slices.Collect(SortedKeys(m))
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestSortedKeysAndValues(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	var keys []string
	var values []int
	for k, v := range SortedKeysAndValues(m) {
		keys = append(keys, k)
		values = append(values, v)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, []int{1, 2, 3}, values)
}

func TestSet(t *testing.T) {
	// Sets are created empty.
	s := MakeSet[int](10)
	assert.Len(t, s, 0)

	// Check inserting and recovery.
	s.Insert(3, 7)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(3))
	assert.True(t, s.Has(7))
	assert.False(t, s.Has(5))

	s2 := SetWith(5, 7)
	assert.Len(t, s2, 2)
	assert.True(t, s2.Has(5))
	assert.True(t, s2.Has(7))
}
