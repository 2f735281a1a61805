package concurrent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapOrderedPreservesOrder(t *testing.T) {
	items := []int{5, 4, 3, 2, 1, 0, 9, 8, 7, 6}
	got := MapOrdered(context.Background(), items, 3, func(_ int, v int) int {
		return v * v
	})
	want := make([]int, len(items))
	for i, v := range items {
		want[i] = v * v
	}
	assert.Equal(t, want, got)
}

func TestMapOrderedPassesIndex(t *testing.T) {
	items := []string{"a", "b", "c"}
	got := MapOrdered(context.Background(), items, 2, func(i int, v string) string {
		return v + string(rune('0'+i))
	})
	assert.Equal(t, []string{"a0", "b1", "c2"}, got)
}

func TestMapOrderedEmpty(t *testing.T) {
	got := MapOrdered(context.Background(), []int{}, 4, func(_ int, v int) int { return v })
	assert.Empty(t, got)
}

func TestFoldSumsAcrossWorkers(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i + 1
	}
	sum := Fold(context.Background(), items, 8,
		func() int { return 0 },
		func(acc int, v int) int { return acc + v },
		func(a, b int) int { return a + b },
	)
	assert.Equal(t, 5050, sum)
}

func TestFoldSingleWorker(t *testing.T) {
	items := []string{"a", "b", "a", "c", "b", "a"}
	counts := Fold(context.Background(), items, 1,
		func() map[string]int { return map[string]int{} },
		func(acc map[string]int, v string) map[string]int {
			acc[v]++
			return acc
		},
		func(a, b map[string]int) map[string]int {
			if len(a) < len(b) {
				a, b = b, a
			}
			for k, v := range b {
				a[k] += v
			}
			return a
		},
	)
	assert.Equal(t, map[string]int{"a": 3, "b": 2, "c": 1}, counts)
}

func TestFoldEmpty(t *testing.T) {
	acc := Fold(context.Background(), []int{}, 4,
		func() int { return 0 },
		func(acc int, v int) int { return acc + v },
		func(a, b int) int { return a + b },
	)
	assert.Equal(t, 0, acc)
}

func TestWorkersDefaultsOnNonPositive(t *testing.T) {
	assert.Greater(t, Workers(0), 0)
	assert.Greater(t, Workers(-1), 0)
	assert.Equal(t, 5, Workers(5))
}
