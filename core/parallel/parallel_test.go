package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelize(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{"empty", 0},
		{"single item", 1},
		{"fewer items than cores", 3},
		{"many items", 1000},
		{"awkward remainder", 1003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			covered := make([]int32, tt.items)
			Parallelize(tt.items, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&covered[i], 1)
				}
			})
			for i, n := range covered {
				if n != 1 {
					t.Fatalf("index %d visited %d times, want exactly once", i, n)
				}
			}
		})
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	var calls int32
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 10 {
			t.Errorf("sequential range = [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("below threshold ran %d chunks, want 1", calls)
	}
}

func TestMapFloat64(t *testing.T) {
	got := MapFloat64(100, 1, func(i int) float64 {
		return float64(i * i)
	})
	if len(got) != 100 {
		t.Fatalf("len = %d, want 100", len(got))
	}
	for i, v := range got {
		if v != float64(i*i) {
			t.Errorf("out[%d] = %v, want %v", i, v, float64(i*i))
		}
	}
}

func TestMapFloat64_Empty(t *testing.T) {
	if got := MapFloat64(0, 1, func(int) float64 { return 1 }); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
