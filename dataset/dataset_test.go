package dataset

import "testing"

func TestSliceMapFilterCollect(t *testing.T) {
	d := FromSlice([]int{1, 2, 3, 4, 5})
	mapped := d.Map(func(x int) int { return x * 2 })
	if got := mapped.Collect(); !equalInts(got, []int{2, 4, 6, 8, 10}) {
		t.Errorf("Map(*2).Collect() = %v", got)
	}
	filtered := d.Filter(func(x int) bool { return x%2 == 0 })
	if got := filtered.Collect(); !equalInts(got, []int{2, 4}) {
		t.Errorf("Filter(even).Collect() = %v", got)
	}
	if d.Size() != 5 {
		t.Errorf("Size() = %d, want 5", d.Size())
	}
}

func TestZipWithIndex(t *testing.T) {
	d := FromSlice([]string{"a", "b", "c"})
	zipped := ZipWithIndex(d)
	got := zipped.Collect()
	for i, iv := range got {
		if iv.Index != int64(i) {
			t.Errorf("ZipWithIndex()[%d].Index = %d, want %d", i, iv.Index, i)
		}
	}
}

func TestReduce(t *testing.T) {
	d := FromSlice([]int{1, 2, 3, 4})
	sum, ok := d.Reduce(func(a, b int) int { return a + b })
	if !ok || sum != 10 {
		t.Errorf("Reduce(+) = (%d, %v), want (10, true)", sum, ok)
	}
	empty := FromSlice([]int{})
	if _, ok := empty.Reduce(func(a, b int) int { return a + b }); ok {
		t.Errorf("Reduce on empty DataSet should report ok=false")
	}
}

func TestConcat(t *testing.T) {
	a := FromSlice([]int{1, 2})
	b := FromSlice([]int{3, 4})
	got := a.Concat(b).Collect()
	if !equalInts(got, []int{1, 2, 3, 4}) {
		t.Errorf("Concat().Collect() = %v", got)
	}
}

func TestAggregateSequential(t *testing.T) {
	d := FromSlice([]int{1, 2, 3, 4, 5})
	sum := Aggregate(d, 0, func(acc, v int) int { return acc + v }, func(a, b int) int { return a + b })
	if sum != 15 {
		t.Errorf("Aggregate(sum) = %d, want 15", sum)
	}
}

func TestAggregatePartitioned(t *testing.T) {
	d := Partitioned([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 4)
	sum := Aggregate(d, 0, func(acc, v int) int { return acc + v }, func(a, b int) int { return a + b })
	if sum != 55 {
		t.Errorf("Aggregate(sum) over partitions = %d, want 55", sum)
	}
	if d.Size() != 10 {
		t.Errorf("Partitioned.Size() = %d, want 10", d.Size())
	}
	mapped := d.Map(func(x int) int { return x * x })
	got := mapped.Collect()
	want := []int{1, 4, 9, 16, 25, 36, 49, 64, 81, 100}
	if !equalInts(got, want) {
		t.Errorf("Partitioned.Map(square).Collect() = %v, want %v", got, want)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
