package deque

import "testing"

func BenchmarkPushBack(b *testing.B) {
	d, _ := MakeDeque[int]()
	defer d.Release()
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		_ = d.PushBack(i)
	}
}

func BenchmarkPushFront(b *testing.B) {
	d, _ := MakeDeque[int]()
	defer d.Release()
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		_ = d.PushFront(i)
	}
}

// BenchmarkFIFO keeps the deque at a steady size. The grid is never
// compacted, so the tail still triggers a growth each time it reaches the end.
func BenchmarkFIFO(b *testing.B) {
	d, _ := MakeDequeFilled(1024, 0)
	defer d.Release()
	for i := 0; b.Loop(); i++ {
		_ = d.PushBack(i)
		d.PopFront()
	}
}

func BenchmarkAtUnsafe(b *testing.B) {
	d, _ := MakeDequeFilled(1<<16, 1)
	defer d.Release()
	sum := 0
	for i := 0; b.Loop(); i++ {
		sum += d.AtUnsafe(i & (1<<16 - 1))
	}
	_ = sum
}

func BenchmarkIter(b *testing.B) {
	d, _ := MakeDequeFilled(1<<12, 1)
	defer d.Release()
	for b.Loop() {
		sum := 0
		for v := range d.Iter() {
			sum += v
		}
		_ = sum
	}
}
