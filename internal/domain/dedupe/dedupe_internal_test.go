package dedupe

import (
	"context"
	"fmt"
	"testing"
)

func pending(d *inMemoryDeduper) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order) - d.head
}

func TestBoundedOrderUnderRetryChurn(t *testing.T) {
	ctx := context.Background()
	d := NewInMemoryDeduper(WithMaxSize(10)).(*inMemoryDeduper)

	for i := 0; i < 100_000; i++ {
		d.SeenAndRecord(ctx, "p1")
		d.Unrecord(ctx, "p1")
	}
	if got := pending(d); got > 20 {
		t.Fatalf("order grew to %d entries with maxSize 10", got)
	}
	if d.Size() != 0 {
		t.Fatalf("size %d, want 0", d.Size())
	}
}

func TestBoundedOrderWithOutOfOrderUnrecord(t *testing.T) {
	ctx := context.Background()
	d := NewInMemoryDeduper(WithMaxSize(10)).(*inMemoryDeduper)

	// Unrecord an older id each round so the tail shortcut never applies.
	for i := 0; i < 10_000; i++ {
		a, b := fmt.Sprintf("a-%d", i), fmt.Sprintf("b-%d", i)
		d.SeenAndRecord(ctx, a)
		d.SeenAndRecord(ctx, b)
		d.Unrecord(ctx, a)
		d.Unrecord(ctx, b)
	}
	if got := pending(d); got > 20 {
		t.Fatalf("order grew to %d entries with maxSize 10", got)
	}

	// Eviction still follows first-seen order after compaction.
	for i := 0; i < 11; i++ {
		d.SeenAndRecord(ctx, fmt.Sprintf("k-%d", i))
	}
	if d.SeenAndRecord(ctx, "k-10") != true {
		t.Fatal("newest id was evicted")
	}
	if d.SeenAndRecord(ctx, "k-0") != false {
		t.Fatal("oldest id should have been evicted")
	}
	if got := pending(d); got > 20 {
		t.Fatalf("order holds %d entries with maxSize 10", got)
	}
}
