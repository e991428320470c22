package runner

import (
	"testing"
	"time"
)

func TestDedupWindowBlocksWithinCooldown(t *testing.T) {
	d := NewDedupWindow(100 * time.Minute)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if !d.TryAcquire("ADAUSDT", now) {
		t.Fatal("first acquire must pass")
	}
	if d.TryAcquire("ADAUSDT", now.Add(99*time.Minute)) {
		t.Fatal("second acquire within cooldown must fail")
	}
	if !d.TryAcquire("XRPUSDT", now) {
		t.Fatal("other keys are independent")
	}
}

func TestDedupWindowEvicts(t *testing.T) {
	d := NewDedupWindow(100 * time.Minute)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	d.TryAcquire("ADAUSDT", now)
	if !d.TryAcquire("ADAUSDT", now.Add(101*time.Minute)) {
		t.Fatal("expired entry must not block the key")
	}
}

func TestDedupWindowSweep(t *testing.T) {
	d := NewDedupWindow(time.Minute)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, k := range []string{"A", "B", "C"} {
		d.TryAcquire(k, now)
	}
	// свежий acquire выметает протухшие записи
	d.TryAcquire("D", now.Add(2*time.Minute))
	if got := d.Len(); got != 1 {
		t.Fatalf("expected only fresh entry after sweep, got %d", got)
	}
}
