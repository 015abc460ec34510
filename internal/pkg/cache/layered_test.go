package cache

import (
	"context"
	"testing"
	"time"
)

func TestLayeredBackfillsL1(t *testing.T) {
	ctx := context.Background()
	l1 := NewMemory()
	l2 := NewMemory()
	c := NewLayered(l1, l2)

	// value present only in L2
	_ = l2.SetEX(ctx, "k", "v", time.Minute)

	got, err := c.Get(ctx, "k")
	if err != nil || got != "v" {
		t.Fatalf("get: %q %v", got, err)
	}
	// L1 must now hold the value
	if v, _ := l1.Get(ctx, "k"); v != "v" {
		t.Errorf("L1 not backfilled, got %q", v)
	}

	m := c.SnapshotMetrics()
	if m.HitsL2 != 1 || m.BackfillL1 != 1 {
		t.Errorf("metrics wrong: %+v", m)
	}

	// second read is an L1 hit
	if _, err := c.Get(ctx, "k"); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if m := c.SnapshotMetrics(); m.HitsL1 != 1 {
		t.Errorf("expected one L1 hit, got %+v", m)
	}
}

func TestLayeredDelRemovesBothLayers(t *testing.T) {
	ctx := context.Background()
	l1 := NewMemory()
	l2 := NewMemory()
	c := NewLayered(l1, l2)

	_ = c.SetEX(ctx, "k", "v", time.Minute)
	_ = c.Del(ctx, "k")

	if v, _ := l1.Get(ctx, "k"); v != "" {
		t.Errorf("L1 still holds %q", v)
	}
	if v, _ := l2.Get(ctx, "k"); v != "" {
		t.Errorf("L2 still holds %q", v)
	}
	if got, _ := c.Get(ctx, "k"); got != "" {
		t.Errorf("layered get after del returned %q", got)
	}
}

func TestMemoryTTLExpires(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.SetEX(ctx, "k", "v", 10*time.Millisecond)
	if v, _ := m.Get(ctx, "k"); v != "v" {
		t.Fatalf("expected hit before expiry, got %q", v)
	}
	time.Sleep(20 * time.Millisecond)
	if v, _ := m.Get(ctx, "k"); v != "" {
		t.Errorf("expected miss after expiry, got %q", v)
	}
	if _, ok := m.RemainingTTL(ctx, "k"); ok {
		t.Error("expired key reports remaining TTL")
	}
}
