package context

import (
	"testing"

	"github.com/vecrt/rt/internal/wide"
)

func TestResetClearsStaleHitState(t *testing.T) {
	c := New(4)
	c.TBuf[0] = 0.5
	c.ColR[0] = 9
	c.CBuf[0] = wide.MaskTrue

	c.Reset(1000, false)

	if c.TBuf[0] != 1000 {
		t.Fatalf("TBuf not reset: %v", c.TBuf[0])
	}
	if c.ColR[0] != 0 {
		t.Fatalf("ColR not reset: %v", c.ColR[0])
	}
	if c.CBuf[0] != wide.MaskFalse {
		t.Fatalf("CBuf not reset: %v", c.CBuf[0])
	}
	if c.MulR[0] != 1 {
		t.Fatalf("MulR should reset to throughput identity 1, got %v", c.MulR[0])
	}
}

func TestResetKeepsThroughputWhenAsked(t *testing.T) {
	c := New(4)
	c.MulR[0] = 0.25
	c.Reset(1000, true)
	if c.MulR[0] != 0.25 {
		t.Fatalf("MulR should be preserved, got %v", c.MulR[0])
	}
}

func TestArenaPushPopLIFO(t *testing.T) {
	a, err := NewArena(4, 2, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if a.Depth() != 0 {
		t.Fatalf("initial depth = %d, want 0", a.Depth())
	}

	f1, ok := a.Push(false)
	if !ok || a.Depth() != 1 {
		t.Fatalf("push 1 failed: ok=%v depth=%d", ok, a.Depth())
	}
	f1.ColR[0] = 42

	f2, ok := a.Push(false)
	if !ok || a.Depth() != 2 {
		t.Fatalf("push 2 failed: ok=%v depth=%d", ok, a.Depth())
	}
	f2.ColR[0] = 7

	// Max depth reached: next push must fail.
	if _, ok := a.Push(false); ok {
		t.Fatal("push beyond max depth should fail")
	}

	a.Pop()
	if a.Depth() != 1 {
		t.Fatalf("depth after pop = %d, want 1", a.Depth())
	}
	if a.Current().ColR[0] != 42 {
		t.Fatalf("restored frame has wrong state: %v", a.Current().ColR[0])
	}

	a.Pop()
	if a.Depth() != 0 {
		t.Fatalf("depth after second pop = %d, want 0", a.Depth())
	}
}

func TestNewArenaRejectsBadSizes(t *testing.T) {
	if _, err := NewArena(0, 4, 1000); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := NewArena(4, 0, 1000); err == nil {
		t.Fatal("expected error for zero max depth")
	}
}
