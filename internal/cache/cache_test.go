package cache

import (
	"testing"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

func TestPoseCache_GetSet(t *testing.T) {
	c := NewPoseCache()

	if _, ok := c.Get(5); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set(core.PoseFrame{Frame: 5, Angles: map[string]float64{"elbow": 130}})
	p, ok := c.Get(5)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if p.Angles["elbow"] != 130 {
		t.Errorf("unexpected pose: %v", p)
	}

	// Pose data is sparse: adjacent frames stay misses.
	if _, ok := c.Get(6); ok {
		t.Error("expected miss for uncached frame")
	}
}

func TestPoseCache_SetAllAndReset(t *testing.T) {
	c := NewPoseCache()
	c.SetAll([]core.PoseFrame{{Frame: 1}, {Frame: 2}, {Frame: 3}})
	if c.Len() != 3 {
		t.Fatalf("expected 3 cached frames, got %d", c.Len())
	}

	c.Reset()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after reset, got %d", c.Len())
	}
}

func TestStrokeCache_AtFrame(t *testing.T) {
	c := NewStrokeCache()
	c.SetAll([]core.StrokeEvent{
		{ID: 1, StartFrame: 10, EndFrame: 40},
		{ID: 2, StartFrame: 100, EndFrame: 140},
	})

	s, ok := c.AtFrame(120)
	if !ok || s.ID != 2 {
		t.Fatalf("expected stroke 2 at frame 120, got %v ok=%v", s, ok)
	}
	if _, ok := c.AtFrame(50); ok {
		t.Error("expected no stroke at frame 50")
	}
}

func TestStrokeCache_GetByID(t *testing.T) {
	c := NewStrokeCache()
	c.SetAll([]core.StrokeEvent{{ID: 7, StartFrame: 1, EndFrame: 2}})

	if _, ok := c.Get(7); !ok {
		t.Error("expected stroke 7")
	}
	if _, ok := c.Get(8); ok {
		t.Error("unexpected stroke 8")
	}

	c.Reset()
	if _, ok := c.Get(7); ok {
		t.Error("expected miss after reset")
	}
}
