package cache

import (
	"sync"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// PoseCache keeps pose frames indexed by frame number so the engine can
// resolve the current frame's pose without a storage read. Latency
// matters here: the lookup happens on every playback frame.
type PoseCache struct {
	mu     sync.RWMutex
	frames map[int]core.PoseFrame
}

// NewPoseCache creates an empty PoseCache.
func NewPoseCache() *PoseCache {
	return &PoseCache{frames: make(map[int]core.PoseFrame)}
}

// Get retrieves the pose for an exact frame number. Pose data is sparse;
// a miss is normal and means no overlay skeleton for this frame.
func (c *PoseCache) Get(frame int) (core.PoseFrame, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.frames[frame]
	return p, ok
}

// Set stores a pose frame, replacing any previous pose for that frame.
func (c *PoseCache) Set(p core.PoseFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames[p.Frame] = p
}

// SetAll stores a batch of pose frames.
func (c *PoseCache) SetAll(poses []core.PoseFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range poses {
		c.frames[p.Frame] = p
	}
}

// Len returns the number of cached frames.
func (c *PoseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.frames)
}

// Reset clears the cache for a new session.
func (c *PoseCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = make(map[int]core.PoseFrame)
}
