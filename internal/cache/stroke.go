package cache

import (
	"sync"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// StrokeCache holds the session's strokes for id and frame lookups during
// playback.
type StrokeCache struct {
	mu      sync.RWMutex
	byID    map[uint]core.StrokeEvent
	ordered []core.StrokeEvent
}

// NewStrokeCache creates an empty StrokeCache.
func NewStrokeCache() *StrokeCache {
	return &StrokeCache{byID: make(map[uint]core.StrokeEvent)}
}

// SetAll replaces the cached strokes. The slice must be ordered by start
// frame, as delivered by the analysis stage.
func (c *StrokeCache) SetAll(strokes []core.StrokeEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = make(map[uint]core.StrokeEvent, len(strokes))
	c.ordered = append([]core.StrokeEvent(nil), strokes...)
	for _, s := range strokes {
		c.byID[s.ID] = s
	}
}

// Get retrieves a stroke by id.
func (c *StrokeCache) Get(id uint) (core.StrokeEvent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byID[id]
	return s, ok
}

// AtFrame returns the first stroke whose span contains the frame.
func (c *StrokeCache) AtFrame(frame int) (core.StrokeEvent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.ordered {
		if s.ContainsFrame(frame) {
			return s, true
		}
	}
	return core.StrokeEvent{}, false
}

// All returns a copy of the ordered stroke list.
func (c *StrokeCache) All() []core.StrokeEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]core.StrokeEvent(nil), c.ordered...)
}

// Reset clears the cache for a new session.
func (c *StrokeCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = make(map[uint]core.StrokeEvent)
	c.ordered = nil
}
