package tips

import "github.com/scrappydevs/ProVision-sub002/pkg/core"

// restartThreshold: a playback time below this is treated as a
// restart-to-beginning event and purges shown history. Kept at exactly
// 0.5s for compatibility with the session format; note it also fires on
// an ordinary scrub to near zero.
const restartThreshold = 0.5

// ChangeFunc receives the newly active tip, or nil when no tip is active.
type ChangeFunc func(*core.VideoTip)

// Scheduler selects at most one active tip per playback instant and
// notifies exactly once per identity transition. It is invoked
// synchronously once per playback-time observation; there is no internal
// concurrency and no timers.
type Scheduler struct {
	tips     []core.VideoTip
	shown    map[string]bool
	active   *core.VideoTip
	onChange ChangeFunc
}

// NewScheduler creates a scheduler over an ordered tip list. onChange may
// be nil when the caller polls Active instead.
func NewScheduler(tipList []core.VideoTip, onChange ChangeFunc) *Scheduler {
	return &Scheduler{
		tips:     tipList,
		shown:    make(map[string]bool),
		onChange: onChange,
	}
}

// Observe processes one playback-time update. The first tip whose window
// contains the time becomes active; transitions (including to/from none)
// emit exactly one notification, repeated identical actives emit none.
func (s *Scheduler) Observe(currentTime float64) {
	if currentTime < restartThreshold {
		s.reset()
		return
	}

	var found *core.VideoTip
	for i := range s.tips {
		if s.tips[i].ActiveAt(currentTime) {
			found = &s.tips[i]
			break
		}
	}

	if found != nil {
		s.shown[found.ID] = true
	}

	if !sameTip(found, s.active) {
		s.notify(found)
		s.active = found
	}
}

// reset clears shown history and the active tip. The "none active"
// notification fires whenever there is history to purge, even if the
// active tip value would not otherwise change.
func (s *Scheduler) reset() {
	pristine := s.active == nil && len(s.shown) == 0
	s.shown = make(map[string]bool)
	s.active = nil
	if !pristine {
		s.notify(nil)
	}
}

// Active returns the currently active tip, or nil.
func (s *Scheduler) Active() *core.VideoTip {
	return s.active
}

// Seen reports whether the tip with the given id has been shown since the
// last restart.
func (s *Scheduler) Seen(id string) bool {
	return s.shown[id]
}

// SetTips replaces the tip list, e.g. after re-ingesting a session.
// Shown history and the active register are cleared without notifying.
func (s *Scheduler) SetTips(tipList []core.VideoTip) {
	s.tips = tipList
	s.shown = make(map[string]bool)
	s.active = nil
}

func (s *Scheduler) notify(t *core.VideoTip) {
	if s.onChange != nil {
		s.onChange(t)
	}
}

func sameTip(a, b *core.VideoTip) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
