package tips

import (
	"fmt"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

const (
	// minTipWindow keeps short strokes readable.
	minTipWindow = 4.0
	// followThroughGap is the minimum quiet time after a stroke before a
	// follow-through tip may appear without colliding with the next
	// stroke's tip window.
	followThroughGap = 1.5
	followTipWindow  = 1.5

	// clusterGap groups strokes into a rally cluster when consecutive
	// starts are closer than this.
	clusterGap  = 2.0
	clusterSize = 3

	summaryDelay  = 1.0
	summaryWindow = 5.0
)

// Generate produces the session's tip list from its strokes: one contact
// tip per stroke (or one per dense cluster), optional follow-through tips
// where the gates allow, and a trailing rally summary. Strokes must be
// ordered by start frame. The returned windows do not overlap, which
// keeps the scheduler's one-active-tip invariant trivially satisfiable.
func Generate(strokes []core.StrokeEvent, meta core.VideoMeta) []core.VideoTip {
	if len(strokes) == 0 {
		return nil
	}

	var out []core.VideoTip
	clusters := clusterStrokes(strokes, meta)

	// The summary opens a window of its own, so the last stroke's tips
	// truncate against it like against a following stroke.
	summaryStart := strokes[len(strokes)-1].EndSeconds(meta) + summaryDelay

	for ci, cl := range clusters {
		nextStart := summaryStart
		if ci+1 < len(clusters) {
			nextStart = clusters[ci+1][0].StartSeconds(meta)
		}

		if len(cl) >= clusterSize {
			out = append(out, clusterTip(cl, meta, nextStart))
			continue
		}

		for i, s := range cl {
			strokeNext := nextStart
			if i+1 < len(cl) {
				strokeNext = cl[i+1].StartSeconds(meta)
			}

			// A follow tip claims [end, end+window]; its start caps the
			// contact tip so the two never overlap.
			ft, hasFollow := followTip(s, meta, strokeNext)
			contactEnd := strokeNext
			if hasFollow {
				contactEnd = ft.Timestamp
			}
			out = append(out, strokeTip(s, meta, contactEnd))
			if hasFollow {
				out = append(out, ft)
			}
		}
	}

	out = append(out, rallySummary(strokes, meta))
	return out
}

// strokeTip builds the 1:1 contact tip for a stroke, truncated so its
// window ends before the next stroke's tip begins.
func strokeTip(s core.StrokeEvent, meta core.VideoMeta, nextStart float64) core.VideoTip {
	start := s.StartSeconds(meta)
	dur := s.EndSeconds(meta) - start
	if dur < minTipWindow {
		dur = minTipWindow
	}
	if start+dur > nextStart {
		dur = nextStart - start
	}

	_, title, body := CoachingMessage(s)
	id := s.ID
	seek := meta.SecondsAt(s.PeakFrame)
	return core.VideoTip{
		ID:        fmt.Sprintf("tip-%d-contact", s.ID),
		Timestamp: start,
		Duration:  dur,
		Title:     title,
		Message:   body,
		StrokeID:  &id,
		SeekTime:  &seek,
	}
}

// followTip emits the secondary follow-through tip when the gates allow:
// the stroke is exceptional or defective, and enough quiet time follows.
func followTip(s core.StrokeEvent, meta core.VideoMeta, nextStart float64) (core.VideoTip, bool) {
	end := s.EndSeconds(meta)
	if nextStart-end <= followThroughGap {
		return core.VideoTip{}, false
	}
	title, body, ok := FollowThroughMessage(s)
	if !ok {
		return core.VideoTip{}, false
	}
	id := s.ID
	return core.VideoTip{
		ID:        fmt.Sprintf("tip-%d-follow", s.ID),
		Timestamp: end,
		Duration:  followTipWindow,
		Title:     title,
		Message:   body,
		StrokeID:  &id,
	}, true
}

// clusterTip summarizes a dense run of strokes with a single tip, using
// the ladder message of the cluster's best stroke.
func clusterTip(cl []core.StrokeEvent, meta core.VideoMeta, nextStart float64) core.VideoTip {
	best := cl[0]
	for _, s := range cl[1:] {
		if s.FormScore > best.FormScore {
			best = s
		}
	}
	_, _, body := CoachingMessage(best)

	start := cl[0].StartSeconds(meta)
	dur := cl[len(cl)-1].EndSeconds(meta) - start
	if dur < minTipWindow {
		dur = minTipWindow
	}
	if start+dur > nextStart {
		dur = nextStart - start
	}
	id := best.ID
	return core.VideoTip{
		ID:        fmt.Sprintf("tip-cluster-%d-contact", best.ID),
		Timestamp: start,
		Duration:  dur,
		Title:     fmt.Sprintf("Fast exchange: %d strokes", len(cl)),
		Message:   body,
		StrokeID:  &id,
	}
}

// rallySummary reports total stroke count and the forehand:backhand mix.
func rallySummary(strokes []core.StrokeEvent, meta core.VideoMeta) core.VideoTip {
	forehands, backhands := 0, 0
	for _, s := range strokes {
		switch s.Type {
		case core.StrokeForehand:
			forehands++
		case core.StrokeBackhand:
			backhands++
		}
	}
	last := strokes[len(strokes)-1]
	return core.VideoTip{
		ID:        "tip-rally-summary",
		Timestamp: last.EndSeconds(meta) + summaryDelay,
		Duration:  summaryWindow,
		Title:     "Rally summary",
		Message: fmt.Sprintf("%d strokes this rally, %d:%d forehands to backhands.",
			len(strokes), forehands, backhands),
	}
}

// clusterStrokes splits the ordered stroke list into runs whose
// consecutive starts are within clusterGap seconds.
func clusterStrokes(strokes []core.StrokeEvent, meta core.VideoMeta) [][]core.StrokeEvent {
	var clusters [][]core.StrokeEvent
	var cur []core.StrokeEvent
	for _, s := range strokes {
		if len(cur) > 0 && s.StartSeconds(meta)-cur[len(cur)-1].StartSeconds(meta) >= clusterGap {
			clusters = append(clusters, cur)
			cur = nil
		}
		cur = append(cur, s)
	}
	if len(cur) > 0 {
		clusters = append(clusters, cur)
	}
	return clusters
}
