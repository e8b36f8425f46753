// Package gesture turns pointer and touch movement into carousel swipes.
package gesture

import (
	"math"
	"time"
)

const (
	// DragThreshold is the horizontal movement, in pixels, that separates a drag from a tap.
	DragThreshold = 10.0
	// MinSwipeDistance is the distance a release must cover to commit.
	MinSwipeDistance = 50.0
	// MaxSwipeDuration is the longest interaction still classified as a flick.
	MaxSwipeDuration = 300 * time.Millisecond
)

// Commit is the outcome of a finished interaction.
type Commit int

const (
	NoCommit Commit = iota
	CommitNext
	CommitPrev
)

func (c Commit) String() string {
	switch c {
	case CommitNext:
		return "next"
	case CommitPrev:
		return "prev"
	default:
		return "none"
	}
}

// Classify decides whether a release covering distance (startX - endX) in
// elapsed time is a flick, and in which direction.
func Classify(distance float64, elapsed time.Duration) Commit {
	if math.Abs(distance) <= MinSwipeDistance || elapsed >= MaxSwipeDuration {
		return NoCommit
	}
	if distance > 0 {
		return CommitNext
	}
	return CommitPrev
}

// Recognizer tracks a single pointer interaction over one region.
// It is not safe for concurrent use.
type Recognizer struct {
	now func() time.Time

	active   bool
	startX   float64
	endX     float64
	hasEnd   bool
	start    time.Time
	dragging bool
	offset   float64

	// swallow is set when a drag ends so the click that trails it is dropped.
	swallow bool
}

// New creates a recognizer. A nil clock means time.Now.
func New(now func() time.Time) *Recognizer {
	if now == nil {
		now = time.Now
	}
	return &Recognizer{now: now}
}

// Start begins a new session at x, discarding any stale one.
func (r *Recognizer) Start(x float64) {
	r.reset()
	r.swallow = false
	r.active = true
	r.startX = x
	r.start = r.now()
}

// Move records pointer movement. It returns true once the session is a
// confirmed drag; touch callers use that to suppress native horizontal scroll.
func (r *Recognizer) Move(x float64) bool {
	if !r.active {
		return false
	}
	diff := r.startX - x
	if math.Abs(diff) > DragThreshold {
		r.dragging = true
		r.offset = -diff
		r.endX = x
		r.hasEnd = true
	}
	return r.dragging
}

// Release ends the session and classifies it. The recognizer is idle afterwards.
func (r *Recognizer) Release() Commit {
	if !r.active {
		r.reset()
		return NoCommit
	}
	endX := r.startX
	if r.hasEnd {
		endX = r.endX
	}
	commit := Classify(r.startX-endX, r.now().Sub(r.start))
	r.swallow = r.dragging
	r.reset()
	return commit
}

// Cancel abandons the session without a commit, e.g. when the pointer leaves the region.
func (r *Recognizer) Cancel() {
	r.swallow = r.dragging
	r.reset()
}

// AllowActivation reports whether a click on content under the region may
// fire. It is false during a drag and for the single click that follows one.
func (r *Recognizer) AllowActivation() bool {
	if r.dragging {
		return false
	}
	if r.swallow {
		r.swallow = false
		return false
	}
	return true
}

// Active reports whether a pointer is down.
func (r *Recognizer) Active() bool { return r.active }

// Dragging reports whether the current session has passed DragThreshold.
func (r *Recognizer) Dragging() bool { return r.dragging }

// Offset returns the live horizontal drag offset in pixels; 0 when idle.
func (r *Recognizer) Offset() float64 { return r.offset }

func (r *Recognizer) reset() {
	r.active = false
	r.dragging = false
	r.offset = 0
	r.startX = 0
	r.endX = 0
	r.hasEnd = false
	r.start = time.Time{}
}
