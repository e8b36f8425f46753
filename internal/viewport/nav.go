package viewport

// ScrollTopAfter is the scroll offset past which the scroll-to-top button appears.
const ScrollTopAfter = 500

// Affordances are the two floating navigation buttons.
type Affordances struct {
	ShowNext bool `json:"showNext"`
	ShowTop  bool `json:"showTop"`
}

// Decide computes button visibility from the current section. Callers run it
// after Tracker.Update in the same pass so current is never a frame stale.
func Decide(current, count, scrollY, width int, modalOpen bool) Affordances {
	mobile := width < MobileWidth
	last := current >= count-1

	top := scrollY > ScrollTopAfter
	if mobile {
		top = top && last
	}
	return Affordances{
		ShowNext: !(last || (mobile && modalOpen)),
		ShowTop:  top,
	}
}

// ScrollToNext smooth-scrolls to the section after current. It reports false
// on the last section or when the next section cannot be measured.
func ScrollToNext(q Query, ids []string, current int) bool {
	if current < 0 || current >= len(ids)-1 {
		return false
	}
	top, _, ok := q.Measure(ids[current+1])
	if !ok {
		return false
	}
	q.ScrollTo(top, true)
	return true
}

// ScrollToSection smooth-scrolls to the named section.
func ScrollToSection(q Query, id string) bool {
	top, _, ok := q.Measure(id)
	if !ok {
		return false
	}
	q.ScrollTo(top, true)
	return true
}

// ScrollToTop smooth-scrolls to the top of the page.
func ScrollToTop(q Query) { q.ScrollTo(0, true) }

// ScrollLock suspends page scrolling and remembers where it was.
type ScrollLock struct {
	q     Query
	saved int
	held  bool
}

// Lock records the current offset and locks scrolling.
func Lock(q Query) *ScrollLock {
	l := &ScrollLock{q: q, saved: q.ScrollY(), held: true}
	q.SetScrollLocked(true)
	return l
}

// Offset returns the remembered scroll offset.
func (l *ScrollLock) Offset() int { return l.saved }

// Held reports whether the lock has not been released yet.
func (l *ScrollLock) Held() bool { return l != nil && l.held }

// Release unlocks scrolling and jumps back to the remembered offset without
// animation. Calling it again is a no-op.
func (l *ScrollLock) Release() {
	if l == nil || !l.held {
		return
	}
	l.held = false
	l.q.SetScrollLocked(false)
	l.q.ScrollTo(l.saved, false)
}
