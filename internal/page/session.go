// Package page composes the scroll, carousel and modal state of one page view.
//
// A Session is driven by explicit events. Each handler measures through the
// injected viewport.Query first and only then decides, so a single pass never
// mixes fresh measurements with stale derived state.
package page

import (
	"slices"
	"time"

	"github.com/kavinnandha/portfolio/internal/carousel"
	"github.com/kavinnandha/portfolio/internal/catalog"
	"github.com/kavinnandha/portfolio/internal/gesture"
	"github.com/kavinnandha/portfolio/internal/viewport"
)

// Source is the input device of a pointer event.
type Source string

const (
	Mouse Source = "mouse"
	Touch Source = "touch"
)

// Kind names a page event.
type Kind string

const (
	KindScroll       Kind = "scroll"
	KindResize       Kind = "resize"
	KindPointerDown  Kind = "pointerdown"
	KindPointerMove  Kind = "pointermove"
	KindPointerUp    Kind = "pointerup"
	KindPointerLeave Kind = "pointerleave"
	KindActivate     Kind = "activate"
	KindClose        Kind = "close"
	KindNext         Kind = "next"
	KindPrev         Kind = "prev"
	KindGoTo         Kind = "goto"
	KindNextSection  Kind = "nextsection"
	KindScrollTop    Kind = "scrolltop"
	KindNavigate     Kind = "navigate"
)

// Event is one input to a Session.
type Event struct {
	Kind    Kind    `json:"type"`
	Source  Source  `json:"source,omitempty"`
	X       float64 `json:"x,omitempty"`
	Index   int     `json:"index,omitempty"`
	Project int     `json:"project,omitempty"`
	Section string  `json:"section,omitempty"`
	// Touch reports touch capability on resize events.
	Touch *bool `json:"touch,omitempty"`
	// TrackWidth is the carousel track width in pixels on resize events.
	TrackWidth float64 `json:"trackWidth,omitempty"`
}

// CarouselView is the rendered state of the project carousel.
type CarouselView struct {
	Index      int     `json:"index"`
	PerView    int     `json:"perView"`
	Dots       int     `json:"dots"`
	Translate  float64 `json:"translate"`
	ItemWidth  float64 `json:"itemWidth"`
	Dragging   bool    `json:"dragging"`
	CanPrev    bool    `json:"canPrev"`
	CanNext    bool    `json:"canNext"`
	ShowArrows bool    `json:"showArrows"`
	Hint       string  `json:"hint"`
}

// View is a snapshot of everything the page renders from session state.
type View struct {
	Section      int                  `json:"section"`
	SectionID    string               `json:"sectionId"`
	Shown        []string             `json:"shown"`
	Nav          viewport.Affordances `json:"nav"`
	Carousel     CarouselView         `json:"carousel"`
	Selected     int                  `json:"selected"`
	ScrollLocked bool                 `json:"scrollLocked"`
	Touch        bool                 `json:"touch"`
	// SuppressPan is set while a confirmed touch drag owns horizontal
	// movement, so the browser must not pan the page sideways.
	SuppressPan bool `json:"suppressPan"`
}

// Equal reports whether two views render identically.
func (v View) Equal(o View) bool {
	return v.Section == o.Section &&
		v.SectionID == o.SectionID &&
		slices.Equal(v.Shown, o.Shown) &&
		v.Nav == o.Nav &&
		v.Carousel == o.Carousel &&
		v.Selected == o.Selected &&
		v.ScrollLocked == o.ScrollLocked &&
		v.Touch == o.Touch &&
		v.SuppressPan == o.SuppressPan
}

// Session holds the client state of one page view.
type Session struct {
	q   viewport.Query
	cat *catalog.Catalog

	tracker   *viewport.Tracker
	gates     *viewport.Gates
	carousel  *carousel.Controller
	gesture   *gesture.Recognizer
	selection Selection

	touch       bool
	width       int
	trackWidth  float64
	nav         viewport.Affordances
	suppressPan bool

	unsubscribe []func()
}

// Options configure a new Session.
type Options struct {
	Touch bool
	// Now is the gesture clock. Nil means time.Now.
	Now func() time.Time
}

// NewSession creates a session over q and runs an initial measure pass.
func NewSession(q viewport.Query, cat *catalog.Catalog, opts Options) *Session {
	width, _ := q.Size()
	gates := viewport.NewGates(viewport.SectionIDs)
	gates.Register("about", viewport.GateOptions{BottomMargin: 50})

	s := &Session{
		q:        q,
		cat:      cat,
		tracker:  viewport.NewTracker(viewport.SectionIDs),
		gates:    gates,
		carousel: carousel.New(cat.Len(), width),
		gesture:  gesture.New(opts.Now),
		touch:    opts.Touch,
		width:    width,
	}
	s.measure()
	return s
}

// Attach subscribes the session to bus. Close undoes it.
func (s *Session) Attach(bus *Bus) {
	s.unsubscribe = append(s.unsubscribe, bus.Subscribe(func(ev Event) { s.Dispatch(ev) }))
}

// Close unsubscribes from every bus and releases the scroll lock if a
// project is still open.
func (s *Session) Close() {
	for _, unsub := range s.unsubscribe {
		unsub()
	}
	s.unsubscribe = nil
	s.gesture.Cancel()
	s.suppressPan = false
	s.carousel.SetDragOffset(0)
	s.selection.Close()
}

// Dispatch applies ev and returns the new view and whether it changed.
func (s *Session) Dispatch(ev Event) (View, bool) {
	before := s.View()

	switch ev.Kind {
	case KindScroll:
		s.Scroll()
	case KindResize:
		if ev.Touch != nil {
			s.touch = *ev.Touch
		}
		if ev.TrackWidth > 0 {
			s.trackWidth = ev.TrackWidth
		}
		s.Resize()
	case KindPointerDown:
		s.PointerDown(ev.Source, ev.X)
	case KindPointerMove:
		s.suppressPan = s.PointerMove(ev.Source, ev.X)
	case KindPointerUp:
		s.PointerUp(ev.Source)
	case KindPointerLeave:
		s.PointerLeave()
	case KindActivate:
		s.ActivateProject(ev.Project)
	case KindClose:
		s.CloseProject()
	case KindNext:
		s.Next()
	case KindPrev:
		s.Prev()
	case KindGoTo:
		s.GoTo(ev.Index)
	case KindNextSection:
		viewport.ScrollToNext(s.q, s.tracker.IDs(), s.tracker.Current())
	case KindScrollTop:
		viewport.ScrollToTop(s.q)
	case KindNavigate:
		viewport.ScrollToSection(s.q, ev.Section)
	}

	after := s.View()
	return after, !after.Equal(before)
}

// Scroll handles a scroll event.
func (s *Session) Scroll() { s.measure() }

// Resize handles a viewport resize.
func (s *Session) Resize() {
	s.width, _ = s.q.Size()
	s.carousel.SetWidth(s.width)
	s.measure()
}

func (s *Session) measure() {
	s.tracker.Update(s.q)
	s.gates.ObserveAll(s.q)
	s.nav = viewport.Decide(s.tracker.Current(), s.tracker.Len(), s.q.ScrollY(), s.width, s.selection.Open())
}

// ignored reports whether a pointer event from src should be dropped.
// Touch devices also emit emulated mouse events; only touch is used there.
func (s *Session) ignored(src Source) bool {
	return s.touch && src == Mouse
}

// Next moves the carousel forward by one card.
func (s *Session) Next() bool { return s.carousel.Next() }

// Prev moves the carousel back by one card.
func (s *Session) Prev() bool { return s.carousel.Prev() }

// GoTo jumps the carousel to index i, clamped to the valid range.
func (s *Session) GoTo(i int) bool { return s.carousel.GoTo(i) }

// PointerDown starts a gesture on the carousel.
func (s *Session) PointerDown(src Source, x float64) {
	if s.ignored(src) {
		return
	}
	s.suppressPan = false
	s.gesture.Start(x)
	s.carousel.SetDragOffset(0)
}

// PointerMove updates the live drag. It returns true when the caller should
// suppress native horizontal scrolling.
func (s *Session) PointerMove(src Source, x float64) bool {
	if s.ignored(src) {
		return false
	}
	dragging := s.gesture.Move(x)
	s.carousel.SetDragOffset(s.gesture.Offset())
	return dragging && src == Touch
}

// PointerUp finishes the gesture and applies any commit.
func (s *Session) PointerUp(src Source) gesture.Commit {
	if s.ignored(src) {
		return gesture.NoCommit
	}
	s.suppressPan = false
	commit := s.gesture.Release()
	s.carousel.Apply(commit)
	s.carousel.SetDragOffset(0)
	return commit
}

// PointerLeave abandons the gesture.
func (s *Session) PointerLeave() {
	s.suppressPan = false
	s.gesture.Cancel()
	s.carousel.SetDragOffset(0)
}

// ActivateProject opens the project modal unless the activation is the tail
// of a drag.
func (s *Session) ActivateProject(id int) bool {
	if !s.gesture.AllowActivation() {
		return false
	}
	p, err := s.cat.Get(id)
	if err != nil {
		return false
	}
	if !s.selection.Select(s.q, p, s.gesture.Dragging()) {
		return false
	}
	s.measure()
	return true
}

// CloseProject closes the modal and restores the scroll offset.
func (s *Session) CloseProject() bool {
	if !s.selection.Close() {
		return false
	}
	s.measure()
	return true
}

// Selected returns the open project, if any.
func (s *Session) Selected() (catalog.Project, bool) { return s.selection.Selected() }

// Carousel exposes the carousel controller.
func (s *Session) Carousel() *carousel.Controller { return s.carousel }

// View returns the current render snapshot.
func (s *Session) View() View {
	var shown []string
	for _, id := range s.tracker.IDs() {
		if s.gates.Shown(id) {
			shown = append(shown, id)
		}
	}
	v := View{
		Section:      s.tracker.Current(),
		SectionID:    s.tracker.CurrentID(),
		Shown:        shown,
		Nav:          s.nav,
		Carousel:     s.carouselView(),
		ScrollLocked: s.selection.Open(),
		Touch:        s.touch,
		SuppressPan:  s.suppressPan,
	}
	if p, ok := s.selection.Selected(); ok {
		v.Selected = p.ID
	}
	return v
}

func (s *Session) carouselView() CarouselView {
	c := s.carousel
	return CarouselView{
		Index:      c.Index(),
		PerView:    c.PerView(),
		Dots:       c.Dots(),
		Translate:  c.Translate(s.trackWidth),
		ItemWidth:  c.ItemWidth(),
		Dragging:   s.gesture.Dragging(),
		CanPrev:    c.CanPrev(),
		CanNext:    c.CanNext(),
		ShowArrows: carousel.ShowArrows(s.touch, s.width),
		Hint:       carousel.Hint(s.touch),
	}
}
