package viewport

// Section ids in document order.
var SectionIDs = []string{"home", "about", "projects", "skills", "contact"}

// MobileWidth is the width below which the page uses its mobile layout.
const MobileWidth = 768

// Section is a measured content block.
type Section struct {
	ID     string `json:"id"`
	Top    int    `json:"top"`
	Height int    `json:"height"`
}

// Query supplies page measurements and accepts scroll commands.
type Query interface {
	// Measure returns the top offset and height of the section with the given id.
	// ok is false when the element is not present.
	Measure(id string) (top, height int, ok bool)
	ScrollY() int
	Size() (width, height int)
	ScrollTo(top int, smooth bool)
	SetScrollLocked(locked bool)
}

// ActiveIndex returns the first section whose activation band contains scrollY.
// The band of a section is [top - vh/2, top + height - vh/2).
func ActiveIndex(sections []Section, scrollY, viewportHeight int) (int, bool) {
	half := float64(viewportHeight) / 2
	pos := float64(scrollY)
	for i, s := range sections {
		if pos >= float64(s.Top)-half && pos < float64(s.Top+s.Height)-half {
			return i, true
		}
	}
	return 0, false
}

// Tracker keeps the index of the section nearest the middle of the viewport.
type Tracker struct {
	ids     []string
	current int
}

// NewTracker creates a tracker over ids. A nil slice means SectionIDs.
func NewTracker(ids []string) *Tracker {
	if ids == nil {
		ids = SectionIDs
	}
	return &Tracker{ids: append([]string(nil), ids...)}
}

// Current returns the last computed section index.
func (t *Tracker) Current() int { return t.current }

// CurrentID returns the id of the current section.
func (t *Tracker) CurrentID() string { return t.ids[t.current] }

// Len returns the number of tracked sections.
func (t *Tracker) Len() int { return len(t.ids) }

// IDs returns the tracked section ids.
func (t *Tracker) IDs() []string { return append([]string(nil), t.ids...) }

// Update re-measures every section and recomputes the current index.
// Sections that cannot be measured are skipped. When nothing matches the
// previous index is kept. changed reports whether the index moved.
func (t *Tracker) Update(q Query) (index int, changed bool) {
	_, vh := q.Size()
	scrollY := q.ScrollY()

	half := float64(vh) / 2
	pos := float64(scrollY)
	for i, id := range t.ids {
		top, height, ok := q.Measure(id)
		if !ok {
			continue
		}
		if pos >= float64(top)-half && pos < float64(top+height)-half {
			changed = i != t.current
			t.current = i
			return i, changed
		}
	}
	return t.current, false
}

// Measure collects every section that q can measure, in document order.
func Measure(q Query, ids []string) []Section {
	out := make([]Section, 0, len(ids))
	for _, id := range ids {
		top, height, ok := q.Measure(id)
		if !ok {
			continue
		}
		out = append(out, Section{ID: id, Top: top, Height: height})
	}
	return out
}
