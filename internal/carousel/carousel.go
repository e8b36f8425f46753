package carousel

import "github.com/kavinnandha/portfolio/internal/gesture"

// Width breakpoints
const (
	// MediumWidth shows two items per view.
	MediumWidth = 768

	// LargeWidth shows three items per view.
	LargeWidth = 1024
)

// ItemsPerView returns how many cards fit at the given viewport width.
func ItemsPerView(width int) int {
	switch {
	case width >= LargeWidth:
		return 3
	case width >= MediumWidth:
		return 2
	default:
		return 1
	}
}

// Controller owns the carousel position. The index always stays within
// [0, max(0, count-perView)].
type Controller struct {
	count   int
	perView int
	index   int
	drag    float64
}

// New creates a controller for count items sized for the given viewport width.
func New(count, width int) *Controller {
	if count < 0 {
		count = 0
	}
	return &Controller{count: count, perView: ItemsPerView(width)}
}

func (c *Controller) Index() int { return c.index }
func (c *Controller) Count() int { return c.count }
func (c *Controller) PerView() int { return c.perView }
func (c *Controller) DragOffset() float64 { return c.drag }

// MaxIndex is the last index that still fills the view.
func (c *Controller) MaxIndex() int { return max(0, c.count-c.perView) }

// CanPrev reports whether Prev would move.
func (c *Controller) CanPrev() bool { return c.index > 0 }

// CanNext reports whether Next would move.
func (c *Controller) CanNext() bool { return c.index < c.MaxIndex() }

// Next advances by one, stopping at MaxIndex. It reports whether the index moved.
func (c *Controller) Next() bool {
	prev := c.index
	c.index = min(c.index+1, c.MaxIndex())
	return c.index != prev
}

// Prev moves back by one, stopping at 0. It reports whether the index moved.
func (c *Controller) Prev() bool {
	prev := c.index
	c.index = max(c.index-1, 0)
	return c.index != prev
}

// GoTo jumps to i, clamped into range.
func (c *Controller) GoTo(i int) bool {
	prev := c.index
	c.index = min(max(i, 0), c.MaxIndex())
	return c.index != prev
}

// Apply consumes a gesture commit. Commits past either bound are dropped.
func (c *Controller) Apply(commit gesture.Commit) bool {
	switch commit {
	case gesture.CommitNext:
		if c.CanNext() {
			return c.Next()
		}
	case gesture.CommitPrev:
		if c.CanPrev() {
			return c.Prev()
		}
	}
	return false
}

// SetWidth applies the breakpoint for width and re-clamps the index.
func (c *Controller) SetWidth(width int) bool {
	return c.SetItemsPerView(ItemsPerView(width))
}

// SetItemsPerView changes how many items are visible and re-clamps the index.
// It reports whether anything changed.
func (c *Controller) SetItemsPerView(n int) bool {
	if n < 1 {
		n = 1
	}
	if n == c.perView {
		return false
	}
	c.perView = n
	c.index = min(c.index, c.MaxIndex())
	return true
}

// SetDragOffset records the live drag offset in pixels.
func (c *Controller) SetDragOffset(px float64) { c.drag = px }

// Translate returns the horizontal track translation in percent. While a
// drag is in flight the offset is added relative to trackWidth.
func (c *Controller) Translate(trackWidth float64) float64 {
	pct := -float64(c.index*100) / float64(c.perView)
	if trackWidth > 0 {
		pct += c.drag / trackWidth * 100
	}
	return pct
}

// ItemWidth returns the width of one card as a percentage of the track.
func (c *Controller) ItemWidth() float64 { return 100 / float64(c.perView) }

// Dots returns the number of position indicators, one per valid index.
func (c *Controller) Dots() int { return max(1, c.count-c.perView+1) }

// ShowArrows reports whether the previous/next buttons are rendered. Narrow
// touch screens rely on swiping instead.
func ShowArrows(touch bool, width int) bool {
	return !touch || width >= MediumWidth
}

// Hint returns the instruction shown under the carousel.
func Hint(touch bool) string {
	if touch {
		return "Swipe to browse projects • Tap to view details"
	}
	return "Drag or use arrows to browse • Click to view details"
}
