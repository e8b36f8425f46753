package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavinnandha/portfolio/internal/gesture"
)

func TestItemsPerView(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{320, 1},
		{767, 1},
		{768, 2},
		{1023, 2},
		{1024, 3},
		{1920, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ItemsPerView(tt.width), "width %d", tt.width)
	}
}

func TestNextStopsAtUpperBound(t *testing.T) {
	c := New(7, 1280)
	require.Equal(t, 3, c.PerView())

	for i := 0; i < 10; i++ {
		c.Next()
	}
	assert.Equal(t, 4, c.Index())
	assert.False(t, c.CanNext())
	assert.False(t, c.Next())
}

func TestPrevStopsAtZero(t *testing.T) {
	c := New(7, 1280)
	c.GoTo(3)
	for i := 0; i < 10; i++ {
		c.Prev()
	}
	assert.Equal(t, 0, c.Index())
	assert.False(t, c.Prev())
}

func TestGoToClamps(t *testing.T) {
	c := New(7, 800)
	assert.True(t, c.GoTo(99))
	assert.Equal(t, 5, c.Index())
	assert.True(t, c.GoTo(-3))
	assert.Equal(t, 0, c.Index())
}

func TestFewerItemsThanView(t *testing.T) {
	c := New(2, 1280)
	assert.Equal(t, 0, c.MaxIndex())
	assert.False(t, c.Next())
	assert.Equal(t, 1, c.Dots())
}

func TestApplyCommit(t *testing.T) {
	c := New(7, 1280)

	assert.False(t, c.Apply(gesture.CommitPrev), "prev at 0 is dropped")
	assert.True(t, c.Apply(gesture.CommitNext))
	assert.Equal(t, 1, c.Index())

	c.GoTo(4)
	assert.False(t, c.Apply(gesture.CommitNext), "next at the bound is dropped")
	assert.Equal(t, 4, c.Index())

	assert.False(t, c.Apply(gesture.NoCommit))
}

func TestReclampOnItemsPerViewChange(t *testing.T) {
	c := New(7, 1280)
	c.GoTo(4)

	assert.True(t, c.SetItemsPerView(1))
	assert.Equal(t, 4, c.Index(), "still valid, no forced change")

	c.SetItemsPerView(3)
	c.GoTo(4)
	c.SetItemsPerView(5)
	assert.Equal(t, 2, c.Index())
}

func TestSetWidthCrossingBreakpoint(t *testing.T) {
	c := New(7, 375)
	c.GoTo(6)
	require.Equal(t, 6, c.Index())

	assert.False(t, c.SetWidth(500), "same breakpoint")
	assert.True(t, c.SetWidth(1100))
	assert.Equal(t, 4, c.Index())
}

func TestTranslate(t *testing.T) {
	c := New(7, 1280)
	c.GoTo(3)
	assert.InDelta(t, -100.0, c.Translate(1200), 1e-9)

	c.SetDragOffset(-120)
	assert.InDelta(t, -110.0, c.Translate(1200), 1e-9)
	assert.InDelta(t, -100.0, c.Translate(0), 1e-9, "unknown track width ignores the drag")

	c.SetWidth(800)
	c.SetDragOffset(0)
	assert.InDelta(t, -150.0, c.Translate(700), 1e-9)
	assert.InDelta(t, 50.0, c.ItemWidth(), 1e-9)
}

func TestDots(t *testing.T) {
	assert.Equal(t, 5, New(7, 1280).Dots())
	assert.Equal(t, 6, New(7, 800).Dots())
	assert.Equal(t, 7, New(7, 320).Dots())
	assert.Equal(t, 1, New(0, 320).Dots())
}

func TestShowArrowsAndHint(t *testing.T) {
	assert.True(t, ShowArrows(false, 320))
	assert.False(t, ShowArrows(true, 320))
	assert.True(t, ShowArrows(true, 800))
	assert.Contains(t, Hint(true), "Swipe")
	assert.Contains(t, Hint(false), "Click")
}
