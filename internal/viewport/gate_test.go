package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateFiresOnceAtThreshold(t *testing.T) {
	g := NewGates([]string{"skills"})

	// 50 of 1000px visible: 5%, below threshold.
	assert.False(t, g.Observe("skills", 1000, 1000, 250, 800))
	assert.Equal(t, Hidden, g.State("skills"))

	// 100 of 1000px visible: exactly 10%.
	assert.True(t, g.Observe("skills", 1000, 1000, 300, 800))
	assert.Equal(t, Shown, g.State("skills"))

	assert.False(t, g.Observe("skills", 1000, 1000, 400, 800), "second flip must not be reported")
}

func TestGateNeverReverts(t *testing.T) {
	g := NewGates([]string{"about"})
	require.True(t, g.Observe("about", 0, 500, 0, 800))
	g.Observe("about", 0, 500, 5000, 800)
	assert.True(t, g.Shown("about"))
}

func TestGateBottomMargin(t *testing.T) {
	g := NewGates(nil)
	g.Register("about", GateOptions{BottomMargin: 50})

	// Section starts 700px below the top of an 800px viewport: 100px visible
	// without the margin, 50px with it. 50/400 = 12.5%.
	assert.True(t, g.Observe("about", 700, 400, 0, 800))

	g2 := NewGates(nil)
	g2.Register("about", GateOptions{BottomMargin: 50})
	// 60px visible without margin, 10px with it: 10/400 = 2.5%.
	assert.False(t, g2.Observe("about", 740, 400, 0, 800))
}

func TestGateIgnoresUnknownAndEmpty(t *testing.T) {
	g := NewGates([]string{"home"})
	assert.False(t, g.Observe("nope", 0, 100, 0, 800))
	assert.False(t, g.Observe("home", 0, 0, 0, 800))
	assert.Equal(t, Hidden, g.State("nope"))
}

func TestRegisterKeepsShownState(t *testing.T) {
	g := NewGates([]string{"home"})
	require.True(t, g.Observe("home", 0, 800, 0, 800))
	g.Register("home", GateOptions{Threshold: 0.9})
	assert.True(t, g.Shown("home"))
}

func TestObserveAll(t *testing.T) {
	g := NewGates(SectionIDs)
	f := pageFrame(0)

	flipped := g.ObserveAll(f)
	assert.ElementsMatch(t, []string{"home"}, flipped)

	f.Scroll = 1000
	flipped = g.ObserveAll(f)
	assert.ElementsMatch(t, []string{"about", "projects"}, flipped)

	assert.Equal(t, []bool{true, true, true, false, false}, g.Snapshot(SectionIDs))
}
