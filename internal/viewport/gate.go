package viewport

// GateState is the entrance state of a section.
type GateState int

const (
	Hidden GateState = iota
	Shown
)

func (s GateState) String() string {
	if s == Shown {
		return "shown"
	}
	return "hidden"
}

// DefaultThreshold is the fraction of a section that must be visible before it is shown.
const DefaultThreshold = 0.1

// GateOptions tune when a gate fires.
type GateOptions struct {
	// Threshold is the visible fraction of the section required. Zero means DefaultThreshold.
	Threshold float64
	// BottomMargin shrinks the viewport from the bottom edge, in pixels.
	BottomMargin int
}

type gate struct {
	opts  GateOptions
	state GateState
}

// Gates holds one-shot visibility state per section id.
type Gates struct {
	gates map[string]*gate
}

// NewGates creates gates for ids with default options.
func NewGates(ids []string) *Gates {
	g := &Gates{gates: make(map[string]*gate, len(ids))}
	for _, id := range ids {
		g.Register(id, GateOptions{})
	}
	return g
}

// Register adds or reconfigures the gate for id. A shown gate stays shown.
func (g *Gates) Register(id string, opts GateOptions) {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if existing, ok := g.gates[id]; ok {
		existing.opts = opts
		return
	}
	g.gates[id] = &gate{opts: opts}
}

// State returns the state of id. Unknown ids are hidden.
func (g *Gates) State(id string) GateState {
	if gt, ok := g.gates[id]; ok {
		return gt.state
	}
	return Hidden
}

// Shown reports whether id has been shown.
func (g *Gates) Shown(id string) bool { return g.State(id) == Shown }

// Observe checks a section against the viewport and returns true only on
// the call that flips it from hidden to shown.
func (g *Gates) Observe(id string, top, height, scrollY, viewportHeight int) bool {
	gt, ok := g.gates[id]
	if !ok || gt.state == Shown || height <= 0 {
		return false
	}

	rootTop := scrollY
	rootBottom := scrollY + viewportHeight - gt.opts.BottomMargin
	visible := min(top+height, rootBottom) - max(top, rootTop)
	if visible <= 0 {
		return false
	}
	if float64(visible)/float64(height) < gt.opts.Threshold {
		return false
	}
	gt.state = Shown
	return true
}

// ObserveAll runs Observe for every measurable section and returns the ids that flipped.
func (g *Gates) ObserveAll(q Query) []string {
	_, vh := q.Size()
	scrollY := q.ScrollY()

	var flipped []string
	for id := range g.gates {
		top, height, ok := q.Measure(id)
		if !ok {
			continue
		}
		if g.Observe(id, top, height, scrollY, vh) {
			flipped = append(flipped, id)
		}
	}
	return flipped
}

// Snapshot returns the shown flag of each section in ids order.
func (g *Gates) Snapshot(ids []string) []bool {
	out := make([]bool, len(ids))
	for i, id := range ids {
		out[i] = g.Shown(id)
	}
	return out
}
