package viewport

// ScrollCommand is a scroll request recorded by a Frame.
type ScrollCommand struct {
	Top    int  `json:"top"`
	Smooth bool `json:"smooth"`
}

// Frame is a Query backed by a measurement snapshot. Scroll commands are
// recorded instead of executed so they can be replayed by the browser.
type Frame struct {
	Scroll   int
	Width    int
	Height   int
	Sections []Section
	Locked   bool

	Commands []ScrollCommand
}

func (f *Frame) Measure(id string) (int, int, bool) {
	for _, s := range f.Sections {
		if s.ID == id {
			return s.Top, s.Height, true
		}
	}
	return 0, 0, false
}

func (f *Frame) ScrollY() int { return f.Scroll }

func (f *Frame) Size() (int, int) { return f.Width, f.Height }

func (f *Frame) ScrollTo(top int, smooth bool) {
	if !f.Locked {
		f.Scroll = top
	}
	f.Commands = append(f.Commands, ScrollCommand{Top: top, Smooth: smooth})
}

func (f *Frame) SetScrollLocked(locked bool) { f.Locked = locked }

// Drain returns and clears the recorded commands.
func (f *Frame) Drain() []ScrollCommand {
	cmds := f.Commands
	f.Commands = nil
	return cmds
}
