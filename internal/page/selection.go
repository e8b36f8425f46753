package page

import (
	"github.com/kavinnandha/portfolio/internal/catalog"
	"github.com/kavinnandha/portfolio/internal/viewport"
)

// Selection is the project shown in the detail modal. While a project is
// selected the page scroll is locked.
type Selection struct {
	project *catalog.Project
	lock    *viewport.ScrollLock
}

// Select opens p. It is refused while a carousel drag is in progress.
// Selecting over an open project swaps it and keeps the existing lock.
func (s *Selection) Select(q viewport.Query, p catalog.Project, dragging bool) bool {
	if dragging {
		return false
	}
	s.project = &p
	if !s.lock.Held() {
		s.lock = viewport.Lock(q)
	}
	return true
}

// Close clears the selection and restores the scroll offset. It reports
// whether anything was open.
func (s *Selection) Close() bool {
	if s.project == nil {
		return false
	}
	s.project = nil
	s.lock.Release()
	s.lock = nil
	return true
}

// Selected returns the open project.
func (s *Selection) Selected() (catalog.Project, bool) {
	if s.project == nil {
		return catalog.Project{}, false
	}
	return *s.project, true
}

// Open reports whether a project is selected.
func (s *Selection) Open() bool { return s.project != nil }
