package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kavinnandha/portfolio/internal/catalog"
	"github.com/kavinnandha/portfolio/internal/contact"
	"github.com/kavinnandha/portfolio/internal/page"
	"github.com/kavinnandha/portfolio/internal/viewport"
)

const sessionCookie = "pf_session"

// browserSession is the page state of one browser tab. Events for a tab are
// applied one batch at a time.
type browserSession struct {
	mu      sync.Mutex
	frame   *viewport.Frame
	bus     *page.Bus
	page    *page.Session
	lastSeq uint64

	// submitter is safe for concurrent use and is not guarded by mu, so a
	// slow delivery never blocks page events.
	submitter *contact.Submitter
}

// Measurement is the layout snapshot a browser sends with each event batch.
type Measurement struct {
	ScrollY  int                `json:"scrollY"`
	Width    int                `json:"width"`
	Height   int                `json:"height"`
	Sections []viewport.Section `json:"sections"`
	// Locked reports that the browser still holds a scroll lock. ScrollY is
	// then the offset saved when the lock was taken.
	Locked bool `json:"locked,omitempty"`
}

// apply copies m into the frame. While the modal holds the scroll lock the
// browser reports the fixed body offset, so the scroll value is ignored.
func (b *browserSession) apply(m *Measurement) {
	if m == nil {
		return
	}
	if !b.frame.Locked {
		b.frame.Scroll = m.ScrollY
	}
	if m.Width > 0 {
		b.frame.Width = m.Width
	}
	if m.Height > 0 {
		b.frame.Height = m.Height
	}
	if m.Sections != nil {
		b.frame.Sections = m.Sections
	}
}

func (b *browserSession) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.page.Close()
}

// sessionStore keeps a bounded number of browser sessions in memory.
// Evicted sessions are torn down.
type sessionStore struct {
	cat          *catalog.Catalog
	now          func() time.Time
	newSubmitter func() *contact.Submitter
	cache        *lru.Cache[string, *browserSession]
}

// newSessionStore creates a store of at most size sessions. Each session
// gets its own submitter from newSubmitter.
func newSessionStore(size int, cat *catalog.Catalog, newSubmitter func() *contact.Submitter) (*sessionStore, error) {
	cache, err := lru.NewWithEvict(size, func(_ string, b *browserSession) {
		b.close()
	})
	if err != nil {
		return nil, err
	}
	return &sessionStore{cat: cat, now: time.Now, newSubmitter: newSubmitter, cache: cache}, nil
}

// create starts a session for a viewport of the given size.
func (st *sessionStore) create(width, height int, touch bool) (string, *browserSession) {
	frame := &viewport.Frame{Width: width, Height: height}
	b := &browserSession{
		frame:     frame,
		bus:       page.NewBus(),
		page:      page.NewSession(frame, st.cat, page.Options{Touch: touch, Now: st.now}),
		submitter: st.newSubmitter(),
	}
	b.page.Attach(b.bus)

	id := uuid.NewString()
	st.cache.Add(id, b)
	return id, b
}

func (st *sessionStore) get(id string) (*browserSession, bool) {
	if id == "" {
		return nil, false
	}
	return st.cache.Get(id)
}

func (st *sessionStore) len() int { return st.cache.Len() }
