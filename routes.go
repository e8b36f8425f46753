package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kavinnandha/portfolio/internal/carousel"
	"github.com/kavinnandha/portfolio/internal/catalog"
	"github.com/kavinnandha/portfolio/internal/contact"
	"github.com/kavinnandha/portfolio/internal/page"
	"github.com/kavinnandha/portfolio/internal/viewport"
)

const (
	defaultWidth  = 1280
	defaultHeight = 800
)

// carouselData is the template data for the carousel fragment.
type carouselData struct {
	Projects []catalog.Project
	View     page.CarouselView
	Width    int
	Touch    bool
}

// pageData is the template data for the full page.
type pageData struct {
	Profile  catalog.Profile
	Contacts []catalog.ContactItem
	Socials  []catalog.SocialLink
	Skills   []catalog.SkillCategory
	View     page.View
	Carousel carouselData
	Sections []string
	Copy     pageCopy
}

// pageCopy is the fixed page text from text.go.
type pageCopy struct {
	HeroGreeting   string
	HeroPrimary    string
	HeroSecondary  string
	ContactHeading string
	ContactBlurb   string
}

var defaultCopy = pageCopy{
	HeroGreeting:   HeroGreeting,
	HeroPrimary:    HeroPrimary,
	HeroSecondary:  HeroSecondary,
	ContactHeading: ContactHeading,
	ContactBlurb:   ContactBlurb,
}

// eventBatch is the body of POST /session/events.
type eventBatch struct {
	// Seq increases with every batch a tab sends. Zero disables the check.
	Seq     uint64       `json:"seq"`
	Measure *Measurement `json:"measure"`
	Events  []page.Event `json:"events"`
}

type eventResponse struct {
	View     page.View                `json:"view"`
	Changed  bool                     `json:"changed"`
	Commands []viewport.ScrollCommand `json:"commands"`
}

// viewportHints reads the layout hints for a first render. Query parameters
// win over client hint headers.
func viewportHints(c *gin.Context) (width, height int, touch bool) {
	width = intParam(c.Query("w"), intParam(c.GetHeader("Sec-CH-Viewport-Width"), defaultWidth))
	height = intParam(c.Query("h"), intParam(c.GetHeader("Sec-CH-Viewport-Height"), defaultHeight))
	switch c.Query("touch") {
	case "1", "true":
		touch = true
	case "0", "false":
		touch = false
	default:
		touch = c.GetHeader("Sec-CH-UA-Mobile") == "?1"
	}
	return width, height, touch
}

// session returns the browser session named by the request cookie. A missing
// or evicted session is replaced by a new one sized width x height.
func (s *server) session(c *gin.Context, width, height int, touch bool) (*browserSession, bool) {
	id, _ := c.Cookie(sessionCookie)
	if sess, ok := s.sessions.get(id); ok {
		return sess, true
	}
	id, sess := s.sessions.create(width, height, touch)
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return sess, false
}

func intParam(v string, fallback int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func (s *server) setupRoutes(r *gin.Engine) {
	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.Header("Accept-CH", "Sec-CH-Viewport-Width, Sec-CH-Viewport-Height, Sec-CH-UA-Mobile")

		width, height, touch := viewportHints(c)
		id, sess := s.sessions.create(width, height, touch)
		c.SetCookie(sessionCookie, id, 0, "/", "", false, true)

		sess.mu.Lock()
		view := sess.page.View()
		sess.mu.Unlock()

		carouselView := carouselData{
			Projects: s.catalog.Projects(),
			View:     view.Carousel,
			Width:    width,
			Touch:    touch,
		}
		c.HTML(http.StatusOK, "index.html", pageData{
			Profile:  s.catalog.Profile(),
			Contacts: s.catalog.Contacts(),
			Socials:  s.catalog.Socials(),
			Skills:   s.catalog.Skills(),
			View:     view,
			Carousel: carouselView,
			Sections: viewport.SectionIDs,
			Copy:     defaultCopy,
		})
	})

	// Carousel fragment for arrow and dot buttons
	r.GET("/projects/carousel", func(c *gin.Context) {
		width, _, touch := viewportHints(c)
		ctrl := carousel.New(s.catalog.Len(), width)
		ctrl.GoTo(intParam(c.Query("index"), 0))

		view := page.CarouselView{
			Index:      ctrl.Index(),
			PerView:    ctrl.PerView(),
			Dots:       ctrl.Dots(),
			Translate:  ctrl.Translate(0),
			ItemWidth:  ctrl.ItemWidth(),
			CanPrev:    ctrl.CanPrev(),
			CanNext:    ctrl.CanNext(),
			ShowArrows: carousel.ShowArrows(touch, width),
			Hint:       carousel.Hint(touch),
		}
		c.HTML(http.StatusOK, "carousel.html", carouselData{
			Projects: s.catalog.Projects(),
			View:     view,
			Width:    width,
			Touch:    touch,
		})
	})

	// Project detail modal fragment
	r.GET("/projects/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.String(http.StatusNotFound, "project not found")
			return
		}
		p, err := s.catalog.Get(id)
		if errors.Is(err, catalog.ErrNotFound) {
			c.String(http.StatusNotFound, "project not found")
			return
		}
		c.HTML(http.StatusOK, "project-modal.html", gin.H{
			"project":  p,
			"overview": s.catalog.OverviewHTML(id),
		})
	})

	// Handle contact form submission with HTMX
	r.POST("/contact", func(c *gin.Context) {
		form := &contact.Form{Message: contact.Message{
			Name:    c.PostForm("name"),
			Email:   c.PostForm("email"),
			Subject: c.PostForm("subject"),
			Message: c.PostForm("message"),
		}}

		sess, _ := s.session(c, defaultWidth, defaultHeight, false)
		res := sess.submitter.Submit(c.Request.Context(), form)
		status := http.StatusOK
		switch res.Status {
		case contact.StatusInvalid:
			status = http.StatusUnprocessableEntity
		case contact.StatusBusy:
			status = http.StatusConflict
		case contact.StatusSent:
			log.Printf("Contact %s sent from %s", res.ID, s.store.HashIP(c.ClientIP()))
		case contact.StatusFailed:
			log.Printf("Contact %s failed from %s", res.ID, s.store.HashIP(c.ClientIP()))
		}

		c.HTML(status, "contact-status.html", gin.H{
			"status":  string(res.Status),
			"message": statusMessage(res),
			"form":    form.Message,
		})
	})

	// Page events from the browser script
	r.POST("/session/events", func(c *gin.Context) {
		var batch eventBatch
		if err := c.ShouldBindJSON(&batch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event batch"})
			return
		}

		width, height, touch := defaultWidth, defaultHeight, false
		if m := batch.Measure; m != nil && m.Width > 0 && m.Height > 0 {
			width, height = m.Width, m.Height
		}
		for _, ev := range batch.Events {
			if ev.Kind == page.KindResize && ev.Touch != nil {
				touch = *ev.Touch
			}
		}
		sess, found := s.session(c, width, height, touch)

		sess.mu.Lock()
		defer sess.mu.Unlock()

		if batch.Seq != 0 {
			if batch.Seq <= sess.lastSeq {
				c.JSON(http.StatusConflict, gin.H{"error": "stale event batch"})
				return
			}
			sess.lastSeq = batch.Seq
		}

		before := sess.page.View()
		sess.apply(batch.Measure)
		if batch.Measure != nil {
			// Fresh measurements always precede the events in the batch.
			sess.bus.Publish(page.Event{Kind: page.KindResize})
			if !found && batch.Measure.Locked {
				// The session holding the lock was evicted. Put the page back
				// where the lock was taken.
				sess.frame.ScrollTo(batch.Measure.ScrollY, false)
			}
		}
		for _, ev := range batch.Events {
			sess.bus.Publish(ev)
		}
		after := sess.page.View()

		c.JSON(http.StatusOK, eventResponse{
			View:     after,
			Changed:  !after.Equal(before),
			Commands: sess.frame.Drain(),
		})
	})
}

func statusMessage(res contact.Result) string {
	switch res.Status {
	case contact.StatusSent:
		return MessageSent
	case contact.StatusInvalid:
		var verr *contact.ValidationError
		if errors.As(res.Err, &verr) {
			return verr.Err.Error()
		}
		return res.Err.Error()
	case contact.StatusBusy:
		return MessageBusy
	default:
		return MessageFailed
	}
}
