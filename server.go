package main

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/kavinnandha/portfolio/internal/catalog"
	"github.com/kavinnandha/portfolio/internal/contact"
	"github.com/kavinnandha/portfolio/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// server holds the dependencies shared by all handlers.
type server struct {
	cfg      *Config
	catalog  *catalog.Catalog
	store    *store.Store
	sessions *sessionStore

	adminToken string
}

func newServer(cfg *Config, cat *catalog.Catalog, st *store.Store, d contact.Deliverer) (*server, error) {
	// The in-flight guard is per browser session.
	newSubmitter := func() *contact.Submitter {
		return contact.NewSubmitter(d,
			contact.WithTimeout(cfg.DeliveryTimeout),
			contact.WithRecorder(store.Recorder{Store: st}),
		)
	}
	sessions, err := newSessionStore(cfg.SessionCacheSize, cat, newSubmitter)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}
	return &server{
		cfg:        cfg,
		catalog:    cat,
		store:      st,
		sessions:   sessions,
		adminToken: generateAdminToken(),
	}, nil
}

// newDeliverer picks the mail backend named by cfg.MailDelivery.
func newDeliverer(cfg *Config) contact.Deliverer {
	if cfg.MailDelivery == "smtp" {
		return &contact.SMTP{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			To:   cfg.ToEmail,
		}
	}
	return &contact.EmailJS{
		Endpoint:   cfg.EmailJSEndpoint,
		ServiceID:  cfg.EmailJSServiceID,
		TemplateID: cfg.EmailJSTemplateID,
		PublicKey:  cfg.EmailJSPublicKey,
		PrivateKey: cfg.EmailJSPrivateKey,
		Client:     &http.Client{Timeout: cfg.DeliveryTimeout},
	}
}

var templateFuncs = template.FuncMap{
	"ago":   func(t time.Time) string { return humanize.Time(t) },
	"comma": func(n int64) string { return humanize.Comma(n) },
	"pct":   func(f float64) string { return fmt.Sprintf("%.4f%%", f) },
	"join":  strings.Join,
	"add":   func(a, b int) int { return a + b },
	"has":   func(list []string, v string) bool { return slices.Contains(list, v) },

	"seq": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	},
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

// router builds the gin engine with every route registered.
func (s *server) router() (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to create static sub-FS: %w", err)
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)
	r.Use(s.visitorTrackingMiddleware())
	r.StaticFS("/static", http.FS(staticSub))

	s.setupRoutes(r)
	s.setupAdminRoutes(r)
	return r, nil
}
