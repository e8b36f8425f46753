package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/yuin/goldmark"
)

//go:embed site.toml
var defaultSite []byte

// ErrNotFound is returned when a project id is not in the catalog.
var ErrNotFound = errors.New("project not found")

// Project is one showcase entry.
type Project struct {
	ID           int      `toml:"id" json:"id"`
	Title        string   `toml:"title" json:"title"`
	Description  string   `toml:"description" json:"description"`
	Technologies []string `toml:"technologies" json:"technologies"`
	Icon         string   `toml:"icon" json:"icon"`
	Delay        string   `toml:"delay" json:"delay"`
	Details      Details  `toml:"details" json:"details"`
}

// Details is the content of the project modal.
type Details struct {
	Overview string   `toml:"overview" json:"overview"`
	Features []string `toml:"features" json:"features"`
}

type Profile struct {
	Name     string   `toml:"name"`
	Role     string   `toml:"role"`
	Location string   `toml:"location"`
	Greeting string   `toml:"greeting"`
	About    []string `toml:"about"`
}

type ContactItem struct {
	Icon  string `toml:"icon"`
	Title string `toml:"title"`
	Value string `toml:"value"`
}

type SocialLink struct {
	Platform string `toml:"platform"`
	URL      string `toml:"url"`
	Icon     string `toml:"icon"`
}

type Skill struct {
	Name string `toml:"name"`
	Icon string `toml:"icon"`
}

type SkillCategory struct {
	Title string  `toml:"title"`
	Delay string  `toml:"delay"`
	Items []Skill `toml:"items"`
}

// Site is everything rendered on the page.
type Site struct {
	Profile  Profile         `toml:"profile"`
	Contacts []ContactItem   `toml:"contacts"`
	Socials  []SocialLink    `toml:"socials"`
	Skills   []SkillCategory `toml:"skills"`
	Projects []Project       `toml:"projects"`
}

// Catalog is a read-only view over the site content.
type Catalog struct {
	site Site
	byID map[int]int
	html map[int]template.HTML
}

// Default loads the embedded site content.
func Default() (*Catalog, error) {
	return Parse(bytes.NewReader(defaultSite))
}

// Load reads site content from path. An empty path means the embedded content.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open site file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes site content, rejecting unknown keys, and pre-renders overviews.
func Parse(r io.Reader) (*Catalog, error) {
	var site Site
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&site); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown keys in site file:\n%s", strict.String())
		}
		return nil, fmt.Errorf("failed to decode site file: %w", err)
	}
	if err := validate(&site); err != nil {
		return nil, err
	}

	c := &Catalog{
		site: site,
		byID: make(map[int]int, len(site.Projects)),
		html: make(map[int]template.HTML, len(site.Projects)),
	}
	md := goldmark.New()
	for i, p := range site.Projects {
		c.byID[p.ID] = i
		var buf bytes.Buffer
		if err := md.Convert([]byte(p.Details.Overview), &buf); err != nil {
			return nil, fmt.Errorf("project %d: failed to render overview: %w", p.ID, err)
		}
		c.html[p.ID] = template.HTML(buf.String())
	}
	return c, nil
}

func validate(site *Site) error {
	if strings.TrimSpace(site.Profile.Name) == "" {
		return errors.New("profile.name is required")
	}
	seen := make(map[int]bool, len(site.Projects))
	for i, p := range site.Projects {
		if p.ID <= 0 {
			return fmt.Errorf("projects[%d]: id must be positive", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("projects[%d]: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = true
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("projects[%d]: title is required", i)
		}
	}
	return nil
}

// Len returns the number of projects.
func (c *Catalog) Len() int { return len(c.site.Projects) }

// Projects returns the projects in display order. The slice is a copy.
func (c *Catalog) Projects() []Project {
	out := make([]Project, len(c.site.Projects))
	for i, p := range c.site.Projects {
		out[i] = p.clone()
	}
	return out
}

// Get returns the project with the given id.
func (c *Catalog) Get(id int) (Project, error) {
	i, ok := c.byID[id]
	if !ok {
		return Project{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return c.site.Projects[i].clone(), nil
}

// OverviewHTML returns the rendered overview of a project.
func (c *Catalog) OverviewHTML(id int) template.HTML { return c.html[id] }

func (c *Catalog) Profile() Profile {
	p := c.site.Profile
	p.About = append([]string(nil), p.About...)
	return p
}

func (c *Catalog) Contacts() []ContactItem { return append([]ContactItem(nil), c.site.Contacts...) }

func (c *Catalog) Socials() []SocialLink { return append([]SocialLink(nil), c.site.Socials...) }

func (c *Catalog) Skills() []SkillCategory {
	out := make([]SkillCategory, len(c.site.Skills))
	for i, s := range c.site.Skills {
		s.Items = append([]Skill(nil), s.Items...)
		out[i] = s
	}
	return out
}

func (p Project) clone() Project {
	p.Technologies = append([]string(nil), p.Technologies...)
	p.Details.Features = append([]string(nil), p.Details.Features...)
	return p
}
