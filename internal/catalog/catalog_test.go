package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 7, c.Len())
	assert.Equal(t, "Kavin Nandha M K", c.Profile().Name)
	assert.Len(t, c.Skills(), 5)
	assert.Len(t, c.Socials(), 3)
	assert.Len(t, c.Contacts(), 2)

	projects := c.Projects()
	for i, p := range projects {
		assert.Equal(t, i+1, p.ID, "display order follows ids")
		assert.NotEmpty(t, p.Details.Features)
	}
}

func TestGet(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	p, err := c.Get(5)
	require.NoError(t, err)
	assert.Equal(t, "REST API for Health App", p.Title)

	_, err = c.Get(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectsAreCopies(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	p, _ := c.Get(1)
	p.Technologies[0] = "COBOL"
	p.Details.Features = nil

	again, _ := c.Get(1)
	assert.Equal(t, "MongoDB", again.Technologies[0])
	assert.NotEmpty(t, again.Details.Features)
}

func TestOverviewHTML(t *testing.T) {
	c, err := Parse(strings.NewReader(`
[profile]
name = "Test"

[[projects]]
id = 3
title = "Thing"
[projects.details]
overview = "Built with **Go**."
`))
	require.NoError(t, err)
	assert.Equal(t, "<p>Built with <strong>Go</strong>.</p>\n", string(c.OverviewHTML(3)))
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader(`
[profile]
name = "Test"
nickname = "oops"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
}

func TestParseValidates(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"missing name", "[profile]\nrole = \"x\"\n", "profile.name"},
		{"duplicate id", "[profile]\nname = \"x\"\n[[projects]]\nid = 1\ntitle = \"a\"\n[[projects]]\nid = 1\ntitle = \"b\"\n", "duplicate id"},
		{"zero id", "[profile]\nname = \"x\"\n[[projects]]\ntitle = \"a\"\n", "positive"},
		{"no title", "[profile]\nname = \"x\"\n[[projects]]\nid = 2\n", "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, c.Len())

	path := filepath.Join(t.TempDir(), "site.toml")
	require.NoError(t, os.WriteFile(path, []byte("[profile]\nname = \"Override\"\n"), 0o600))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Override", c.Profile().Name)
	assert.Zero(t, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
