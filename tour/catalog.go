/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package tour

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Page is one year page: an ordered scene list and its accepted answers.
type Page struct {
	Slug    string    `yaml:"slug"`
	Title   string    `yaml:"title"`
	Scenes  []Scene   `yaml:"scenes"`
	Answers AnswerSet `yaml:"answers"`
}

// Catalog lists every year page plus the shared audio assets.
type Catalog struct {
	Music     string `yaml:"music"`
	DoorSound string `yaml:"door_sound"`
	Pages     []Page `yaml:"pages"`
}

// DefaultCatalog returns the built-in tour.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog from path, or the built-in one when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Pages) == 0 {
		return errors.New("catalog has no pages")
	}

	seen := make(map[string]bool, len(c.Pages))
	for _, p := range c.Pages {
		if p.Slug == "" {
			return errors.New("catalog page is missing a slug")
		}
		if seen[p.Slug] {
			return fmt.Errorf("duplicate catalog page %q", p.Slug)
		}
		seen[p.Slug] = true

		if len(p.Scenes) == 0 {
			return fmt.Errorf("catalog page %q has no scenes", p.Slug)
		}
		for _, s := range p.Scenes {
			if s.Name == "" {
				return fmt.Errorf("catalog page %q has a scene without a name", p.Slug)
			}
		}
	}

	return nil
}

// Page returns the page with the given slug.
func (c *Catalog) Page(slug string) (Page, bool) {
	for _, p := range c.Pages {
		if p.Slug == slug {
			return p, true
		}
	}

	return Page{}, false
}

// Gallery starts a fresh page session for p.
func (p Page) Gallery() (*Gallery, error) {
	return NewGallery(p.Scenes, p.Answers)
}
