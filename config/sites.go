package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v2"
)

// Site describes one auction portal profile: where to go, what to wait
// for, and how to pull fields out of a listing page.
type Site struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`

	// WaitSelector is the element whose presence marks the page as rendered.
	WaitSelector string `yaml:"wait_selector"`
	// Container is the detail block selector. Empty means the extractor's
	// default container.
	Container string `yaml:"container"`

	// Extraction picks the strategy: "heuristic" (label adjacency and text
	// patterns, the default) or "selectors" (explicit field selectors).
	Extraction string            `yaml:"extraction"`
	Selectors  map[string]string `yaml:"selectors"`
}

// Sites is the parsed site profile file.
type Sites struct {
	Sites []Site `yaml:"sites"`
}

// LoadSites parses the YAML site profile file at path.
func LoadSites(path string) (*Sites, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read sites file %q", path)
	}
	var s Sites
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, eris.Wrapf(err, "config: parse sites file %q", path)
	}
	if len(s.Sites) == 0 {
		return nil, eris.Errorf("config: sites file %q defines no sites", path)
	}
	return &s, nil
}

// Pick returns the site with the given id, or the first enabled site when
// id is empty.
func (s *Sites) Pick(id string) (*Site, error) {
	if id == "" {
		for i := range s.Sites {
			if s.Sites[i].Enabled {
				return &s.Sites[i], nil
			}
		}
		return nil, eris.New("config: no enabled site in sites file")
	}
	for i := range s.Sites {
		if s.Sites[i].ID == id {
			return &s.Sites[i], nil
		}
	}
	return nil, eris.Errorf("config: unknown site %q", id)
}
