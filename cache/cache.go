// Package cache persists fetched page snapshots so interrupted or repeated
// runs never refetch a listing that is already on disk.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// PageCache stores one HTML file per fetch under a fixed directory.
// Filenames embed the record identifier and the fetch unix timestamp,
// imovel_<id>_<ts>.html, and the lexicographically greatest name wins on
// lookup.
type PageCache struct {
	dir string
	log *zap.Logger
}

// New creates the cache directory if needed and returns a PageCache over it.
func New(dir string, log *zap.Logger) (*PageCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, eris.Wrapf(err, "cache: create dir %q", dir)
	}
	return &PageCache{dir: dir, log: log}, nil
}

// Dir returns the directory the cache writes to.
func (c *PageCache) Dir() string {
	return c.dir
}

// Lookup returns the newest readable snapshot for id. A missing or
// unreadable snapshot is a miss, never an error: the caller refetches.
func (c *PageCache) Lookup(id string) (pageSource, path string, ok bool) {
	pattern := filepath.Join(c.dir, fmt.Sprintf("imovel_%s_*.html", id))
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return "", "", false
	}

	sort.Strings(matches)
	latest := matches[len(matches)-1]

	data, err := os.ReadFile(latest)
	if err != nil {
		c.log.Warn("cache: snapshot unreadable, forcing refetch",
			zap.String("id_imovel", id),
			zap.String("path", latest),
			zap.Error(err),
		)
		return "", "", false
	}
	return string(data), latest, true
}

// Store writes a new timestamped snapshot for id and returns its path.
func (c *PageCache) Store(id, pageSource string) (string, error) {
	name := fmt.Sprintf("imovel_%s_%d.html", id, time.Now().Unix())
	path := filepath.Join(c.dir, name)
	if err := os.WriteFile(path, []byte(pageSource), 0644); err != nil {
		return "", eris.Wrapf(err, "cache: write snapshot for %s", id)
	}
	return path, nil
}
