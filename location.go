package imgcache

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
)

// Location pairs a filesystem path with the public address that serves
// it. The cache root is a Location, and every cache entry's Location is
// derived from it with Join, so a delivery layer can hand out URLs for
// entries without knowing how the cache names its files.
type Location interface {
	// FilePath returns the filesystem path.
	FilePath() string

	// URL returns the public address.
	URL() string

	// Join returns the Location of the slash-separated relative path rel
	// beneath this one.
	Join(rel string) Location
}

// DirLocation maps a directory to a public base URL. It is the stock
// Location implementation for caches served directly by a web server
// whose document root contains the cache directory.
type DirLocation struct {
	dir     string
	baseURL string
}

// NewDirLocation creates a DirLocation for the given directory and public
// base URL. A trailing slash on baseURL is ignored.
func NewDirLocation(dir, baseURL string) (*DirLocation, error) {
	if dir == "" {
		return nil, errors.New("imgcache: location dir is empty")
	}
	if baseURL == "" {
		return nil, errors.New("imgcache: location base URL is empty")
	}
	return &DirLocation{
		dir:     filepath.Clean(dir),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// FilePath returns the directory path.
func (l *DirLocation) FilePath() string { return l.dir }

// URL returns the public base URL.
func (l *DirLocation) URL() string { return l.baseURL }

// Join returns the Location of rel beneath this one.
func (l *DirLocation) Join(rel string) Location {
	rel = path.Clean(strings.TrimPrefix(rel, "/"))
	return &DirLocation{
		dir:     filepath.Join(l.dir, filepath.FromSlash(rel)),
		baseURL: l.baseURL + "/" + rel,
	}
}
