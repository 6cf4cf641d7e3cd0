package imgcache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/singleflight"
)

const defaultDirPerm = 0o700

// defaultFormats is the fallback candidate list used when a lookup source
// is not a Provider and so declares no formats of its own.
var defaultFormats = []string{"png", "jpg", "gif"}

// Store is the operational surface of the cache: existence probing,
// reads, idempotent write-on-miss, and explicit invalidation, all keyed
// by the digest of a transform description.
//
// A Store is safe for concurrent use, and independent instances over the
// same root may be used from any number of goroutines or processes
// without coordination, subject to the concurrent-Set race described in
// the package documentation.
type Store struct {
	root     Location
	resolver *Resolver
	digester Digester
	formats  []string
	dirPerm  os.FileMode
	dedup    *singleflight.Group
}

// New creates a Store over the given cache root. The root's filesystem
// path must be an existing directory; the Store never creates or removes
// the root itself, only entries and fan-out directories beneath it.
func New(root Location, opts ...Option) (*Store, error) {
	if root == nil {
		return nil, errors.New("imgcache: root location is nil")
	}
	s := &Store{
		root:    root,
		dirPerm: defaultDirPerm,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.formats) == 0 {
		s.formats = slices.Clone(defaultFormats)
	}
	for _, f := range s.formats {
		if f == "" {
			return nil, errors.New("imgcache: empty format tag")
		}
	}
	if s.digester == nil {
		d, err := NewDigester(DefaultDigestLength)
		if err != nil {
			return nil, err
		}
		s.digester = d
	}
	s.resolver = NewResolver(s.digester)

	info, err := os.Stat(root.FilePath())
	if err != nil {
		return nil, fmt.Errorf("stat cache root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("imgcache: cache root %s is not a directory", root.FilePath())
	}
	return s, nil
}

// Resolver returns the store's path resolver, for callers that need to
// map descriptions to stems without touching the cache.
func (s *Store) Resolver() *Resolver { return s.resolver }

// Exists probes the cache for an entry matching src. Candidates are the
// stem paired with each format tag: the Provider's declared formats in
// priority order when src is a Provider, otherwise the store's configured
// fallback list. Each candidate costs one stat call, probing stops at the
// first hit, and no artifact bytes are read.
//
// It returns the Location of the entry and true on a hit, and false with
// a nil error on a miss. ErrInvalidInput is returned when src cannot be
// resolved.
func (s *Store) Exists(src DescriptionSource) (Location, bool, error) {
	stem, err := s.resolver.Resolve(src)
	if err != nil {
		return nil, false, err
	}
	loc, ok := s.probe(stem, s.candidates(src))
	return loc, ok, nil
}

// Get returns the cached artifact bytes for src. A miss is reported as
// (nil, false, nil), not an error. A read failure after a successful
// probe, including the entry vanishing between stat and read, is
// returned as an error.
func (s *Store) Get(src DescriptionSource) ([]byte, bool, error) {
	loc, ok, err := s.Exists(src)
	if err != nil || !ok {
		return nil, false, err
	}
	data, err := os.ReadFile(loc.FilePath())
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}
	return data, true, nil
}

// Set ensures an entry for p's transform exists, returning its Location.
// If any candidate format is already committed, the existing Location is
// returned and p.Produce is never called; production happens at most once
// per digest and only on a true miss. On a miss, the produced bytes are
// written to a temporary file in the entry's fan-out directory and
// renamed into place, so concurrent readers never see a partial entry.
//
// Losing a rename race to another writer is success: any racing writer's
// output is a valid artifact for the digest.
func (s *Store) Set(p Provider) (Location, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrInvalidInput)
	}
	stem, err := s.resolver.Resolve(p)
	if err != nil {
		return nil, err
	}
	if loc, ok := s.probe(stem, s.candidates(p)); ok {
		return loc, nil
	}

	if s.dedup != nil {
		v, err, _ := s.dedup.Do(string(stem), func() (any, error) {
			// A deduped winner may have committed while we waited to enter.
			if loc, ok := s.probe(stem, s.candidates(p)); ok {
				return loc, nil
			}
			return s.fill(stem, p)
		})
		if err != nil {
			return nil, err
		}
		return v.(Location), nil
	}
	return s.fill(stem, p)
}

// Clear removes the cache entry for src, if any. Clearing an absent entry
// is success. Fan-out directories are never removed, and anything that is
// not a regular file is left alone and reported as an error.
func (s *Store) Clear(src DescriptionSource) error {
	loc, ok, err := s.Exists(src)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	path := loc.FilePath()
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat cache entry: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("imgcache: %s is not a regular file", path)
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove cache entry: %w", err)
	}
	return nil
}

// probe stats each candidate path in order and returns the first hit.
// No artifact bytes are touched.
func (s *Store) probe(stem PathStem, formats []string) (Location, bool) {
	for _, format := range formats {
		loc := s.root.Join(stem.WithFormat(format))
		info, err := os.Stat(loc.FilePath())
		if err == nil && info.Mode().IsRegular() {
			return loc, true
		}
	}
	return nil, false
}

// candidates returns the format tags to probe for src, in priority order.
func (s *Store) candidates(src DescriptionSource) []string {
	if p, ok := src.(Provider); ok {
		if formats := p.Formats(); len(formats) > 0 {
			return formats
		}
	}
	return s.formats
}

// fill runs the provider's production step and commits the result.
func (s *Store) fill(stem PathStem, p Provider) (Location, error) {
	data, format, err := p.Produce()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	if format == "" {
		return nil, fmt.Errorf("%w: no output format chosen", ErrProvider)
	}
	if !slices.Contains(p.Formats(), format) {
		return nil, fmt.Errorf("%w: produced format %q not among candidates", ErrProvider, format)
	}

	loc := s.root.Join(stem.WithFormat(format))
	final := loc.FilePath()
	dir := filepath.Dir(final)
	if err := os.MkdirAll(dir, s.dirPerm); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "imgcache-*")
	if err != nil {
		return nil, fmt.Errorf("create temp entry: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("close cache entry: %w", err)
	}
	if err := os.Rename(tmpPath, final); err != nil {
		// A concurrent writer may have committed first.
		if _, statErr := os.Stat(final); statErr == nil {
			_ = os.Remove(tmpPath)
			return loc, nil
		}
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("commit cache entry: %w", err)
	}
	return loc, nil
}
