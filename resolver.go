package imgcache

import (
	"errors"
	"fmt"
)

// PathStem is the cache-relative location of an entry, without its format
// extension: the digest's first character as a fan-out directory, then the
// full digest as the file name. Distinct digests always have distinct
// stems, and a stem says nothing about the entry's on-disk format.
type PathStem string

// WithFormat returns the cache-relative path of the entry in the given
// format, e.g. "c/cd3732afc4".WithFormat("png") == "c/cd3732afc4.png".
func (s PathStem) WithFormat(format string) string {
	return string(s) + "." + format
}

// Resolver maps transform descriptions to path stems. It performs no I/O
// and has no side effects; resolution is a pure function of the digester
// and the description.
type Resolver struct {
	digester Digester
}

// NewResolver creates a Resolver using the given digester.
func NewResolver(d Digester) *Resolver {
	return &Resolver{digester: d}
}

// Resolve derives the path stem for src. It fails with ErrInvalidInput
// when src is nil or its description cannot be digested.
func (r *Resolver) Resolve(src DescriptionSource) (PathStem, error) {
	if src == nil {
		return "", fmt.Errorf("%w: nil description source", ErrInvalidInput)
	}
	dgst, err := r.digester.Digest(src.Description())
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if dgst == "" {
		return "", fmt.Errorf("%w: digester returned empty digest", ErrInvalidInput)
	}
	return PathStem(dgst[:1] + "/" + dgst), nil
}
