package imgcache

import (
	// Registers SHA-256 for digest.Canonical.
	_ "crypto/sha256"
	"fmt"

	"github.com/opencontainers/go-digest"
)

// DefaultDigestLength is the digest length used when none is configured.
const DefaultDigestLength = 10

// Digester derives the fixed-length cache digest for a transform
// description. Implementations must be pure functions of their input:
// stable across processes and machines, with no machine-local salt. The
// digest is used only as an opaque identifier, never parsed for meaning.
type Digester interface {
	Digest(t Transform) (string, error)
}

// NewDigester returns the default Digester: the canonical SHA-256 digest
// of the transform's stable encoding, hex encoded and truncated to length
// characters. Length must be between 1 and 64.
func NewDigester(length int) (Digester, error) {
	if length < 1 || length > 64 {
		return nil, fmt.Errorf("digest length %d out of range [1, 64]", length)
	}
	return canonicalDigester{length: length}, nil
}

type canonicalDigester struct {
	length int
}

func (d canonicalDigester) Digest(t Transform) (string, error) {
	if t.Source == "" {
		return "", fmt.Errorf("%w: transform has no source identity", ErrInvalidInput)
	}
	dgst := digest.Canonical.FromBytes(t.stableBytes())
	return dgst.Encoded()[:d.length], nil
}
