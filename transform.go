package imgcache

import "strconv"

// Transform describes a derived artifact: a source identity plus the
// ordered list of transformation steps applied to it. Two transforms that
// would yield byte-identical output should compare equal field for field;
// equivalence is approximated by equality of their digest.
//
// Transforms are value types and are never mutated by this package. The
// step order is significant: resize-then-crop and crop-then-resize are
// different transforms.
type Transform struct {
	// Source identifies the origin data, e.g. "user:42" or a storage key.
	Source string

	// Steps are the transformation steps in application order,
	// e.g. "resize:100x100".
	Steps []string
}

// Description implements DescriptionSource.
func (t Transform) Description() Transform { return t }

// stableBytes returns a length-prefixed encoding of the transform that is
// injective over (Source, Steps): no two distinct transforms share an
// encoding, regardless of the characters they contain.
func (t Transform) stableBytes() []byte {
	n := len(t.Source)
	for _, s := range t.Steps {
		n += len(s)
	}
	b := make([]byte, 0, n+8*(len(t.Steps)+1))
	b = appendField(b, t.Source)
	for _, s := range t.Steps {
		b = appendField(b, s)
	}
	return b
}

func appendField(b []byte, s string) []byte {
	b = strconv.AppendInt(b, int64(len(s)), 10)
	b = append(b, ':')
	b = append(b, s...)
	return b
}

// DescriptionSource is anything that can yield a transform description: a
// Transform itself, or a Provider that embeds one. Every store operation
// accepts a DescriptionSource, so plain lookups by description and
// provider-driven fills go through the same path.
type DescriptionSource interface {
	Description() Transform
}
