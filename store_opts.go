package imgcache

import (
	"os"
	"slices"

	"golang.org/x/sync/singleflight"
)

// Option configures a Store.
type Option func(*Store)

// WithFormats sets the fallback format tags probed when a lookup source
// declares no formats of its own. Defaults to png, jpg, gif.
func WithFormats(formats ...string) Option {
	return func(s *Store) {
		s.formats = slices.Clone(formats)
	}
}

// WithDigester sets the digester used to address cache entries. Defaults
// to the canonical SHA-256 digester at DefaultDigestLength. Changing the
// digester changes where every entry lives, so existing caches must be
// re-filled or kept on their original digester.
func WithDigester(d Digester) Option {
	return func(s *Store) {
		s.digester = d
	}
}

// WithDirPerm sets the permissions for fan-out directories created during
// Set. Defaults to 0o700.
func WithDirPerm(mode os.FileMode) Option {
	return func(s *Store) {
		s.dirPerm = mode
	}
}

// WithProduceDedup collapses concurrent Set calls for the same digest
// within this process: one caller runs the production step, the rest wait
// and share its result. This is an extension beyond the baseline cache
// contract, which lets concurrent producers race; it offers nothing
// across processes, where the race remains.
func WithProduceDedup() Option {
	return func(s *Store) {
		s.dedup = new(singleflight.Group)
	}
}
