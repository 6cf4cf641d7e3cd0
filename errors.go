package imgcache

import "errors"

// Sentinel errors for the imgcache package.
//
// Filesystem failures (permission denied, disk full, a file vanishing
// between stat and read) are not translated: they are returned wrapped
// with operation context and unwrap to the underlying os error. A cache
// miss is never an error; Exists and Get report it through their bool
// result.
var (
	// ErrInvalidInput is returned when a source cannot be reduced to a
	// transform description digest.
	ErrInvalidInput = errors.New("imgcache: invalid input")

	// ErrProvider is returned by Set when the provider fails to produce
	// artifact bytes or a usable output format.
	ErrProvider = errors.New("imgcache: provider failed")
)
