// Package imgcache provides a content-addressable disk cache for derived
// image artifacts.
//
// An artifact is addressed by the digest of its transform description: a
// source identity plus the ordered list of transformations applied to it.
// Equivalent transforms digest to the same value, so a producer can probe
// the cache before doing any work and a delivery layer can serve committed
// artifacts straight from disk.
//
// On disk, an entry for digest d lives at
//
//	<root>/<d[0]>/<d>.<format>
//
// The one-level fan-out keeps directories small. The format extension is
// the only record of the artifact's concrete format, so lookups probe a
// small candidate list of extensions with stat calls; no artifact bytes
// are read on the probe path.
//
// # Quick Start
//
// Probe and fill a cache backed by a directory served at a public URL:
//
//	root, err := imgcache.NewDirLocation("/var/cache/img", "https://img.example.com")
//	if err != nil {
//	    return err
//	}
//	store, err := imgcache.New(root)
//	if err != nil {
//	    return err
//	}
//	loc, ok, err := store.Exists(transform)
//	if err != nil {
//	    return err
//	}
//	if !ok {
//	    loc, err = store.Set(provider) // invokes the provider on a true miss only
//	}
//
// # Concurrency
//
// Entries are immutable once committed: Set on an existing entry returns
// the existing location without invoking the provider, and Clear removes
// an entry. The store performs no locking. Concurrent Set calls for the
// same digest may duplicate production work, and whichever writer's rename
// lands last wins; all racing outputs derive from equivalent transforms,
// so any of them is a valid artifact for that digest. Writes go through a
// temporary file and rename, so readers never observe a partially written
// entry. [WithProduceDedup] collapses concurrent Set calls within a single
// process, but offers nothing across processes.
package imgcache
