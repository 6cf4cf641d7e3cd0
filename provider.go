package imgcache

// Provider wraps a data origin that can produce a derived artifact on
// demand. The store consults Description and Formats on every probe but
// calls Produce only on a true cache miss, so production can be as
// expensive as it needs to be.
type Provider interface {
	DescriptionSource

	// Formats returns the candidate output format tags in priority
	// order. The list is finite and the produced format must be one of
	// its members.
	Formats() []string

	// Produce computes the artifact, returning its bytes and the single
	// concrete format chosen.
	Produce() ([]byte, string, error)
}

// StaticProvider is a Provider over bytes already in hand, with a fixed
// output format. It is useful for seeding a cache and for callers whose
// production step happens elsewhere.
type StaticProvider struct {
	transform Transform
	data      []byte
	format    string
}

// NewStaticProvider creates a StaticProvider for the given transform,
// artifact bytes, and format tag.
func NewStaticProvider(t Transform, data []byte, format string) *StaticProvider {
	return &StaticProvider{transform: t, data: data, format: format}
}

// Description implements DescriptionSource.
func (p *StaticProvider) Description() Transform { return p.transform }

// Formats returns the provider's single fixed format.
func (p *StaticProvider) Formats() []string { return []string{p.format} }

// Produce returns the held bytes and format.
func (p *StaticProvider) Produce() ([]byte, string, error) {
	return p.data, p.format, nil
}
