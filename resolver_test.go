package imgcache

import (
	"errors"
	"testing"
)

// fixedDigester returns a preset digest regardless of input, pinning path
// derivation independently of the hash function.
type fixedDigester struct {
	digest string
	err    error
}

func (f fixedDigester) Digest(Transform) (string, error) {
	return f.digest, f.err
}

func TestResolverStem(t *testing.T) {
	t.Parallel()

	r := NewResolver(fixedDigester{digest: "cd3732afc4"})
	stem, err := r.Resolve(Transform{Source: "user:42", Steps: []string{"resize:100x100"}})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if stem != "c/cd3732afc4" {
		t.Fatalf("Resolve() stem = %q, want %q", stem, "c/cd3732afc4")
	}
	if got := stem.WithFormat("png"); got != "c/cd3732afc4.png" {
		t.Fatalf("WithFormat() = %q, want %q", got, "c/cd3732afc4.png")
	}
}

func TestResolverDeterminism(t *testing.T) {
	t.Parallel()

	d, err := NewDigester(DefaultDigestLength)
	if err != nil {
		t.Fatalf("NewDigester() error = %v", err)
	}
	r := NewResolver(d)

	tr := Transform{Source: "user:42", Steps: []string{"resize:100x100"}}
	first, err := r.Resolve(tr)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	second, err := r.Resolve(tr)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if first != second {
		t.Fatalf("Resolve() not deterministic: %q != %q", first, second)
	}
}

func TestResolverProviderSource(t *testing.T) {
	t.Parallel()

	d, err := NewDigester(DefaultDigestLength)
	if err != nil {
		t.Fatalf("NewDigester() error = %v", err)
	}
	r := NewResolver(d)

	tr := Transform{Source: "user:42", Steps: []string{"resize:100x100"}}
	p := NewStaticProvider(tr, []byte("artifact"), "png")

	fromTransform, err := r.Resolve(tr)
	if err != nil {
		t.Fatalf("Resolve(transform) error = %v", err)
	}
	fromProvider, err := r.Resolve(p)
	if err != nil {
		t.Fatalf("Resolve(provider) error = %v", err)
	}
	if fromTransform != fromProvider {
		t.Fatalf("provider stem %q != transform stem %q", fromProvider, fromTransform)
	}
}

func TestResolverInvalidInput(t *testing.T) {
	t.Parallel()

	d, err := NewDigester(DefaultDigestLength)
	if err != nil {
		t.Fatalf("NewDigester() error = %v", err)
	}

	if _, err := NewResolver(d).Resolve(nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Resolve(nil) error = %v, want ErrInvalidInput", err)
	}
	if _, err := NewResolver(d).Resolve(Transform{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Resolve(empty) error = %v, want ErrInvalidInput", err)
	}

	// A failing custom digester surfaces as invalid input too.
	r := NewResolver(fixedDigester{err: errors.New("unsupported source")})
	if _, err := r.Resolve(Transform{Source: "user:42"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Resolve() error = %v, want ErrInvalidInput", err)
	}
}
