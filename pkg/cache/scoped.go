package cache

import "github.com/matzehuels/soulhash/pkg/hasher"

// ScopedKeyer wraps a Keyer with a prefix so several projects or CI
// pipelines can share one Redis instance without colliding.
//
// Example usage:
//
//	ciKeyer := NewScopedKeyer(NewDefaultKeyer(), "ci:main:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer defaults to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FileKey generates a prefixed file key.
func (k *ScopedKeyer) FileKey(path string, opts FileKeyOpts) string {
	return k.prefix + k.inner.FileKey(path, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(namespace string, d hasher.DualHash) string {
	return k.prefix + k.inner.ArtifactKey(namespace, d)
}
