package cache

// ScopedKeyer wraps a Keyer with a prefix, isolating cache namespaces
// when several projects share one cache directory.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer whose prefix is prepended to all
// generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(figHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(figHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(figHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(figHash, opts)
}
