package cache

// Keyer builds cache keys for upstream HTTP responses.
type Keyer interface {
	// HTTPKey returns the key for a response identified by key within
	// namespace (for example "pokeapi:" and "species:bulbasaur").
	HTTPKey(namespace, key string) string
}

// DefaultKeyer produces keys of the form "http:<namespace>:<key>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey implements Keyer.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ScopedKeyer wraps a Keyer with a prefix so several API base URLs (for
// example a mirror and the public instance) can share one backend without
// seeing each other's entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}
