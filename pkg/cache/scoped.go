package cache

// ScopedKeyer prefixes every key of an inner [Keyer], giving each API tenant
// its own namespace in a shared backend:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "tenant:acme:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means the
// default one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RouteKey implements [Keyer].
func (k *ScopedKeyer) RouteKey(componentHash string, opts RouteKeyOpts) string {
	return k.prefix + k.inner.RouteKey(componentHash, opts)
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(routeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(routeHash, opts)
}
