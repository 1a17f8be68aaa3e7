package cache

// ScopedKeyer prefixes every key produced by an inner Keyer, so several
// deployments can share one backend without colliding:
//
//	keyer := cache.NewScopedKeyer(nil, "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ConvertKey implements Keyer.
func (k *ScopedKeyer) ConvertKey(docHash string, opts ConvertKeyOpts) string {
	return k.prefix + k.inner.ConvertKey(docHash, opts)
}

// PreviewKey implements Keyer.
func (k *ScopedKeyer) PreviewKey(docHash string, opts PreviewKeyOpts) string {
	return k.prefix + k.inner.PreviewKey(docHash, opts)
}
