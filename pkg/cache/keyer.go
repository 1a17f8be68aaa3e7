package cache

// Keyer derives cache keys for conversion artifacts.
type Keyer interface {
	// ConvertKey is the key for a conversion result.
	ConvertKey(docHash string, opts ConvertKeyOpts) string

	// PreviewKey is the key for a rendered Graphviz preview.
	PreviewKey(docHash string, opts PreviewKeyOpts) string
}

// ConvertKeyOpts are the options that change conversion output.
type ConvertKeyOpts struct {
	Direction string `json:"direction,omitempty"`
}

// PreviewKeyOpts are the options that change preview output.
type PreviewKeyOpts struct {
	Direction string `json:"direction,omitempty"`
	Format    string `json:"format"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ConvertKey implements Keyer.
func (DefaultKeyer) ConvertKey(docHash string, opts ConvertKeyOpts) string {
	return hashKey("convert", docHash, opts)
}

// PreviewKey implements Keyer.
func (DefaultKeyer) PreviewKey(docHash string, opts PreviewKeyOpts) string {
	return hashKey("preview", docHash, opts)
}

var _ Keyer = DefaultKeyer{}
