package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/excalimaid/pkg/cache"
	"github.com/matzehuels/excalimaid/pkg/extract"
	"github.com/matzehuels/excalimaid/pkg/observability"
	"github.com/matzehuels/excalimaid/pkg/render/nodelink"
)

// Preview renders a raw document through Graphviz. The bool reports a cache
// hit.
func (r *Runner) Preview(ctx context.Context, data []byte, opts PreviewOptions) ([]byte, nodelink.Format, bool, error) {
	dir, format, err := opts.parse()
	if err != nil {
		return nil, "", false, err
	}

	key := r.Keyer.PreviewKey(cache.Hash(data), cache.PreviewKeyOpts{
		Direction: string(dir),
		Format:    string(format),
	})
	if !opts.Refresh {
		if out, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypePreview)
			return out, format, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypePreview)
	}

	doc, err := Parse(ctx, data)
	if err != nil {
		return nil, "", false, err
	}

	hooks := observability.Pipeline()
	hooks.OnPreviewStart(ctx, string(format))
	start := time.Now()
	g := extract.Extract(doc)
	out, err := nodelink.Render(ctx, g, nodelink.Options{Direction: dir}, format)
	hooks.OnPreviewComplete(ctx, string(format), time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	r.Logger.Debug("rendered preview", "format", format, "bytes", len(out), "duration", time.Since(start))
	r.storeBytes(ctx, key, keyTypePreview, out, cache.TTLPreview)
	return out, format, false, nil
}
