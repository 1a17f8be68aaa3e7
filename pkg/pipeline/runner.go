package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/excalimaid/pkg/cache"
	"github.com/matzehuels/excalimaid/pkg/convert"
	"github.com/matzehuels/excalimaid/pkg/errors"
	"github.com/matzehuels/excalimaid/pkg/observability"
)

const (
	keyTypeConvert = "convert"
	keyTypePreview = "preview"
)

// Runner encapsulates conversion with caching. Both CLI and server use it.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default entry lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects cache.DefaultKeyer and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute reads opts.Input and converts it. See ExecuteBytes.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Input == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "input path is required")
	}
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	data, err := ReadInput(opts.Input)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("read input", "path", opts.Input, "bytes", len(data))
	return r.ExecuteBytes(ctx, data, opts)
}

// ExecuteBytes converts a raw document. When opts.Output is set the markup
// is written there; the file content equals Result.Conversion.Mermaid.
func (r *Runner) ExecuteBytes(ctx context.Context, data []byte, opts Options) (*Result, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}

	res := &Result{DocHash: cache.Hash(data)}
	key := r.Keyer.ConvertKey(res.DocHash, opts.ConvertKeyOpts())

	if conv, ok := r.cached(ctx, key, opts); ok {
		conv.Output = opts.Output
		res.Conversion = conv
		res.CacheHit = true
		opts.Logger.Debug("conversion served from cache", "hash", res.DocHash[:12])
	} else {
		parseStart := time.Now()
		doc, err := Parse(ctx, data)
		if err != nil {
			return nil, err
		}
		res.Stats.ParseTime = time.Since(parseStart)

		hooks := observability.Pipeline()
		hooks.OnConvertStart(ctx, len(data))
		convertStart := time.Now()
		res.Conversion = convert.Convert(doc, opts.ConvertOptions())
		res.Stats.ConvertTime = time.Since(convertStart)
		hooks.OnConvertComplete(ctx, res.Conversion.NodeCount, res.Conversion.EdgeCount,
			string(res.Conversion.Direction), res.Stats.ConvertTime)

		r.store(ctx, key, keyTypeConvert, res.Conversion)
	}

	opts.Logger.Info("converted diagram",
		"nodes", res.Conversion.NodeCount,
		"edges", res.Conversion.EdgeCount,
		"direction", res.Conversion.Direction,
		"cached", res.CacheHit,
		"duration", res.Stats.ParseTime+res.Stats.ConvertTime)

	if opts.Output != "" {
		if err := WriteOutput(opts.Output, res.Conversion.Mermaid); err != nil {
			return nil, err
		}
		opts.Logger.Debug("wrote output", "path", opts.Output)
	}
	return res, nil
}

// WriteOutput writes markup to path exactly as given.
func WriteOutput(path, markup string) error {
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

func (r *Runner) prepare(opts *Options) error {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	return opts.ValidateAndSetDefaults()
}

func (r *Runner) cached(ctx context.Context, key string, opts Options) (convert.Result, bool) {
	if opts.Refresh {
		return convert.Result{}, false
	}
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, keyTypeConvert)
		return convert.Result{}, false
	}
	var conv convert.Result
	if err := json.Unmarshal(data, &conv); err != nil {
		hooks.OnCacheMiss(ctx, keyTypeConvert)
		return convert.Result{}, false
	}
	hooks.OnCacheHit(ctx, keyTypeConvert)
	return conv, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	r.storeBytes(ctx, key, keyType, data, cache.TTLResult)
}

func (r *Runner) storeBytes(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
