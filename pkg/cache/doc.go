// Package cache stores conversion results keyed by document content.
//
// # Overview
//
// Converting a diagram is cheap, but the HTTP server sees the same documents
// over and over (editors autosave, previews refresh). Results are cached by
// the SHA-256 of the raw document plus the options that affect the output.
//
// # Backends
//
// All backends implement [Cache] and are safe for concurrent use:
//
//   - [NullCache]: stores nothing; the default when caching is disabled.
//   - [MemoryCache]: bounded in-process LRU (hashicorp/golang-lru).
//   - [FileCache]: one JSON file per entry under a directory; survives
//     restarts and is what the CLI manages with "excalimaid cache".
//   - [RedisCache]: shared cache for several server replicas (go-redis).
//
// [Open] builds a backend from a [Config], which is what the CLI and server
// use.
//
// # Keys
//
// A [Keyer] derives keys from a document hash and the relevant options.
// [ScopedKeyer] prefixes every key, which keeps several deployments apart
// when they share one Redis.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ConvertKey(cache.Hash(body), cache.ConvertKeyOpts{Direction: "LR"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    // use data
//	}
package cache
