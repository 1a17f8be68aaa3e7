package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level records
// to a charmbracelet logger.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger (log.Default() when nil).
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnParseStart(_ context.Context, size int) {
	h.logger.Debug("parse start", "bytes", size)
}

func (h *LogHooks) OnParseComplete(_ context.Context, elements int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "duration", d, "err", err)
		return
	}
	h.logger.Debug("parse complete", "elements", elements, "duration", d)
}

func (h *LogHooks) OnConvertStart(_ context.Context, size int) {
	h.logger.Debug("convert start", "bytes", size)
}

func (h *LogHooks) OnConvertComplete(_ context.Context, nodes, edges int, direction string, d time.Duration) {
	h.logger.Debug("convert complete", "nodes", nodes, "edges", edges, "direction", direction, "duration", d)
}

func (h *LogHooks) OnPreviewStart(_ context.Context, format string) {
	h.logger.Debug("preview start", "format", format)
}

func (h *LogHooks) OnPreviewComplete(_ context.Context, format string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("preview failed", "format", format, "duration", d, "err", err)
		return
	}
	h.logger.Debug("preview complete", "format", format, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
