package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Fetched page 3 (412ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability hooks
// =============================================================================

// logHooks implements the observability hook interfaces on top of the
// debug log, so --verbose shows every request and cache decision.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *logHooks) OnPageStart(_ context.Context, page int) {
	h.logger.Debug("fetching page", "page", page)
}

func (h *logHooks) OnPageComplete(_ context.Context, page, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("page failed", "page", page, "error", err)
		return
	}
	h.logger.Debug("page complete", "page", page, "pokemons", count, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnEvolutionsStart(_ context.Context, name string) {
	h.logger.Debug("fetching evolutions", "name", name)
}

func (h *logHooks) OnEvolutionsComplete(_ context.Context, name string, stages int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("evolutions failed", "name", name, "error", err)
		return
	}
	h.logger.Debug("evolutions complete", "name", name, "stages", stages, "duration", d.Round(time.Millisecond))
}
