package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// lineHandler writes one timestamped line per record:
// [2006-01-02 15:04:05] LEVEL message key=value
type lineHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	min   slog.Level
	attrs []slog.Attr
}

func newLineHandler(w io.Writer, min slog.Level) *lineHandler {
	return &lineHandler{mu: &sync.Mutex{}, w: w, min: min}
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min
}

func (h *lineHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s", record.Time.Format("2006-01-02 15:04:05"), record.Level, record.Message)

	for _, attr := range h.attrs {
		writeAttr(&b, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(&b, attr)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *lineHandler) WithGroup(string) slog.Handler {
	return h
}

func writeAttr(b *strings.Builder, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	fmt.Fprintf(b, " %s=%v", attr.Key, attr.Value.Resolve())
}

// fanoutHandler multiplexes records to several handlers, skipping those that
// do not accept the record's level.
type fanoutHandler struct {
	handlers []slog.Handler
}

func newFanoutHandler(handlers ...slog.Handler) slog.Handler {
	return &fanoutHandler{handlers: handlers}
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		wrapped[i] = handler.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: wrapped}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	wrapped := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		wrapped[i] = handler.WithGroup(name)
	}
	return &fanoutHandler{handlers: wrapped}
}
