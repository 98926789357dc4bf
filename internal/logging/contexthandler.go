package logging

import (
	"context"
	"log/slog"
)

// ContextProvider supplies live playback attributes (session name,
// playhead position) sampled at the moment a record is emitted.
type ContextProvider func() []slog.Attr

// ContextHandler stamps every record with the provider's attributes
// before passing it on. This is how log lines carry the session and
// playhead they were emitted under without threading them through
// every call site.
type ContextHandler struct {
	next     slog.Handler
	provider ContextProvider
}

func NewContextHandler(next slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{
		next:     next,
		provider: provider,
	}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider != nil {
		r.AddAttrs(h.provider()...)
	}
	return h.next.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{
		next:     h.next.WithAttrs(attrs),
		provider: h.provider,
	}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ContextHandler{
		next:     h.next.WithGroup(name),
		provider: h.provider,
	}
}
