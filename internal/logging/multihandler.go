package logging

import (
	"context"
	"log/slog"
)

// MultiHandler fans one record out to every configured sink. The
// manager feeds it the console, log file, and GELF handlers.
type MultiHandler struct {
	sinks []slog.Handler
}

// NewMultiHandler builds a fan-out over the given sinks, skipping nils
// so callers can pass optional sinks unconditionally.
func NewMultiHandler(sinks ...slog.Handler) *MultiHandler {
	valid := make([]slog.Handler, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			valid = append(valid, s)
		}
	}
	return &MultiHandler{sinks: valid}
}

// Enabled reports whether any sink accepts the level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range m.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every sink that accepts its level.
// A failing sink must not starve the others, so errors are swallowed.
func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, s := range m.sinks {
		if !s.Enabled(ctx, r.Level) {
			continue
		}
		_ = s.Handle(ctx, r.Clone())
	}
	return nil
}

// WithAttrs applies the attributes to every sink.
func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sinks := make([]slog.Handler, len(m.sinks))
	for i, s := range m.sinks {
		sinks[i] = s.WithAttrs(attrs)
	}
	return &MultiHandler{sinks: sinks}
}

// WithGroup applies the group to every sink.
func (m *MultiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return m
	}
	sinks := make([]slog.Handler, len(m.sinks))
	for i, s := range m.sinks {
		sinks[i] = s.WithGroup(name)
	}
	return &MultiHandler{sinks: sinks}
}
