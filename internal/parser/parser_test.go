package parser

import (
	"io"
	"log/slog"
)

func newTestParser() *Parser {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewParser(logger, "test-analyzer-1.0")
}
