package parser

import (
	"log/slog"

	"github.com/scrappydevs/ProVision-sub002/internal/util"
)

// Parser converts raw analysis-stage JSON payloads into core records.
// It is pure conversion plus defensive clamping: no storage operations,
// no cache resets, no callbacks.
type Parser struct {
	logger *slog.Logger

	// Static config set at creation time
	analyzerVersion string
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger *slog.Logger, analyzerVersion string) *Parser {
	return &Parser{
		logger:          logger,
		analyzerVersion: analyzerVersion,
	}
}

// clampScore pins a form score to [0,100], warning when the payload was
// out of range.
func (p *Parser) clampScore(field string, v float64) float64 {
	c := util.Clamp(v, 0, 100)
	if c != v {
		p.logger.Warn("score out of range, clamped", "field", field, "value", v)
	}
	return c
}
