// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSalesRank prints sales rank reports using the configured output format.
func (ow *OutWriter) WriteSalesRank(reports []schema.RankReport, cfg *contract.Config, duration time.Duration) error {
	return PrintSalesRankResults(reports, cfg, duration)
}

// WriteBuybox prints buybox ownership reports using the configured output format.
func (ow *OutWriter) WriteBuybox(reports []schema.BuyboxReport, cfg *contract.Config, duration time.Duration) error {
	return PrintBuyboxResults(reports, cfg, duration)
}

// WriteOwner prints current buybox holder reports using the configured output format.
func (ow *OutWriter) WriteOwner(reports []schema.OwnerReport, cfg *contract.Config, duration time.Duration) error {
	return PrintOwnerResults(reports, cfg, duration)
}

// WriteHistory prints normalized history dumps using the configured output format.
func (ow *OutWriter) WriteHistory(results []schema.HistoryResult, cfg *contract.Config, duration time.Duration) error {
	return PrintHistoryResults(results, cfg, duration)
}

// WriteCheck prints buybox share gate results using the configured output format.
func (ow *OutWriter) WriteCheck(results []schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	return PrintCheckResults(results, cfg, duration)
}

// GetMaxTableTitleWidth calculates the maximum width for product titles in table
// output based on terminal width and table configuration.
func GetMaxTableTitleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting:
	// ASIN + category + score + stats columns with borders/padding
	baseWidth := 60

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 20

	// Calculate available space for the title
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable title width
		return 15
	}
	if available > 60 {
		// Maximum title width to prevent overly long titles
		return 60
	}
	return available
}
