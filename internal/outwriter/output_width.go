package outwriter

import (
	"os"

	"github.com/huangsam/edgecov/internal/contract"
	"golang.org/x/term"
)

// Bounds for a truncated table cell.
const (
	minCellWidth = 15
	maxCellWidth = 70
)

// GetMaxTableCellWidth calculates the maximum width for a variable-length cell
// (an endpoint path) given the width already taken by fixed columns.
func GetMaxTableCellWidth(cfg *contract.Config, fixedWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Table borders, separators and padding
	baseWidth := fixedWidth + 20

	available := termWidth - baseWidth
	if available < minCellWidth {
		return minCellWidth
	}
	if available > maxCellWidth {
		return maxCellWidth
	}
	return available
}
