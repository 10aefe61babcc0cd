package outwriter

import (
	"os"

	"github.com/huangsam/aiready/internal/contract"
	"golang.org/x/term"
)

// Table width bounds for the free-text columns.
const (
	defaultTermWidth = 80
	minTextWidth     = 15
	maxTextWidth     = 70
)

// GetMaxTablePathWidth calculates the maximum width for paths and titles in table output
// based on terminal width and table configuration.
func GetMaxTablePathWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = defaultTermWidth
		} else {
			termWidth = detectedWidth
		}
	}

	// Fixed columns (rank, dimension, priority, impact, hours) with borders and padding
	baseWidth := 45
	if cfg.Detail {
		baseWidth += 20 // Affected count and action columns
	}

	available := termWidth - baseWidth
	if available < minTextWidth {
		return minTextWidth
	}
	if available > maxTextWidth {
		return maxTextWidth
	}
	return available
}
