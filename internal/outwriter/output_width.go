package outwriter

import (
	"os"

	"github.com/sprintburn/sprintburn/internal/contract"
	"golang.org/x/term"
)

const (
	fallbackTermWidth = 80
	minTitleWidth     = 15
	maxTitleWidth     = 70
	idColumnWidth     = 12
	tableChrome       = 13 // four columns of borders and padding
)

// terminalWidth returns the --width override, the detected stdout width or 80.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallbackTermWidth
}

// titleColumnWidth sizes the backlog Title column from what the other
// columns leave over, given the widest status and estimate cells.
func titleColumnWidth(cfg *contract.Config, statusWidth, estimateWidth int) int {
	used := tableChrome + idColumnWidth + max(statusWidth, len("Status")) + max(estimateWidth, len("Estimate"))
	return min(max(terminalWidth(cfg)-used, minTitleWidth), maxTitleWidth)
}
