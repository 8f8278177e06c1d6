package cli

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

var barTheme = progressbar.Theme{
	Saucer:        "[green]█[reset]",
	SaucerPadding: "░",
	BarStart:      "▕",
	BarEnd:        "▏",
}

// NewProgressBar counts rows towards total on w. The bar clears itself when
// done so the import report starts on a clean line.
func NewProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(barTheme),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(0),
	)
}
