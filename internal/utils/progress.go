package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// DescCapturing is shown while the CLI prints its help
const DescCapturing = "Capturing help"

// NewProgressBar creates a consistently styled progress bar.
//
// Parameters:
//   - total: Total number of items. Use -1 for unknown totals (spinner mode).
//   - description: Text shown before the bar (e.g. DescCapturing).
//   - w: Destination; progress is drawn on stderr by callers so stdout stays clean.
//
// Example:
//
//	spinner := utils.NewProgressBar(-1, utils.DescCapturing, os.Stderr)
//	defer spinner.Finish()
func NewProgressBar(total int, description string, w io.Writer) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, opts...)
}
