package internal

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// UIManager handles user interface concerns (status spinners, verbose output)
type UIManager interface {
	NewSpinner(description string) ProgressBar
	Verbose(format string, args ...any)
}

// ProgressBar abstracts the spinner a long-running operation drives
type ProgressBar interface {
	Describe(description string)
	Finish()
}

// StandardUIManager handles normal UI operations. Spinners are suppressed in
// quiet mode and when stderr is not a terminal.
type StandardUIManager struct {
	verbose bool
	quiet   bool
}

func NewUIManager(verbose, quiet bool) UIManager {
	return &StandardUIManager{
		verbose: verbose,
		quiet:   quiet,
	}
}

func (ui *StandardUIManager) interactive() bool {
	return !ui.quiet && isatty.IsTerminal(os.Stderr.Fd())
}

func (ui *StandardUIManager) NewSpinner(description string) ProgressBar {
	if !ui.interactive() {
		return &SilentProgressBar{}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	return &VisibleProgressBar{bar: bar}
}

func (ui *StandardUIManager) Verbose(format string, args ...any) {
	if ui.verbose {
		fmt.Printf(format, args...)
	}
}

// VisibleProgressBar wraps the actual progress bar
type VisibleProgressBar struct {
	bar *progressbar.ProgressBar
}

func (v *VisibleProgressBar) Describe(description string) {
	v.bar.Describe(description)
}

func (v *VisibleProgressBar) Finish() {
	_ = v.bar.Finish()
}

// SilentProgressBar implements a no-op progress bar
type SilentProgressBar struct{}

func (s *SilentProgressBar) Describe(description string) {}

func (s *SilentProgressBar) Finish() {}
