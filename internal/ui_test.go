package internal

import (
	"testing"
)

func TestQuietSpinnerIsSilent(t *testing.T) {
	ui := NewUIManager(false, true)

	spinner := ui.NewSpinner("working...")
	if _, ok := spinner.(*SilentProgressBar); !ok {
		t.Fatalf("quiet spinner = %T, want *SilentProgressBar", spinner)
	}

	// no-ops, must not panic without an underlying bar
	spinner.Describe("still working...")
	spinner.Finish()
}
