package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/ytfetch/internal/model"
)

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)

	if got := settings.GetDownloadDirectory(); got != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, got)
	}
}

func TestDefaultMode(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if mode := settings.GetDefaultMode(); mode != DefaultMode {
		t.Errorf("Expected default mode %s, got %s", DefaultMode, mode)
	}

	settings.SetDefaultMode(model.ModeBoth)
	if mode := settings.GetDefaultMode(); mode != model.ModeBoth {
		t.Errorf("Expected mode %s, got %s", model.ModeBoth, mode)
	}
}

func TestRevealOnComplete(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetRevealOnComplete() != DefaultRevealOnComplete {
		t.Errorf("Expected default reveal setting %v", DefaultRevealOnComplete)
	}

	settings.SetRevealOnComplete(true)
	if !settings.GetRevealOnComplete() {
		t.Error("Expected reveal setting to be true after set")
	}
}

func TestGetModeOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetModeOptions()
	if len(options) != 3 {
		t.Fatalf("Expected 3 mode options, got %d", len(options))
	}
}
